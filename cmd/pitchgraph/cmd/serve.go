package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/f3rmion/pitchgraph/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the renderer over HTTP",
	Long: `Start an HTTP server rendering notation on demand.

Endpoints:
  POST /api/render       {"text": "...", "no_text": false, "reading": "katakana"}
  GET  /api/render.svg   ?text=...
  GET  /healthcheck

The address can also be set with PITCHGRAPH_ADDR. With --redis-addr (or
PITCHGRAPH_REDIS_ADDR) rendered SVGs are cached in Redis.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the SVG cache (disabled if empty)")
	serveCmd.Flags().Duration("cache-ttl", 24*time.Hour, "lifetime of cached SVGs")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("redis_addr", serveCmd.Flags().Lookup("redis-addr"))
	viper.BindPFlag("cache_ttl", serveCmd.Flags().Lookup("cache-ttl"))
}

func runServe(cmd *cobra.Command, args []string) error {
	style, err := loadStyle()
	if err != nil {
		return err
	}

	mode := "prod"
	if viper.GetBool("verbose") {
		mode = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log, err := logger.New(mode)
	if err != nil {
		log = logger.Nop()
	}
	defer log.Sync()

	var opts []server.Option
	if addr := viper.GetString("redis_addr"); addr != "" {
		cache, err := server.NewRedisCache(addr, viper.GetDuration("cache_ttl"), log)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithCache(cache))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(style, log, opts...).Run(ctx, viper.GetString("addr"))
}
