// Package server exposes the renderer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/gin-gonic/gin"
)

// Option configures the router.
type Option func(*options)

type options struct {
	cache Cache
}

// WithCache serves repeated SVG requests from c.
func WithCache(c Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

func NewRouter(style config.Style, log *logger.Logger, opts ...Option) *gin.Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(CORS())

	render := NewRenderHandler(style, o.cache, log)

	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/render", render.Render)
		api.GET("/render.svg", render.RenderSVG)
	}

	return router
}

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(style config.Style, log *logger.Logger, opts ...Option) *Server {
	return &Server{Engine: NewRouter(style, log, opts...), log: log}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
