// Package cmd contains all CLI commands of pitchgraph.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pitchgraph",
	Short: "Draw Japanese pitch accent diagrams from a compact notation",
	Long: `pitchgraph turns pitch accent notation into diagrams.

A field such as

  大物[おおもの]:2 が まで:p1

is split into sentences and words, every mora gets a high or low tone, and
the result is drawn as an SVG with one semantic class per accent type.

Running 'pitchgraph' without arguments launches the interactive preview.`,
	SilenceUsage: true,
	RunE:         runPreview,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/pitchgraph)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-text", false, "omit the kana label row")
	rootCmd.PersistentFlags().String("reading", "", "reading conversion: as-given, hiragana or katakana")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_text", rootCmd.PersistentFlags().Lookup("no-text"))
	viper.BindPFlag("reading", rootCmd.PersistentFlags().Lookup("reading"))
}

// initConfig reads in ENV variables and settles the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.SetDefault("config_dir", dir)
	}

	viper.SetEnvPrefix("PITCHGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadStyle loads the style file and applies flag and environment overrides.
func loadStyle() (config.Style, error) {
	style, err := config.LoadDir(getConfigDir())
	if err != nil {
		return style, fmt.Errorf("loading style: %w", err)
	}

	if viper.IsSet("no_text") {
		style.NoText = viper.GetBool("no_text")
	}
	if r := viper.GetString("reading"); r != "" {
		mode, ok := kana.ParseMode(r)
		if !ok {
			return style, fmt.Errorf("%w: unknown reading %q", config.ErrInvalidStyle, r)
		}
		style.ConvertReading = mode
	}
	return style, nil
}

// newLogger creates the command logger. Logs go to stderr so they never mix
// with rendered output.
func newLogger() *logger.Logger {
	mode := "cli"
	if viper.GetBool("verbose") {
		mode = "debug"
	}
	log, err := logger.New(mode)
	if err != nil {
		return logger.Nop()
	}
	return log
}

// readInput joins args, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// openOutput returns the output file, or stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
