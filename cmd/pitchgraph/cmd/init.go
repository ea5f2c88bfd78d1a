package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default style file",
	Long: `Write style.yaml with the default drawing parameters into the config
directory, ready to be edited.`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing style file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := getConfigDir()
	if err := config.EnsureConfigDir(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, config.StyleFile)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveStyle(path, config.DefaultStyle()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
