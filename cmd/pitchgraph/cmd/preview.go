package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/pitchgraph/internal/render"
	"github.com/f3rmion/pitchgraph/internal/tui"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [notation...]",
	Short: "Interactively preview notation in the terminal",
	Long: `Type notation and press enter to see its contour. ←/→ cycle through the
sentences of the input, y copies the SVG, ctrl+d drafts notation from plain
Japanese.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

// runPreview launches the preview TUI.
func runPreview(cmd *cobra.Command, args []string) error {
	style, err := loadStyle()
	if err != nil {
		return err
	}

	m := tui.New(render.New(style), &lazyDrafter{})
	if len(args) > 0 {
		m.SetValue(strings.Join(args, " "))
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
