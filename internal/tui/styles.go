// Package tui provides the interactive notation preview.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/pitchgraph/internal/graph"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Prompt, navigation
	ColorAccent    = lipgloss.Color("#ffe66d") // Input text
	ColorMuted     = lipgloss.Color("#666666") // Help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Copied
	ColorText      = lipgloss.Color("#f1faee")
	ColorBg        = lipgloss.Color("#1a1a2e")
	ColorBorder    = lipgloss.Color("#3d5a80")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	NavStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	NotationStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// roleStyle colors a class the way the diagram stylesheet does.
func roleStyle(palette graph.Palette, class string) lipgloss.Style {
	c, _ := palette.Resolve(class)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(graph.Hex(c)))
}
