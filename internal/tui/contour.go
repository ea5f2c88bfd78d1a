package tui

import (
	"strings"

	"github.com/f3rmion/pitchgraph/internal/graph"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/pitch"
	"github.com/mattn/go-runewidth"
)

const (
	dotFilled = "●"
	dotHollow = "○"
	breakBar  = "│"
	tapeMark  = "┄"
)

// column is one mora of the terminal contour.
type column struct {
	level pitch.Level
	label string
	class string
	mark  string // Replaces the dot for breaks and tapes
}

func columns(seq pitch.Sequence) []column {
	var out []column
	for _, s := range graph.Visible(seq) {
		switch {
		case s.IsTape:
			out = append(out, column{mark: tapeMark})
			continue
		case !graph.Drawn(s):
			out = append(out, column{mark: breakBar})
			continue
		}
		for j, m := range s.Moraes {
			label := m.Text
			if kana.IsGhost(m) {
				label = ""
			} else if m.Devoiced {
				label = "(" + label + ")"
			}
			out = append(out, column{
				level: graph.LevelAt(s, j),
				label: label,
				class: s.ClassName(),
			})
		}
	}
	return out
}

// Contour draws a sentence as three terminal rows: high dots, low dots and
// kana. Columns are padded to the display width of their label.
func Contour(seq pitch.Sequence, palette graph.Palette) string {
	var high, low, text strings.Builder
	for i, c := range columns(seq) {
		if i > 0 {
			high.WriteByte(' ')
			low.WriteByte(' ')
			text.WriteByte(' ')
		}
		width := max(runewidth.StringWidth(c.label), 2)
		pad := func(s string) string {
			return runewidth.FillRight(s, width)
		}

		if c.mark != "" {
			high.WriteString(pad(c.mark))
			low.WriteString(pad(c.mark))
			text.WriteString(pad(""))
			continue
		}

		dot := dotFilled
		if strings.Contains(c.class, pitch.RoleParticle.String()) {
			dot = dotHollow
		}
		style := roleStyle(palette, c.class)
		if c.level == pitch.High {
			high.WriteString(style.Render(pad(dot)))
			low.WriteString(pad(""))
		} else {
			high.WriteString(pad(""))
			low.WriteString(style.Render(pad(dot)))
		}
		text.WriteString(LabelStyle.Render(pad(c.label)))
	}
	return strings.Join([]string{
		strings.TrimRight(high.String(), " "),
		strings.TrimRight(low.String(), " "),
		strings.TrimRight(text.String(), " "),
	}, "\n")
}
