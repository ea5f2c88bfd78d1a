package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/pitchgraph/internal/clipboard"
	"github.com/f3rmion/pitchgraph/internal/graph"
	"github.com/f3rmion/pitchgraph/internal/render"
)

// Drafter turns plain Japanese into notation.
type Drafter interface {
	Draft(text string) string
}

type draftResultMsg struct {
	notation string
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Model is the Bubble Tea model of the preview.
//
// While editing, keys go to the input. Enter renders and switches to
// browsing, where ←/→ cycle sentences and y copies the SVG.
type Model struct {
	input    textinput.Model
	renderer *render.Renderer
	drafter  Drafter
	palette  graph.Palette

	graphs   []render.Graph
	selected int
	browsing bool
	drafting bool
	err      error
	copied   bool

	width int
}

// New creates a preview. drafter may be nil.
func New(r *render.Renderer, drafter Drafter) Model {
	ti := textinput.New()
	ti.Placeholder = "大物[おおもの]:2 が まで:p1"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		input:    ti,
		renderer: r,
		drafter:  drafter,
		palette:  graph.DefaultPalette(),
	}
}

// SetValue prefills the input.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.browsing {
			return m.updateBrowsing(msg)
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.renderInput()
			return m, nil
		case "ctrl+d":
			cmd := m.draft()
			return m, cmd
		}

	case draftResultMsg:
		m.drafting = false
		m.input.SetValue(msg.notation)
		m.input.CursorEnd()
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "e", "i":
		m.browsing = false
		m.input.Focus()
		return m, textinput.Blink
	case "left", "h", "shift+tab":
		if n := len(m.graphs); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}
	case "right", "l", "tab":
		if n := len(m.graphs); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "y":
		if m.selected < len(m.graphs) {
			if err := clipboard.Write(m.graphs[m.selected].SVG); err != nil {
				m.err = err
				return m, nil
			}
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		}
	}
	return m, nil
}

// renderInput renders the current input.
func (m *Model) renderInput() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}

	m.err = nil
	m.selected = 0
	m.graphs = m.renderer.Render(text)
	if len(m.graphs) == 0 {
		m.err = fmt.Errorf("nothing to draw in: %s", text)
		return
	}
	m.browsing = true
	m.input.Blur()
}

func (m *Model) draft() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	if m.drafter == nil {
		m.err = errors.New("drafting is not available")
		return nil
	}
	m.drafting = true
	d := m.drafter
	return func() tea.Msg {
		return draftResultMsg{notation: d.Draft(text)}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("pitchgraph"))
	b.WriteString("  ")
	b.WriteString(SubtitleStyle.Render("pitch accent preview"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.drafting:
		b.WriteString(HelpStyle.Render("  Drafting..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.browsing && m.selected < len(m.graphs) {
		b.WriteString(m.renderGraph(m.graphs[m.selected]))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("←/→ sentence • y copy svg • e edit • q quit"))
	} else {
		b.WriteString(HelpStyle.Render("enter render • ctrl+d draft from plain text • esc quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderGraph(g render.Graph) string {
	header := NavStyle.Render(fmt.Sprintf("◀ %d/%d ▶", m.selected+1, len(m.graphs)))
	if m.copied {
		header += "  " + CopiedStyle.Render("Copied!")
	}

	body := header + "\n\n" +
		Contour(g.Sequence, m.palette) + "\n\n" +
		NotationStyle.Render(strings.Join(g.Notation, " "))

	style := BoxStyle
	if m.width > 6 {
		style = style.MaxWidth(m.width - 2)
	}
	return style.Render(body)
}
