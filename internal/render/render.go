// Package render runs the whole notation pipeline: text in, diagrams out.
package render

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/contour"
	"github.com/f3rmion/pitchgraph/internal/graph"
	"github.com/f3rmion/pitchgraph/internal/notation"
	"github.com/f3rmion/pitchgraph/internal/pitch"
	"golang.org/x/sync/errgroup"
)

// Graph is one rendered sentence.
type Graph struct {
	Notation []string
	Sequence pitch.Sequence
	Diagram  *graph.Diagram
	SVG      string
	Comment  string
	Colored  string
}

// Renderer turns notation text into diagrams with a fixed style. It holds no
// mutable state and is safe for concurrent use.
type Renderer struct {
	Style config.Style
}

// New creates a renderer.
func New(style config.Style) *Renderer {
	return &Renderer{Style: style}
}

// Parse resolves every sentence of text without laying it out.
func (r *Renderer) Parse(text string) []pitch.Sequence {
	var out []pitch.Sequence
	for _, tokens := range notation.Split(text) {
		seq := notation.ParseSequence(tokens, r.Style.ConvertReading)
		out = append(out, contour.Build(seq))
	}
	return out
}

// Render lays out every sentence of text. Sentences without a visible mora
// are skipped.
func (r *Renderer) Render(text string) []Graph {
	var out []Graph
	for _, seq := range r.Parse(text) {
		d := graph.Assemble(seq, r.Style)
		if d == nil {
			continue
		}
		out = append(out, Graph{
			Notation: d.Notation,
			Sequence: seq,
			Diagram:  d,
			SVG:      graph.SVG(d),
			Comment:  Comment(d.Notation),
			Colored:  ColoredSentence(seq),
		})
	}
	return out
}

// HTML renders text as the snippet embedded in a card: each diagram preceded
// by a comment recording its source tokens.
func (r *Renderer) HTML(text string) string {
	graphs := r.Render(text)
	parts := make([]string, len(graphs))
	for i, g := range graphs {
		parts[i] = g.Comment + "\n" + g.SVG
	}
	return strings.Join(parts, "\n")
}

// Colored renders text as colored sentences, one per diagram source.
func (r *Renderer) Colored(text string) string {
	var parts []string
	for _, seq := range r.Parse(text) {
		if c := ColoredSentence(seq); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// RenderParallel renders independent texts concurrently. Results are in input
// order.
func (r *Renderer) RenderParallel(ctx context.Context, texts []string, limit int) ([][]Graph, error) {
	out := make([][]Graph, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rendering text %d: %w", i, err)
			}
			out[i] = r.Render(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Comment records the tokens a diagram was drawn from. A "--" in the tokens
// would end the comment early and is written as character references.
func Comment(tokens []string) string {
	text := strings.ReplaceAll(strings.Join(tokens, " "), "--", "&#45;&#45;")
	return `<!-- generated using syntax: "` + text + `" -->`
}

var rubyRe = regexp.MustCompile(`([^\[\]]+)\[([^\]]+)\]`)

// Ruby turns bracket furigana into ruby markup and escapes everything else.
//
//	稼[かせ]いで → <ruby>稼<rt>かせ</rt></ruby>いで
func Ruby(word string) string {
	var b strings.Builder
	last := 0
	for _, m := range rubyRe.FindAllStringSubmatchIndex(word, -1) {
		b.WriteString(html.EscapeString(word[last:m[0]]))
		fmt.Fprintf(&b, "<ruby>%s<rt>%s</rt></ruby>",
			html.EscapeString(word[m[2]:m[3]]), html.EscapeString(word[m[4]:m[5]]))
		last = m[1]
	}
	b.WriteString(html.EscapeString(word[last:]))
	return b.String()
}

// ColoredSentence writes the words of a sentence as spans classed by role.
// Hidden words and tapes are left out.
func ColoredSentence(seq pitch.Sequence) string {
	var b strings.Builder
	for _, s := range seq {
		if notation.IsHidden(s.Word) || s.IsTape {
			continue
		}
		fmt.Fprintf(&b, `<span class="%s">%s</span>`, s.ClassName(), Ruby(s.Written))
	}
	return b.String()
}
