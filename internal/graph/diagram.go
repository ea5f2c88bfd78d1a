// Package graph lays out a resolved sentence as a pitch diagram and
// serializes it as SVG or PNG.
//
// Morae are placed left to right, one x_step apart, on a high row or a low
// row. Labels sit on a third row below the low one.
package graph

import (
	"math"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/notation"
	"github.com/f3rmion/pitchgraph/internal/pitch"
)

// ConnectorClass is the class of the group holding a connector segment.
const ConnectorClass = "connector"

// Group is the geometry of one section (or one connector) under its class.
type Group struct {
	Class    string
	Segments []Segment
	Circles  []Circle
	Labels   []Label
}

// Diagram is the laid-out geometry of one sentence.
type Diagram struct {
	Width         float64
	Height        float64
	VisibleHeight float64

	Paths   []Group // Section lines, each followed by its incoming connector
	Circles []Group
	Text    []Group // Empty when labels are off

	Notation []string // Tokens of the drawn sections
	Style    config.Style
}

// CircleCount returns the number of mora dots.
func (d *Diagram) CircleCount() int {
	n := 0
	for _, g := range d.Circles {
		n += len(g.Circles)
	}
	return n
}

// Segments returns every line of the diagram, connectors included.
func (d *Diagram) Segments() []Segment {
	var out []Segment
	for _, g := range d.Paths {
		out = append(out, g.Segments...)
	}
	return out
}

// Visible keeps the sections that take part in the layout: those with morae,
// pitch breaks and tapes.
func Visible(seq pitch.Sequence) pitch.Sequence {
	var out pitch.Sequence
	for _, s := range seq {
		if len(s.Moraes) > 0 || notation.IsPitchBreak(s.Word) || s.IsTape {
			out = append(out, s)
		}
	}
	return out
}

// Drawn reports whether a section puts circles on the diagram.
func Drawn(s *pitch.Section) bool {
	return s.Role != pitch.RoleEmpty && !s.IsTape && len(s.Moraes) > 0
}

func shouldConnect(s, prev *pitch.Section) bool {
	if prev.IsTape {
		return true
	}
	return s.Role != pitch.RoleEmpty && prev.Role != pitch.RoleEmpty
}

// LevelAt returns the row of mora j. A sokuon right after a low first mora
// stays low.
func LevelAt(s *pitch.Section, j int) pitch.Level {
	if j >= len(s.Levels) {
		return pitch.Low
	}
	if j == 1 && kana.IsSokuon(s.Moraes[j]) && s.Levels[0] == pitch.Low {
		return pitch.Low
	}
	return s.Levels[j]
}

type layout struct {
	style   config.Style
	high    float64
	low     float64
	kanaRow float64
	slope   float64
}

func newLayout(style config.Style) layout {
	high := style.SizeUnit
	low := high + style.GraphHeight
	return layout{
		style:   style,
		high:    high,
		low:     low,
		kanaRow: low + style.XStep,
		slope:   style.GraphHeight / style.XStep,
	}
}

func (l layout) row(level pitch.Level) float64 {
	if level == pitch.High {
		return l.high
	}
	return l.low
}

func (l layout) label(m pitch.Mora, x float64) Label {
	width := float64(kana.Width(m))
	lb := Label{
		Text:     m.Text,
		At:       Point{X: x, Y: l.kanaRow},
		DX:       math.Trunc(l.style.TextDX) * width,
		Devoiced: m.Devoiced,
	}
	if m.Devoiced {
		mark := l.devoicedMark(m, x)
		lb.Mark = &mark
	}
	return lb
}

func (l layout) devoicedMark(m pitch.Mora, x float64) DevoicedMark {
	st := l.style
	if kana.Width(m) == 1 {
		return DevoicedMark{
			Shape: MarkCircle,
			Center: Point{
				X: x + st.FontSize/2 + st.TextDX,
				Y: l.kanaRow + st.TextDX + math.Ceil(st.StrokeWidth),
			},
			R: st.DevoicedCircleRadius,
		}
	}
	return DevoicedMark{
		Shape: MarkRect,
		Min: Point{
			X: x - st.FontSize - st.DevoicedRectanglePadding,
			Y: l.kanaRow - st.FontSize - math.Floor(st.StrokeWidth),
		},
		Size: Point{
			X: 2*st.FontSize + 2*st.DevoicedRectanglePadding,
			Y: 2 * st.DevoicedCircleRadius,
		},
		R: st.DevoicedCircleRadius,
	}
}

// Assemble lays out one resolved sentence. It returns nil when the sentence
// has no mora to draw.
func Assemble(seq pitch.Sequence, style config.Style) *Diagram {
	visible := Visible(seq)
	moraCount := 0
	for _, s := range visible {
		if Drawn(s) {
			moraCount += len(s.Moraes)
		}
	}
	if moraCount == 0 {
		return nil
	}

	l := newLayout(style)
	d := &Diagram{
		Width:    float64(moraCount)*style.XStep + 2*style.GraphHorizontalPadding,
		Notation: visible.Raw(),
		Style:    style,
	}

	x := style.SizeUnit + style.GraphHorizontalPadding
	var last *Point
	for i, s := range visible {
		if !Drawn(s) {
			continue
		}

		var (
			points  []Point
			circles []Circle
			labels  []Label
		)
		for j, m := range s.Moraes {
			p := Point{X: x, Y: l.row(LevelAt(s, j))}
			points = append(points, p)
			circles = append(circles, Circle{Center: p, R: style.CircleRadius})
			if !kana.IsGhost(m) {
				labels = append(labels, l.label(m, x))
			}
			x += style.XStep
		}

		segs := Polyline(points)
		for k := range segs {
			segs[k] = segs[k].Shorten(style.CircleRadius, l.slope)
		}

		class := s.ClassName()
		d.Circles = append(d.Circles, Group{Class: class, Circles: circles})
		d.Paths = append(d.Paths, Group{Class: class, Segments: segs})
		d.Text = append(d.Text, Group{Class: class, Labels: labels})

		if last != nil && i > 0 && shouldConnect(s, visible[i-1]) {
			conn := Segment{From: *last, To: points[0], Dashed: visible[i-1].IsTape}
			d.Paths = append(d.Paths, Group{
				Class:    ConnectorClass,
				Segments: []Segment{conn.Shorten(style.CircleRadius, l.slope)},
			})
		}
		last = &points[len(points)-1]
	}

	withText := l.kanaRow + style.SizeUnit
	noText := l.low + style.SizeUnit
	if style.NoText {
		d.Height = noText
		d.VisibleHeight = math.Trunc(noText / withText * style.GraphVisibleHeight)
		d.Text = nil
	} else {
		d.Height = withText
		d.VisibleHeight = style.GraphVisibleHeight
	}
	return d
}
