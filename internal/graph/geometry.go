package graph

import "math"

// Point is a position in diagram units.
type Point struct {
	X, Y float64
}

// Segment is a straight line between two points. It is always complete:
// there is no half-built line.
type Segment struct {
	From, To Point
	Dashed   bool
}

// Shorten pulls both ends of the segment in by r so the line meets the edge
// of the circles drawn at its endpoints. Sloped segments are pulled along the
// diagram's fixed rise/run, slope = graph_height / x_step.
func (s Segment) Shorten(r, slope float64) Segment {
	hyp := math.Sqrt(1 + slope*slope)
	dx, dy := r/hyp, r*slope/hyp

	switch {
	case s.From.Y == s.To.Y:
		s.From.X += r
		s.To.X -= r
	case s.From.Y > s.To.Y:
		s.From.X += dx
		s.From.Y -= dy
		s.To.X -= dx
		s.To.Y += dy
	default:
		s.From.X += dx
		s.From.Y += dy
		s.To.X -= dx
		s.To.Y -= dy
	}
	return s
}

// Polyline pairs consecutive points into segments.
func Polyline(points []Point) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs = append(segs, Segment{From: points[i-1], To: points[i]})
	}
	return segs
}

// Circle is a filled mora dot.
type Circle struct {
	Center Point
	R      float64
}

// MarkShape selects the outline drawn around a devoiced label.
type MarkShape int

const (
	MarkCircle MarkShape = iota // Single glyph
	MarkRect                    // Fused glyph, rounded rectangle
)

// DevoicedMark is the dashed outline behind a devoiced label. Circles use
// Center and R; rectangles use Min, Size and R as the corner radius.
type DevoicedMark struct {
	Shape  MarkShape
	Center Point
	Min    Point
	Size   Point
	R      float64
}

// Label is one kana of the label row.
type Label struct {
	Text     string
	At       Point
	DX       float64
	Devoiced bool
	Mark     *DevoicedMark
}
