package graph

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// PNGOptions controls rasterization.
type PNGOptions struct {
	Scale      float64     // Pixels per diagram unit; 0 fits the visible height
	Background color.Color // nil for transparent
	Palette    Palette     // nil for DefaultPalette
	FontPath   string      // Label font; empty searches the system
	Face       font.Face   // Overrides FontPath
}

func (o PNGOptions) scale(d *Diagram) float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	if d.Height <= 0 {
		return 1
	}
	return d.VisibleHeight / d.Height
}

// dashes parses an SVG stroke-dasharray.
func dashes(pattern string, k float64) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(pattern, func(r rune) bool { return r == ' ' || r == ',' }) {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v*k)
		}
	}
	return out
}

// PNG rasterizes a diagram. Since no stylesheet applies to a raster, colors
// come from the palette.
func PNG(w io.Writer, d *Diagram, opts PNGOptions) error {
	if d == nil {
		return fmt.Errorf("rendering png: empty diagram")
	}
	k := opts.scale(d)
	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	st := d.Style

	dc := gg.NewContext(int(math.Ceil(d.Width*k)), int(math.Ceil(d.Height*k)))
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	dc.SetLineWidth(st.StrokeWidth * k)
	for _, g := range d.Paths {
		c, _ := palette.Resolve(g.Class)
		dc.SetColor(c)
		for _, s := range g.Segments {
			if s.Dashed {
				dc.SetDash(dashes(st.StrokeDasharray, k)...)
			} else {
				dc.SetDash()
			}
			dc.DrawLine(s.From.X*k, s.From.Y*k, s.To.X*k, s.To.Y*k)
			dc.Stroke()
		}
	}
	dc.SetDash()

	for _, g := range d.Circles {
		c, hollow := palette.Resolve(g.Class)
		dc.SetColor(c)
		for _, circle := range g.Circles {
			dc.DrawCircle(circle.Center.X*k, circle.Center.Y*k, circle.R*k)
			if hollow {
				dc.Stroke()
				continue
			}
			dc.FillPreserve()
			dc.Stroke()
		}
	}

	if len(d.Text) > 0 {
		face := opts.Face
		if face == nil && opts.FontPath != "" {
			var err error
			if face, err = LoadFace(opts.FontPath, st.FontSize*k); err != nil {
				return err
			}
		}
		if face == nil {
			face = SystemFace(st.FontSize * k)
		}
		dc.SetFontFace(face)
		drawLabels(dc, d, palette, k)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func drawLabels(dc *gg.Context, d *Diagram, palette Palette, k float64) {
	st := d.Style
	for _, g := range d.Text {
		c, _ := palette.Resolve(g.Class)
		for _, l := range g.Labels {
			if m := l.Mark; m != nil {
				dc.SetColor(c)
				dc.SetLineWidth(st.DevoicedCircleWidth * k)
				dc.SetDash(dashes(st.DevoicedStrokeDasharray, k)...)
				if m.Shape == MarkCircle {
					dc.DrawCircle(m.Center.X*k, m.Center.Y*k, m.R*k)
				} else {
					dc.DrawRoundedRectangle(m.Min.X*k, m.Min.Y*k, m.Size.X*k, m.Size.Y*k, m.R*k)
				}
				dc.Stroke()
				dc.SetDash()
			}
			dc.SetColor(c)
			dc.DrawString(l.Text, (l.At.X+l.DX)*k, l.At.Y*k)
		}
	}
}
