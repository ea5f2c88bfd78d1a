package graph

import (
	"html"
	"math"
	"strconv"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

type svgWriter struct {
	b strings.Builder
	d *Diagram
}

func (w *svgWriter) attr(name, value string) {
	w.b.WriteByte(' ')
	w.b.WriteString(name)
	w.b.WriteString(`="`)
	w.b.WriteString(value)
	w.b.WriteByte('"')
}

func (w *svgWriter) line(s Segment) {
	st := w.d.Style
	w.b.WriteString("<line")
	if s.Dashed {
		w.attr("stroke-dasharray", st.StrokeDasharray)
	}
	w.attr("stroke", "black")
	w.attr("stroke-width", num(st.StrokeWidth))
	w.attr("x1", coord(s.From.X))
	w.attr("y1", coord(s.From.Y))
	w.attr("x2", coord(s.To.X))
	w.attr("y2", coord(s.To.Y))
	w.b.WriteString(" />")
}

func (w *svgWriter) circle(c Circle) {
	w.b.WriteString("<circle")
	w.attr("fill", "black")
	w.attr("stroke", "black")
	w.attr("stroke-width", num(w.d.Style.StrokeWidth))
	w.attr("cx", num(c.Center.X))
	w.attr("cy", num(c.Center.Y))
	w.attr("r", num(c.R))
	w.b.WriteString("></circle>")
}

func (w *svgWriter) mark(m DevoicedMark) {
	st := w.d.Style
	if m.Shape == MarkCircle {
		w.b.WriteString("<circle")
		w.attr("class", "devoiced")
		w.attr("fill", "none")
		w.attr("stroke", "black")
		w.attr("cx", num(m.Center.X))
		w.attr("cy", num(m.Center.Y))
		w.attr("stroke-width", num(st.DevoicedCircleWidth))
		w.attr("r", num(m.R))
	} else {
		w.b.WriteString("<rect")
		w.attr("fill", "none")
		w.attr("stroke", "black")
		w.attr("x", num(m.Min.X))
		w.attr("y", num(m.Min.Y))
		w.attr("width", num(m.Size.X))
		w.attr("height", num(m.Size.Y))
		w.attr("rx", num(m.R))
		w.attr("stroke-width", num(st.DevoicedCircleWidth))
	}
	w.attr("stroke-dasharray", st.DevoicedStrokeDasharray)
	w.b.WriteString(" />")
}

func (w *svgWriter) text(l Label) {
	if l.Mark != nil {
		w.mark(*l.Mark)
	}
	w.b.WriteString("<text")
	if l.Devoiced {
		w.attr("class", "devoiced")
	}
	w.attr("font-size", num(w.d.Style.FontSize)+"px")
	w.attr("fill", "black")
	w.attr("x", num(l.At.X))
	w.attr("y", num(l.At.Y))
	w.attr("dx", num(l.DX))
	w.b.WriteByte('>')
	w.b.WriteString(html.EscapeString(l.Text))
	w.b.WriteString("</text>")
}

func (w *svgWriter) open(class string) {
	w.b.WriteString(`<g class="`)
	w.b.WriteString(class)
	w.b.WriteString(`">`)
}

func (w *svgWriter) close() {
	w.b.WriteString("</g>")
}

func (w *svgWriter) groups(class string, groups []Group) {
	w.open(class)
	for _, g := range groups {
		w.open(g.Class)
		for _, s := range g.Segments {
			w.line(s)
		}
		for _, c := range g.Circles {
			w.circle(c)
		}
		for _, l := range g.Labels {
			w.text(l)
		}
		w.close()
	}
	w.close()
}

// SVG serializes a diagram as a standalone <svg> element. Colors are left to
// the host stylesheet, which targets the role class of each group.
func SVG(d *Diagram) string {
	if d == nil {
		return ""
	}
	w := &svgWriter{d: d}
	w.b.WriteString("<svg")
	w.attr("style", "font-family: "+html.EscapeString(d.Style.GraphFont))
	w.attr("viewBox", "0 0 "+num(d.Width)+" "+num(d.Height))
	w.attr("height", num(math.Trunc(d.VisibleHeight))+"px")
	w.attr("xmlns", svgNamespace)
	w.b.WriteByte('>')

	w.groups("paths", d.Paths)
	w.groups("circles", d.Circles)
	if !d.Style.NoText {
		w.groups("text", d.Text)
	}

	w.b.WriteString("</svg>")
	return w.b.String()
}
