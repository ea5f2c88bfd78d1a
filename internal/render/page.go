package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/f3rmion/pitchgraph/internal/graph"
)

// PageData holds everything a page template can reference.
type PageData struct {
	Title      string
	Stylesheet string
	Graphs     []Graph
}

// PageGenerator writes rendered diagrams into a standalone HTML page.
type PageGenerator struct {
	template *template.Template
	palette  graph.Palette
}

// NewPageGenerator creates a generator with the default page template.
func NewPageGenerator() *PageGenerator {
	return &PageGenerator{
		template: template.Must(template.New("page").Parse(defaultPageTemplate)),
		palette:  graph.DefaultPalette(),
	}
}

// SetPalette replaces the colors written into the page stylesheet.
func (g *PageGenerator) SetPalette(p graph.Palette) {
	g.palette = p
}

// SetTemplate sets a custom page template.
func (g *PageGenerator) SetTemplate(tmpl string) error {
	t, err := template.New("page").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	g.template = t
	return nil
}

// Generate executes the page template.
func (g *PageGenerator) Generate(title string, graphs []Graph) (string, error) {
	data := PageData{
		Title:      title,
		Stylesheet: g.palette.Stylesheet(),
		Graphs:     graphs,
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

const defaultPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<title>{{ html .Title }}</title>
<style>
body {
    font-size: 25px;
    font-family: "Noto Serif", "Noto Serif CJK JP", "Yu Mincho", serif;
    background-color: #FFFAF0;
    color: #2A1B0A;
    display: grid;
    grid-template-columns: max-content max-content;
    row-gap: 8px;
    column-gap: 8px;
}
{{ .Stylesheet }}</style>
</head>
<body>
{{- range .Graphs }}
<div class="sentence">{{ .Colored }}</div>
<div class="graph">
{{ .Comment }}
{{ .SVG }}
</div>
{{- end }}
</body>
</html>`
