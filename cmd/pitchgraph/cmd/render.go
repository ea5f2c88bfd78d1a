package cmd

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/graph"
	"github.com/f3rmion/pitchgraph/internal/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [notation...]",
	Short: "Render notation to SVG, HTML or PNG",
	Long: `Render pitch accent notation. Without arguments the notation is read
from stdin.

Formats:
  svg      card snippet: one comment and <svg> per sentence (default)
  html     standalone page with a stylesheet coloring every accent type
  colored  the sentence as <span> elements classed by accent type
  png      raster image; one file per sentence when --output is given

Examples:
  pitchgraph render '大物[おおもの]:2 が'
  echo 'がっこう:0 に いく:0' | pitchgraph render --format html -o out.html
  pitchgraph render 'じんせい:1,0' --format png -o jinsei.png`,
	RunE: runRender,
}

var (
	renderFormat string
	renderOutput string
	renderFont   string
	renderScale  float64
	renderBg     bool
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "svg", "Output format: svg, html, colored, png")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (stdout if not specified)")
	renderCmd.Flags().StringVar(&renderFont, "font", "", "Font file for png labels (searches the system if empty)")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "Pixels per unit for png (fits the visible height if 0)")
	renderCmd.Flags().BoolVar(&renderBg, "background", true, "Paint a white background behind png output")
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	style, err := loadStyle()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	r := render.New(style)
	graphs := r.Render(text)
	log.Debug("rendered", "format", renderFormat, "graphs", len(graphs))
	if len(graphs) == 0 {
		return fmt.Errorf("nothing to draw")
	}

	if renderFormat == "png" {
		return writePNGs(cmd, graphs)
	}

	var out string
	switch renderFormat {
	case "svg":
		out = r.HTML(text)
	case "colored":
		out = r.Colored(text)
	case "html":
		out, err = render.NewPageGenerator().Generate(firstLine(text), graphs)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", renderFormat)
	}

	w, closeFn, err := openOutput(cmd, renderOutput)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		closeFn()
		return fmt.Errorf("writing output: %w", err)
	}
	return closeFn()
}

func writePNGs(cmd *cobra.Command, graphs []render.Graph) error {
	opts := graph.PNGOptions{Scale: renderScale, FontPath: renderFont}
	if renderBg {
		opts.Background = color.White
	}

	if renderOutput == "" {
		return graph.PNG(cmd.OutOrStdout(), graphs[0].Diagram, opts)
	}

	for i, g := range graphs {
		path := numberedPath(renderOutput, i, len(graphs))
		w, closeFn, err := openOutput(cmd, path)
		if err != nil {
			return err
		}
		if err := graph.PNG(w, g.Diagram, opts); err != nil {
			closeFn()
			return err
		}
		if err := closeFn(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}
	return nil
}

// numberedPath returns path unchanged for a single file, and path with a
// -1, -2 … suffix before the extension otherwise.
func numberedPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}
