package anki

import (
	"context"
	"fmt"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/logger"
	"github.com/f3rmion/pitchgraph/internal/render"
	"golang.org/x/sync/errgroup"
)

// ApplyOptions selects the fields an Apply run reads and writes.
type ApplyOptions struct {
	Source        string // Field holding the notation
	Target        string // Field receiving the diagrams
	ColoredTarget string // Optional field receiving the colored sentence
	Concurrency   int    // Notes rendered at once; 0 means unlimited
}

// ApplyResult counts what an Apply run did.
type ApplyResult struct {
	Notes    int // Notes whose type has the source field
	Rendered int // Notes that got at least one diagram
	Empty    int // Notes whose source rendered nothing
	Skipped  int // Notes of other types
}

type rendered struct {
	html    string
	colored string
}

// Apply renders the source field of every matching note into the target
// fields, adding the target fields to note types that lack them. Rendering
// runs in parallel; the package is only modified afterwards.
func Apply(ctx context.Context, pkg *Package, r *render.Renderer, opts ApplyOptions, log *logger.Logger) (ApplyResult, error) {
	var res ApplyResult
	if opts.Source == "" || opts.Target == "" {
		return res, fmt.Errorf("source and target fields are required")
	}

	for _, model := range pkg.SortedModels() {
		if !model.HasField(opts.Source) {
			continue
		}
		for _, name := range []string{opts.Target, opts.ColoredTarget} {
			if name == "" {
				continue
			}
			added, err := pkg.EnsureField(model.ID, name)
			if err != nil {
				return res, err
			}
			if added {
				log.Info("added field", "model", model.Name, "field", name)
			}
		}
	}

	var notes []*Note
	for _, note := range pkg.Notes {
		if model := pkg.Model(note); model == nil || !model.HasField(opts.Source) {
			res.Skipped++
			continue
		}
		notes = append(notes, note)
	}
	res.Notes = len(notes)

	out := make([]rendered, len(notes))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, note := range notes {
		source := pkg.FieldValue(note, opts.Source)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rendering note %d: %w", note.ID, err)
			}
			graphs := r.Render(source)
			html := make([]string, len(graphs))
			colored := make([]string, len(graphs))
			for j, gr := range graphs {
				html[j] = gr.Comment + "\n" + gr.SVG
				colored[j] = gr.Colored
			}
			out[i] = rendered{html: strings.Join(html, "\n"), colored: strings.Join(colored, " ")}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	for i, note := range notes {
		if out[i].html == "" {
			res.Empty++
			log.Debug("nothing to render", "note", note.ID)
		} else {
			res.Rendered++
		}
		if err := pkg.SetField(note, opts.Target, out[i].html); err != nil {
			return res, err
		}
		if opts.ColoredTarget != "" {
			if err := pkg.SetField(note, opts.ColoredTarget, out[i].colored); err != nil {
				return res, err
			}
		}
	}

	log.Info("applied diagrams", "notes", res.Notes, "rendered", res.Rendered, "empty", res.Empty, "skipped", res.Skipped)
	return res, nil
}
