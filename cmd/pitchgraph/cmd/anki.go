package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/anki"
	"github.com/f3rmion/pitchgraph/internal/render"
	"github.com/spf13/cobra"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for inspecting Anki .apkg files and filling them with pitch diagrams.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types and their fields
  - Sample notes

Example:
  pitchgraph anki inspect japanese.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiApplyCmd = &cobra.Command{
	Use:   "apply <file.apkg>",
	Short: "Render a notation field of every note into another field",
	Long: `Read the notation in --source of every note, render it and store the
diagrams in --target. Note types that lack the target fields get them.

Examples:
  pitchgraph anki apply japanese.apkg --source Pitch --target Graph
  pitchgraph anki apply japanese.apkg --source Pitch --target Graph --colored Sentence -o out.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiApply,
}

var (
	ankiInspectLimit int
	ankiSource       string
	ankiTarget       string
	ankiColored      string
	ankiOutput       string
	ankiConcurrency  int
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiApplyCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	ankiApplyCmd.Flags().StringVarP(&ankiSource, "source", "s", "", "Field holding the notation")
	ankiApplyCmd.Flags().StringVarP(&ankiTarget, "target", "t", "", "Field receiving the diagrams")
	ankiApplyCmd.Flags().StringVar(&ankiColored, "colored", "", "Field receiving the colored sentence")
	ankiApplyCmd.Flags().StringVarP(&ankiOutput, "output", "o", "", "Output .apkg (default <input>-pitch.apkg)")
	ankiApplyCmd.Flags().IntVarP(&ankiConcurrency, "concurrency", "j", 8, "Notes rendered at once")
	ankiApplyCmd.MarkFlagRequired("source")
	ankiApplyCmd.MarkFlagRequired("target")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Opening: %s\n\n", path)

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprint(out, pkg.Summary())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Field Details:")
	for _, model := range pkg.SortedModels() {
		fmt.Fprintf(out, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(out, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Sample Notes (first %d):\n", ankiInspectLimit)
	for i, note := range pkg.Notes {
		if i >= ankiInspectLimit {
			break
		}
		modelName := "unknown"
		if model := pkg.Model(note); model != nil {
			modelName = model.Name
		}

		fmt.Fprintf(out, "\n  Note %d (%s):\n", note.ID, modelName)
		names := pkg.FieldNames(note)
		for j, value := range note.Fields {
			name := fmt.Sprintf("Field %d", j)
			if j < len(names) {
				name = names[j]
			}
			fmt.Fprintf(out, "    %s: %s\n", name, truncate(value, 60))
		}
	}

	return nil
}

func runAnkiApply(cmd *cobra.Command, args []string) error {
	path := args[0]
	style, err := loadStyle()
	if err != nil {
		return err
	}
	log := newLogger().With("package", path)
	defer log.Sync()

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	res, err := anki.Apply(cmd.Context(), pkg, render.New(style), anki.ApplyOptions{
		Source:        ankiSource,
		Target:        ankiTarget,
		ColoredTarget: ankiColored,
		Concurrency:   ankiConcurrency,
	}, log)
	if err != nil {
		return err
	}
	if res.Notes == 0 {
		return fmt.Errorf("no note type has a field named %q", ankiSource)
	}

	output := ankiOutput
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "-pitch.apkg"
	}
	if err := pkg.SaveAs(output); err != nil {
		return fmt.Errorf("saving package: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d of %d notes (%d empty, %d skipped)\nWrote %s\n",
		res.Rendered, res.Notes, res.Empty, res.Skipped, output)
	return nil
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
