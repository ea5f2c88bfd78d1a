package cmd

import (
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/f3rmion/pitchgraph/internal/draft"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft [japanese text...]",
	Short: "Draft notation from plain Japanese text",
	Long: `Analyze plain Japanese and print a notation draft with furigana.
Particles are left bare; every other word gets an empty accent that
defaults to heiban until a pitch number is filled in.

Example:
  pitchgraph draft 猫が好きです
  → 猫[ねこ]: が 好[す]き: です:`,
	RunE: runDraft,
}

var draftWords bool

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.Flags().BoolVarP(&draftWords, "words", "w", false, "List the analyzed words instead")
}

func runDraft(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	d, err := draft.New()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !draftWords {
		fmt.Fprintln(out, d.Draft(text))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SURFACE\tREADING\tPOS\tNOTATION")
	for _, w := range d.Words(text) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Surface, w.Reading, w.POS, w.Notation())
	}
	return tw.Flush()
}

// lazyDrafter loads the dictionary on first use.
type lazyDrafter struct {
	once sync.Once
	d    *draft.Drafter
	err  error
}

func (l *lazyDrafter) Draft(text string) string {
	l.once.Do(func() {
		l.d, l.err = draft.New()
	})
	if l.err != nil {
		return text
	}
	return l.d.Draft(text)
}
