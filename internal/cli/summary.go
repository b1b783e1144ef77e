package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelviewer/pkg/dot"
	"github.com/matzehuels/modelviewer/pkg/model"
)

func (c *CLI) summaryCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "summary <model>",
		Short: "Summarize a model as markdown",
		Long: `Summarize a model's element kinds and containment tree.

The markdown is rendered for the terminal when stdout is a TTY; use --raw to
always print plain markdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res, unload, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer unload()
			if res == nil {
				printWarning(out, "Model %s not found", args[0])
				return nil
			}

			md := summarize(dot.GraphName(args[0]), res)
			if !raw && isTerminal(out) {
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
				if err != nil {
					return err
				}
				if md, err = r.Render(md); err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(out, md)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

// summarize describes res as markdown: totals, a kind histogram, and an outline.
func summarize(title string, res *model.Resource) string {
	counts := map[string]int{}
	refs := 0
	for _, r := range res.Contents() {
		r.Walk(func(e *model.Element) bool {
			counts[e.Kind]++
			refs += len(e.References)
			return true
		})
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Format:** %s · **Elements:** %d · **References:** %d\n\n", res.Format().Name(), res.Len(), refs)

	if len(kinds) > 0 {
		b.WriteString("## Kinds\n\n| Kind | Count |\n| --- | ---: |\n")
		for _, k := range kinds {
			fmt.Fprintf(&b, "| %s | %d |\n", k, counts[k])
		}
		b.WriteString("\n## Contents\n\n")
	}
	for _, r := range res.Contents() {
		r.Walk(func(e *model.Element) bool {
			fmt.Fprintf(&b, "%s- **%s** _%s_\n", strings.Repeat("  ", e.Depth()), e.Label(), e.Kind)
			return true
		})
	}
	return b.String()
}
