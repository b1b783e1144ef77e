package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/modelviewer/pkg/dot"
	"github.com/matzehuels/modelviewer/pkg/model"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect <model>",
		Short: "Browse the contents of a model",
		Long: `Browse the containment tree of a model interactively.

When stdout is not a terminal, or with --plain, the tree is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			res, unload, err := c.loadModel(ctx, args[0])
			if err != nil {
				return err
			}
			defer unload()
			if res == nil {
				printWarning(out, "Model %s not found", args[0])
				return nil
			}

			title := fmt.Sprintf("%s (%d elements)", dot.GraphName(args[0]), res.Len())
			if plain || !isTerminal(out) {
				printInfo(out, "%s", title)
				printTree(out, res.Contents())
				return nil
			}
			_, err = tea.NewProgram(NewTreeModel(title, res.Contents()), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the tree instead of the interactive browser")
	return cmd
}

// loadModel loads location for read-only use. A missing file yields a nil
// resource and a nil error. The returned func unloads the resource.
func (c *CLI) loadModel(ctx context.Context, location string) (*model.Resource, func(), error) {
	rs := model.NewResourceSet()
	unload := func() {
		if err := rs.Unload(); err != nil {
			c.Logger.Warn("unload failed", "location", location, "err", err)
		}
	}
	res, err := rs.Load(ctx, location, model.LoadOptions{DisableNotify: true})
	if err != nil {
		unload()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}
	return res, unload, nil
}

// printTree writes an indented outline of the containment tree.
func printTree(w io.Writer, roots []*model.Element) {
	for _, r := range roots {
		r.Walk(func(e *model.Element) bool {
			fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", e.Depth()+1), StyleValue.Render(e.Label()), StyleDim.Render(e.Kind))
			return true
		})
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
