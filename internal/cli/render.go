package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelviewer/pkg/export"
	"github.com/matzehuels/modelviewer/pkg/viewer"
)

type renderOpts struct {
	output  string
	format  string
	engine  string
	width   int
	height  int
	noCache bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <model>",
		Short: "Export a model diagram as an image or document",
		Long: `Render a model with Graphviz and write the result to a file.

The format is taken from --format, then from the output file extension, then
from the config file. --width and --height are advisory; exports keep the
size Graphviz lays out. A missing model produces an empty output file.`,
		Example: `  modelviewer render shop.uml -o shop.svg
  modelviewer render library.ecore -o library.png --engine neato`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpg, svg, xdot, dot")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "Graphviz layout engine (default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "suggested width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "suggested height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prog := newProgress(loggerFromContext(ctx))

	format, err := c.resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	bridge, store, err := c.newBridge(ctx, opts.engine, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := viewer.NewContentProvider(c.newGenerator(out), bridge)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s with %s...", input, bridge.Engine()))
	spinner.Start()
	if err := provider.SaveImage(ctx, image.Pt(opts.width, opts.height), input, opts.output, format); err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()

	prog.done("Rendered " + input)
	printSuccess(out, "Rendered %s as %s", input, format)
	printFile(out, opts.output)
	return nil
}

// resolveFormat picks the export format from the flag, the output extension,
// or the configured default, in that order.
func (c *CLI) resolveFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if f, ok := export.FormatForPath(output); ok {
		return f, nil
	}
	return export.ParseFormat(c.cfg().Export.Format)
}
