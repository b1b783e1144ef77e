package cli

import (
	"os"

	"github.com/spf13/cobra"

	mverrors "github.com/matzehuels/modelviewer/pkg/errors"
)

func (c *CLI) dotCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dot <model>",
		Short: "Print the Graphviz DOT document for a model",
		Long: `Generate the Graphviz DOT document for a model.

The document is written to stdout unless -o is given. A missing model file
produces no output.`,
		Example: `  modelviewer dot shop.uml
  modelviewer dot library.ecore -o library.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			// Diagnostics must not interleave with a document on stdout.
			diag := cmd.OutOrStdout()
			if output == "" {
				diag = cmd.ErrOrStderr()
			}
			doc, err := c.newGenerator(diag).GenerateDOT(ctx, args[0])
			if err != nil {
				return err
			}
			if doc == nil {
				printWarning(cmd.ErrOrStderr(), "Model %s not found, nothing to render", args[0])
				return nil
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := mverrors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return mverrors.Wrap(mverrors.ErrCodeExport, err, "write %s", output)
			}
			prog.done("Generated DOT")
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
