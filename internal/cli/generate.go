package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/io"
	"github.com/matzehuels/rectile/pkg/pipeline"
)

// generateCommand creates the generate command, which prints the tiling as
// a JSON document.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags   tilingFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a tiling and write it as JSON",
		Example: `  rectile generate
  rectile generate --preset square --cx 16 -o square.json
  rectile generate --seeds seeds.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags(), c.Config.Tiling)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runGenerate(cmd, opts, output, noCache)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	data := res.Artifacts[pipeline.FormatJSON]
	if output == "" || output == "-" {
		_, err = c.out.Write(data)
		return err
	}
	if err := io.WriteArtifact(output, data); err != nil {
		return err
	}
	c.ui().success("Generated %d rectangles", res.Stats.Rectangles)
	c.ui().file(output)
	return nil
}
