package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/pipeline"
)

// treeCommand creates the tree command, which draws the order in which the
// traversal discovered each rectangle.
func (c *CLI) treeCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the traversal's discovery tree (DOT, SVG, PNG, PDF)",
		Long: `Render the discovery tree of a tiling: one node per rectangle, with an edge
from each rectangle to every neighbor it placed. The center is drawn with a
double outline. DOT output needs no external tools; other formats use Graphviz.`,
		Example: `  rectile tree
  rectile tree --preset square -f svg -o square-tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, pipeline.ViewTree, &opts)
		},
	}

	opts.register(cmd)
	return cmd
}
