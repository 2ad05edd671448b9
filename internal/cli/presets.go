package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/io"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
)

// presetsCommand creates the presets command.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in seed presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, presetTable(preset.All()))
			return nil
		},
	}

	cmd.AddCommand(c.presetsExportCommand())
	return cmd
}

// presetsExportCommand creates the "presets export" subcommand, which writes
// a preset as an editable seed file.
func (c *CLI) presetsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export <name>",
		Short:     "Write a preset as a seed file (TOML to stdout by default)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: preset.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.Lookup(args[0])
			if err != nil {
				return err
			}
			sf := &io.SeedFile{Name: p.Name, Description: p.Description, Seeds: p.Seeds}
			if output == "" || output == "-" {
				return io.WriteSeeds(sf, c.out, io.FormatTOML)
			}
			if err := io.ExportSeeds(sf, output); err != nil {
				return err
			}
			c.ui().success("Exported preset %s", p.Name)
			c.ui().file(output)
			c.ui().hint("Render it", "rectile render --seeds "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml, .yaml, .json)")
	return cmd
}

// presetTable renders presets as a bordered table.
func presetTable(presets []preset.Preset) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		name := p.Name
		if name == preset.Default {
			name += " *"
		}
		rows = append(rows, []string{name, fmt.Sprint(len(p.Seeds)), seedSummary(p), p.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Preset", "Seeds", "Center", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}

// seedSummary describes the seed at the center offset, if any.
func seedSummary(p preset.Preset) string {
	for _, s := range p.Seeds {
		if s.X == 0 && s.Y == 0 {
			return strings.TrimSpace(fmt.Sprintf("%gx%g", s.Width, s.Height))
		}
	}
	return "-"
}
