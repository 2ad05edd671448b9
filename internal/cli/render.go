package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/io"
	"github.com/matzehuels/rectile/pkg/pipeline"
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// renderOpts holds the command-line flags for the render and tree commands.
type renderOpts struct {
	flags   tilingFlags
	output  string  // output file (single format) or base path
	formats string  // comma-separated formats
	scale   float64 // PNG device-pixel ratio
	from    string  // re-render a JSON document instead of generating
	noCache bool
	refresh bool
}

// renderCommand creates the render command for writing tiling images.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tiling to SVG, PNG, PDF or JSON files",
		Example: `  rectile render
  rectile render --preset square -f svg,png -o out/square
  rectile render --from classic.json -f pdf --label`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, pipeline.ViewTiles, &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (o *renderOpts) register(cmd *cobra.Command) {
	o.flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s), comma-separated")
	cmd.Flags().Float64Var(&o.scale, "scale", sink.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&o.from, "from", "", "render a JSON document written by 'generate' instead of generating")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// runRender generates (or loads) a tiling and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, view string, ro *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	defaults := c.Config.Render.Formats
	scale := c.Config.Render.Scale
	if cmd.Flags().Changed("scale") {
		scale = ro.scale
	}
	if view == pipeline.ViewTree {
		defaults = []string{pipeline.FormatDOT}
	}

	var (
		artifacts map[string][]byte
		name      string
		cached    bool
		rects     int
		timings   []any
		warnings  *tiling.Result
		spinner   *Spinner
	)

	if ro.from != "" {
		doc, err := io.ImportDocument(ro.from)
		if err != nil {
			return err
		}
		opts := pipeline.Options{
			Config:  ro.flags.apply(cmd.Flags(), doc.Config),
			Preset:  doc.Preset,
			View:    view,
			Formats: parseFormats(ro.formats, defaults),
			Scale:   scale,
			Logger:  logger,
		}
		if err := opts.ValidateForRender(); err != nil {
			return err
		}
		logger.Infof("Rendering %s", ro.from)
		artifacts, err = pipeline.Render(ctx, pipeline.FromDocument(doc), opts)
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(filepath.Base(ro.from), filepath.Ext(ro.from))
		rects = len(doc.Rectangles)
	} else {
		opts, err := ro.flags.options(cmd.Flags(), c.Config.Tiling)
		if err != nil {
			return err
		}
		opts.View = view
		opts.Formats = parseFormats(ro.formats, defaults)
		opts.Scale = scale
		opts.Refresh = ro.refresh

		runner, err := c.newRunner(ctx, ro.noCache)
		if err != nil {
			return err
		}
		defer runner.Close()

		if !c.verbose {
			spinner = newSpinnerWithContext(ctx, "Generating "+opts.Preset+"...")
			spinner.Start()
			defer spinner.Stop()
		}
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			return err
		}
		warnings = res.Tiling
		artifacts = res.Artifacts
		name = res.Document.Preset
		cached = res.CacheInfo.GenerateHit && res.CacheInfo.RenderHit
		rects = res.Stats.Rectangles
		timings = []any{
			"generate", res.Stats.GenerateTime.Round(time.Millisecond),
			"render", res.Stats.RenderTime.Round(time.Millisecond),
		}
	}

	paths := outputPaths(ro.output, filepath.Join(c.Config.Render.OutputDir, name), view, sortedKeys(artifacts))
	for _, format := range sortedKeys(artifacts) {
		if spinner != nil {
			spinner.SetMessage("Writing " + paths[format] + "...")
		}
		if err := io.WriteArtifact(paths[format], artifacts[format]); err != nil {
			return err
		}
	}
	if spinner != nil {
		spinner.Stop()
	}

	ui := c.ui()
	ui.tilingWarnings(warnings)
	ui.success("Rendered %s", name)
	ui.summary(rects, len(artifacts), cached)
	for _, format := range sortedKeys(artifacts) {
		ui.file(paths[format])
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(artifacts)), timings...)
	return nil
}

// outputPaths maps each format to a file path. A single format with an
// explicit output uses it verbatim; otherwise the output (minus a known
// extension) or fallback is the base path. Tree files get a "_tree" suffix
// unless the output was explicit.
func outputPaths(output, fallback, view string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = fallback
		if view == pipeline.ViewTree {
			base += "_tree"
		}
	} else if ext := filepath.Ext(base); pipeline.ValidTreeFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
