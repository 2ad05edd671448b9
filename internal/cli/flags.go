package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/rectile/pkg/io"
	"github.com/matzehuels/rectile/pkg/pipeline"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
)

// tilingFlags holds the generation flags shared by several commands.
// Only flags the user actually set override the loaded configuration.
type tilingFlags struct {
	preset    string // built-in seed set
	seedsFile string // seed file (.toml, .yaml, .json); wins over preset
	cfg       tiling.Config
}

func (f *tilingFlags) register(fs *pflag.FlagSet) {
	d := tiling.DefaultConfig()
	fs.StringVarP(&f.preset, "preset", "p", preset.Default, "built-in seed preset")
	fs.StringVarP(&f.seedsFile, "seeds", "s", "", "seed file (.toml, .yaml, .json)")
	fs.IntVar(&f.cfg.CX, "cx", d.CX, "center index; the grid is 2*cx cells wide (multiple of 4)")
	fs.IntVar(&f.cfg.GridWidth, "grid-width", d.GridWidth, "side of the propagation square (even, < cx)")
	fs.Float64Var(&f.cfg.MaxSide, "max-side", d.MaxSide, "side length mapped to the hottest color")
	fs.Float64Var(&f.cfg.EdgeWidth, "edge-width", d.EdgeWidth, "stroke width")
	fs.BoolVar(&f.cfg.Colorize, "colorize", d.Colorize, "fill tiles by size")
	fs.BoolVar(&f.cfg.Label, "label", d.Label, "draw w,h labels")
	fs.IntVar(&f.cfg.MaxIterations, "max-iterations", d.MaxIterations, "propagation round cap")
	fs.IntVar(&f.cfg.CanvasSize, "canvas-size", d.CanvasSize, "image side in pixels")
	fs.StringVar(&f.cfg.Conflicts, "conflicts", d.Conflicts, "inconsistent seeds: ignore, record, fail")
}

// apply overlays the changed flags onto base. Setting --cx without
// --grid-width picks the matching grid width.
func (f *tilingFlags) apply(fs *pflag.FlagSet, base tiling.Config) tiling.Config {
	cfg := base
	if fs.Changed("cx") {
		cfg.CX = f.cfg.CX
		if !fs.Changed("grid-width") {
			cfg.GridWidth = tiling.SuggestGridWidth(cfg.CX)
		}
	}
	if fs.Changed("grid-width") {
		cfg.GridWidth = f.cfg.GridWidth
	}
	if fs.Changed("max-side") {
		cfg.MaxSide = f.cfg.MaxSide
	}
	if fs.Changed("edge-width") {
		cfg.EdgeWidth = f.cfg.EdgeWidth
	}
	if fs.Changed("colorize") {
		cfg.Colorize = f.cfg.Colorize
	}
	if fs.Changed("label") {
		cfg.Label = f.cfg.Label
	}
	if fs.Changed("max-iterations") {
		cfg.MaxIterations = f.cfg.MaxIterations
	}
	if fs.Changed("canvas-size") {
		cfg.CanvasSize = f.cfg.CanvasSize
	}
	if fs.Changed("conflicts") {
		cfg.Conflicts = f.cfg.Conflicts
	}
	return cfg
}

// options builds pipeline options from the flags, reading the seed file if
// one was given.
func (f *tilingFlags) options(fs *pflag.FlagSet, base tiling.Config) (pipeline.Options, error) {
	opts := pipeline.Options{Config: f.apply(fs, base), Preset: f.preset}
	if f.seedsFile == "" {
		return opts, nil
	}
	sf, err := io.ImportSeeds(f.seedsFile)
	if err != nil {
		return opts, err
	}
	opts.Preset = sf.Name
	opts.Seeds = sf.Seeds
	return opts, nil
}
