// Package pipeline provides the generate → render pipeline for rectile.
//
// The CLI and the HTTP server both run tilings through this package, so
// defaults, validation and caching behave the same at every entry point.
//
// # Stages
//
//  1. Generate: seed the grid, propagate to a fixed point and traverse it
//     ([tiling.Generate])
//  2. Render: produce artifacts in the requested formats for one of two
//     views, the tiling itself or its discovery tree
//
// Both stages are cached. The generated tiling is stored as its JSON
// document under a hash of the configuration and seeds; each artifact is
// stored under that hash plus the render settings that affect its bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Preset:  "classic",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rectile/pkg/cache"
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// View constants select what is drawn.
const (
	// ViewTiles draws the rectangles.
	ViewTiles = "tiles"
	// ViewTree draws the traversal's discovery tree.
	ViewTree = "tree"
)

// CustomPreset names runs whose seeds were supplied directly.
const CustomPreset = "custom"

// DefaultTTL is how long cached tilings and artifacts are kept.
const DefaultTTL = 24 * time.Hour

// ValidFormats is the set of formats supported by the tiles view.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidTreeFormats is the set of formats supported by the tree view.
var ValidTreeFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewTiles: true,
	ViewTree:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options. Seeds take precedence over Preset; with neither,
	// the default preset is used.
	Config tiling.Config `json:"config"`
	Preset string        `json:"preset,omitempty"`
	Seeds  []tiling.Seed `json:"seeds,omitempty"`

	// Render options
	View    string   `json:"view,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cached results (they are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tiling is the generated tiling. Its Grid is nil when the tiling came
	// from the cache.
	Tiling *tiling.Result

	// Document is the JSON form of Tiling together with its inputs.
	Document sink.Document

	// InputHash is the content hash of the configuration and seeds.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rectangles   int
	Iterations   int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the tiling came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks formats against the set supported by view.
func ValidateFormats(view string, formats []string) error {
	allowed := ValidFormats
	if view == ViewTree {
		allowed = ValidTreeFormats
	}
	return errors.ValidateFormats(formats, allowed)
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view: %q (must be one of: tiles, tree)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the seeds, checks every field and fills
// in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate resolves preset seeds and validates the tiling
// configuration. A zero Config means the default configuration.
func (o *Options) ValidateForGenerate() error {
	if o.Config == (tiling.Config{}) {
		o.Config = tiling.DefaultConfig()
	}
	if len(o.Seeds) == 0 {
		if o.Preset == "" {
			o.Preset = preset.Default
		}
		p, err := preset.Lookup(o.Preset)
		if err != nil {
			return err
		}
		o.Seeds = p.Seeds
	} else if o.Preset == "" {
		o.Preset = CustomPreset
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := tiling.ValidateSeeds(o.Seeds); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = ViewTiles
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.View, o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsTree returns true if the discovery tree is rendered.
func (o *Options) IsTree() bool {
	return o.View == ViewTree
}

// InputHash hashes everything that determines the generated tiling.
func (o *Options) InputHash() (string, error) {
	return cache.HashJSON(struct {
		Config tiling.Config `json:"config"`
		Seeds  []tiling.Seed `json:"seeds"`
	}{o.Config, o.Seeds})
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Scale only affects raster output, so other formats share one entry.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		View:       o.View,
		Format:     format,
		CanvasSize: o.Config.CanvasSize,
		EdgeWidth:  o.Config.EdgeWidth,
		Colorize:   o.Config.Colorize,
		Label:      o.Config.Label,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
