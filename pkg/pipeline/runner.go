package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rectile/pkg/cache"
	"github.com/matzehuels/rectile/pkg/observability"
	"github.com/matzehuels/rectile/pkg/render/sink"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger; each run owns a
// fresh grid. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache write. Zero means DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	res, hash, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tiling = res
	result.InputHash = hash
	result.Document = sink.NewDocument(opts.Preset, opts.Config, res)
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Rectangles = len(res.Rectangles)
	result.Stats.Iterations = res.Iterations
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated tiling",
		"preset", opts.Preset,
		"rectangles", len(res.Rectangles),
		"iterations", res.Iterations,
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"view", opts.View,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo generates a tiling with caching. It returns the
// tiling, its input hash and whether it came from the cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*tiling.Result, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, "", false, err
	}

	hash, err := opts.InputHash()
	if err != nil {
		return nil, "", false, fmt.Errorf("hash inputs: %w", err)
	}
	cacheKey := r.Keyer.TilingKey(hash)

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Preset, opts.Config.CX)
	start := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, ok := r.get(ctx, cacheKey, "tiling"); ok {
			if doc, err := sink.ParseJSON(data); err == nil {
				res := FromDocument(doc)
				warn(opts, res)
				hooks.OnGenerateComplete(ctx, opts.Preset, stats(res), time.Since(start), nil)
				return res, hash, true, nil
			}
			// Undecodable entry: fall through and regenerate
		}
	}

	res, err := Generate(opts)
	hooks.OnGenerateComplete(ctx, opts.Preset, stats(res), time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := sink.RenderJSON(sink.NewDocument(opts.Preset, opts.Config, res)); err == nil {
		r.set(ctx, cacheKey, "tiling", data)
	}

	return res, hash, false, nil
}

// RenderWithCacheInfo renders artifacts for a tiling with caching and
// returns whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *tiling.Result, inputHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
			data, ok := r.get(ctx, key, "artifact")
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := Render(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format)), "artifact", data)
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key from the cache. Cache errors are logged and treated as
// misses so a failing backend never fails a run.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte) {
	ttl := r.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func stats(res *tiling.Result) observability.GenerateStats {
	if res == nil {
		return observability.GenerateStats{}
	}
	return observability.GenerateStats{
		Rectangles: len(res.Rectangles),
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Conflicts:  len(res.Conflicts),
	}
}
