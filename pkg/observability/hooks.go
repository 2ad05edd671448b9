// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: libraries emit events through the registered
// hooks, which default to no-ops. Binaries register real implementations at
// startup, so the core packages never import a metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	counters := observability.NewCounters()
//	observability.Register(observability.Multi(observability.NewLogHooks(logger), counters))
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnGenerateStart(ctx, preset, cx)
//	// ... propagate and traverse ...
//	observability.Pipeline().OnGenerateComplete(ctx, preset, stats, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// GenerateStats summarizes one generation run.
type GenerateStats struct {
	Rectangles int
	Iterations int
	Converged  bool
	Conflicts  int
}

// PipelineHooks receives events from the tiling pipeline.
type PipelineHooks interface {
	// Generation events (propagation + traversal)
	OnGenerateStart(ctx context.Context, preset string, cx int)
	OnGenerateComplete(ctx context.Context, preset string, stats GenerateStats, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "tiling" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Hooks is the union of all hook kinds, for implementations that handle
// every event.
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// Noop ignores every event.
type Noop struct{}

func (Noop) OnGenerateStart(context.Context, string, int)                                    {}
func (Noop) OnGenerateComplete(context.Context, string, GenerateStats, time.Duration, error) {}
func (Noop) OnRenderStart(context.Context, []string)                                         {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)                {}
func (Noop) OnCacheHit(context.Context, string)                                              {}
func (Noop) OnCacheMiss(context.Context, string)                                             {}
func (Noop) OnCacheSet(context.Context, string, int)                                         {}
func (Noop) OnRequest(context.Context, string, string)                                       {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)                  {}

var _ Hooks = Noop{}

// =============================================================================
// Global Registry
// =============================================================================

// registry is replaced as a whole on every change, so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(apply func(*registry)) {
	for {
		old := current.Load()
		next := *old
		apply(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Register installs h for every hook kind. A nil h is ignored.
func Register(h Hooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline, r.cache, r.http = h, h, h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{pipeline: Noop{}, cache: Noop{}, http: Noop{}})
}
