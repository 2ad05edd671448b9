package observability

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

// Counters tallies events in memory. The HTTP server reports them at
// /v1/stats.
type Counters struct {
	Noop

	generations    atomic.Int64
	generateErrors atomic.Int64
	unconverged    atomic.Int64
	renders        atomic.Int64
	renderErrors   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	cacheBytes     atomic.Int64
	requests       atomic.Int64
	serverErrors   atomic.Int64
}

// CounterSnapshot is a point-in-time copy of Counters.
type CounterSnapshot struct {
	Generations    int64 `json:"generations"`
	GenerateErrors int64 `json:"generate_errors"`
	Unconverged    int64 `json:"unconverged"`
	Renders        int64 `json:"renders"`
	RenderErrors   int64 `json:"render_errors"`
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	CacheBytes     int64 `json:"cache_bytes_written"`
	Requests       int64 `json:"requests"`
	ServerErrors   int64 `json:"server_errors"`
}

func NewCounters() *Counters { return &Counters{} }

func (c *Counters) OnGenerateComplete(_ context.Context, _ string, s GenerateStats, _ time.Duration, err error) {
	if err != nil {
		c.generateErrors.Add(1)
		return
	}
	c.generations.Add(1)
	if !s.Converged {
		c.unconverged.Add(1)
	}
}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err != nil {
		c.renderErrors.Add(1)
		return
	}
	c.renders.Add(1)
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.requests.Add(1)
	if status >= http.StatusInternalServerError {
		c.serverErrors.Add(1)
	}
}

// Snapshot reads every counter. Counters updated concurrently may be read
// at slightly different instants.
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Generations:    c.generations.Load(),
		GenerateErrors: c.generateErrors.Load(),
		Unconverged:    c.unconverged.Load(),
		Renders:        c.renders.Load(),
		RenderErrors:   c.renderErrors.Load(),
		CacheHits:      c.cacheHits.Load(),
		CacheMisses:    c.cacheMisses.Load(),
		CacheBytes:     c.cacheBytes.Load(),
		Requests:       c.requests.Load(),
		ServerErrors:   c.serverErrors.Load(),
	}
}

var _ Hooks = (*Counters)(nil)
