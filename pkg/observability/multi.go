package observability

import (
	"context"
	"time"
)

// multi forwards every event to each of its hooks in order.
type multi []Hooks

// Multi combines hooks so that each receives every event. Nil entries are
// dropped.
func Multi(hooks ...Hooks) Hooks {
	m := make(multi, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

func (m multi) OnGenerateStart(ctx context.Context, preset string, cx int) {
	for _, h := range m {
		h.OnGenerateStart(ctx, preset, cx)
	}
}

func (m multi) OnGenerateComplete(ctx context.Context, preset string, s GenerateStats, d time.Duration, err error) {
	for _, h := range m {
		h.OnGenerateComplete(ctx, preset, s, d, err)
	}
}

func (m multi) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range m {
		h.OnRenderStart(ctx, formats)
	}
}

func (m multi) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range m {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

func (m multi) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheHit(ctx, keyType)
	}
}

func (m multi) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (m multi) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, keyType, size)
	}
}

func (m multi) OnRequest(ctx context.Context, method, route string) {
	for _, h := range m {
		h.OnRequest(ctx, method, route)
	}
}

func (m multi) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, route, status, d)
	}
}
