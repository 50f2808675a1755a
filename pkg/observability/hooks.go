// Package observability provides hooks for metrics, tracing, and logging.
//
// Library code calls the registered hooks at well-defined points of a solve;
// the default hooks do nothing. The command line registers a logging adapter
// at startup, and other binaries can plug in their own backend without the
// solver importing it.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSearchStart(ctx, total, workers)
//	// ... test candidates ...
//	observability.Search().OnSearchComplete(ctx, area, checked, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the solve pipeline.
type SearchHooks interface {
	// OnLoad fires after the vertex list has been read and validated.
	OnLoad(ctx context.Context, source string, vertices int, err error)

	// OnRasterize fires after the column interval sets are built.
	OnRasterize(ctx context.Context, columns, breakpoints int, duration time.Duration, err error)

	// Candidate search events
	OnSearchStart(ctx context.Context, candidates, workers int)
	OnSearchProgress(ctx context.Context, checked, total int, area int64)
	OnSearchComplete(ctx context.Context, area int64, checked int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, backend string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, backend string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnLoad(context.Context, string, int, error)                         {}
func (NoopSearchHooks) OnRasterize(context.Context, int, int, time.Duration, error)        {}
func (NoopSearchHooks) OnSearchStart(context.Context, int, int)                            {}
func (NoopSearchHooks) OnSearchProgress(context.Context, int, int, int64)                  {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int64, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any solve.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
}
