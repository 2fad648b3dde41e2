// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pathway fetching, overlay application, layout passes,
// cache operations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPathwayHooks(&myPathwayHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pathway().OnFetchStart(ctx, pathwayID)
//	// ... fetch and translate ...
//	observability.Pathway().OnFetchComplete(ctx, pathwayID, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pathway Hooks
// =============================================================================

// PathwayHooks receives events from the fetch, overlay, layout and render
// stages of the pathway pipeline.
type PathwayHooks interface {
	// Fetch events
	OnFetchStart(ctx context.Context, pathwayID string)
	OnFetchComplete(ctx context.Context, pathwayID string, nodeCount int, duration time.Duration, err error)

	// Overlay events
	OnOverlayApplied(ctx context.Context, pathwayID string, matched, edgeCount int)

	// Layout events
	OnLayoutStart(ctx context.Context, template string, nodeCount int)
	OnLayoutComplete(ctx context.Context, template string, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPathwayHooks is a no-op implementation of PathwayHooks.
type NoopPathwayHooks struct{}

func (NoopPathwayHooks) OnFetchStart(context.Context, string) {}
func (NoopPathwayHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPathwayHooks) OnOverlayApplied(context.Context, string, int, int)                  {}
func (NoopPathwayHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPathwayHooks) OnLayoutComplete(context.Context, string, time.Duration, error)      {}
func (NoopPathwayHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPathwayHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pathwayHooks PathwayHooks = NoopPathwayHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetPathwayHooks registers custom pathway pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPathwayHooks(h PathwayHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pathwayHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pathway returns the registered pathway hooks.
func Pathway() PathwayHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pathwayHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pathwayHooks = NoopPathwayHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
