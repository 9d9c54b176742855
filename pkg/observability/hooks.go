// Package observability provides hooks for metrics and tracing of layout
// generation, rendering and the HTTP server.
//
// Hooks keep the core packages free of any particular metrics backend. The
// binary registers implementations at startup; libraries emit events through
// the registered hooks and pay nothing when none are registered.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    // ... run application
//	}
//
// Libraries emit events:
//
//	observability.Generation().OnAttempt(ctx, graphID, attempt, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the layout builder.
type GenerationHooks interface {
	// OnGenerateStart fires once per Generate call.
	OnGenerateStart(ctx context.Context, graphs, templates int)

	// OnGraphPicked fires at the start of each outer iteration.
	OnGraphPicked(ctx context.Context, graphID string, pick int)

	// OnAttempt fires after every placement attempt. err is nil on success.
	OnAttempt(ctx context.Context, graphID string, attempt int, err error)

	// OnConnectFailed fires for each recoverable doorway failure inside an attempt.
	OnConnectFailed(ctx context.Context, nodeID string, reason error)

	// OnGenerateComplete fires once with the total number of attempts made.
	OnGenerateComplete(ctx context.Context, rooms, attempts int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP server.
type ServerHooks interface {
	// OnRequest records an incoming request after routing.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnGenerateStart(context.Context, int, int)                          {}
func (NoopGenerationHooks) OnGraphPicked(context.Context, string, int)                         {}
func (NoopGenerationHooks) OnAttempt(context.Context, string, int, error)                      {}
func (NoopGenerationHooks) OnConnectFailed(context.Context, string, error)                     {}
func (NoopGenerationHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	serverHooks     ServerHooks     = NoopServerHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	renderHooks = NoopRenderHooks{}
	serverHooks = NoopServerHooks{}
}
