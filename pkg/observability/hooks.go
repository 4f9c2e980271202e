// Package observability provides hooks for metrics and tracing of renders.
//
// This package enables optional instrumentation without tying the renderer
// to a specific observability backend. A [RenderHooks] value is handed to
// the renderer when it is constructed; there is no process-wide registry,
// so two renderers in one process can report to different sinks.
//
// # Usage
//
// Attach hooks when creating a renderer:
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheusHooks(reg)
//	r := diagram.New(diagram.WithHooks(hooks))
//
// The renderer calls hooks at each stage:
//
//	hooks.OnBuild(ctx, nodeCount, edgeCount, duration)
//	hooks.OnTrace(ctx, steps, accepted, err)
//	hooks.OnExport(ctx, format, size, duration, err)
package observability

import (
	"context"
	"time"
)

// RenderHooks receives events from diagram rendering.
type RenderHooks interface {
	// OnBuild records a completed graph construction.
	OnBuild(ctx context.Context, nodes, edges int, duration time.Duration)

	// OnTrace records a path trace. err is the tracer's error, if any.
	OnTrace(ctx context.Context, steps int, accepted bool, err error)

	// OnExport records a layout engine invocation for one output format.
	OnExport(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnBuild(context.Context, int, int, time.Duration)            {}
func (NoopRenderHooks) OnTrace(context.Context, int, bool, error)                   {}
func (NoopRenderHooks) OnExport(context.Context, string, int, time.Duration, error) {}

// Multi fans events out to several hooks in order. Nil entries are skipped.
func Multi(hooks ...RenderHooks) RenderHooks {
	var out multiHooks
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type multiHooks []RenderHooks

func (m multiHooks) OnBuild(ctx context.Context, nodes, edges int, d time.Duration) {
	for _, h := range m {
		h.OnBuild(ctx, nodes, edges, d)
	}
}

func (m multiHooks) OnTrace(ctx context.Context, steps int, accepted bool, err error) {
	for _, h := range m {
		h.OnTrace(ctx, steps, accepted, err)
	}
}

func (m multiHooks) OnExport(ctx context.Context, format string, size int, d time.Duration, err error) {
	for _, h := range m {
		h.OnExport(ctx, format, size, d, err)
	}
}
