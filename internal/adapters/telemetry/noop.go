package telemetry

import (
	"context"

	"go.trai.ch/kiln/internal/core/ports"
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Record creates a new no-op vertex.
func (t *NoOpTracer) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (t *NoOpTracer) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Write does nothing and reports p as written.
func (v *NoOpVertex) Write(p []byte) (int, error) { return len(p), nil }

// RecordError does nothing.
func (v *NoOpVertex) RecordError(error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}

// End does nothing.
func (v *NoOpVertex) End() {}
