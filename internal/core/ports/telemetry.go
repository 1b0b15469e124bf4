package ports

import (
	"context"
	"io"
)

// Tracer records units of work during a batch build.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work. Writes stream its output.
type Vertex interface {
	io.Writer
	// RecordError marks the vertex as failed.
	RecordError(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
	// End completes the vertex.
	End()
}
