package telemetry

import "github.com/vito/progrock"

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write streams output onto the vertex's stdout.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// RecordError marks the vertex as failed when it ends.
func (v *Vertex) RecordError(err error) {
	v.err = err
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// End completes the vertex with any recorded error.
func (v *Vertex) End() {
	v.vertex.Done(v.err)
}
