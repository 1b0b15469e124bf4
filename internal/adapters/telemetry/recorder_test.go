package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/zerr"
)

func TestRecorder_RecordAndEnd(t *testing.T) {
	rec := telemetry.New()

	_, v := rec.Record(context.Background(), "compile styles/main.kln")
	n, err := v.Write([]byte("ok\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	v.End()

	assert.NoError(t, rec.Close())
}

func TestRecorder_FailedVertex(t *testing.T) {
	rec := telemetry.New()

	_, v := rec.Record(context.Background(), "compile styles/broken.kln")
	v.RecordError(zerr.New("boom"))
	v.End()

	assert.NoError(t, rec.Close())
}

func TestNoOpTracer(t *testing.T) {
	tr := telemetry.NewNoOpTracer()

	_, v := tr.Record(context.Background(), "anything")
	n, err := v.Write([]byte("discarded"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	v.Cached()
	v.End()

	assert.NoError(t, tr.Close())
}
