package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
)

func TestHasher_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kln")
	require.NoError(t, os.WriteFile(path, []byte("body { }\n"), 0o600))

	h := fs.NewHasher()

	first, err := h.Fingerprint(path)
	require.NoError(t, err)

	// Stable for unchanged content.
	again, err := h.Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Changes with content, even when the size stays the same.
	require.NoError(t, os.WriteFile(path, []byte("body { X\n"), 0o600))
	changed, err := h.Fingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestHasher_FingerprintMissingFile(t *testing.T) {
	h := fs.NewHasher()

	_, err := h.Fingerprint(filepath.Join(t.TempDir(), "absent.kln"))
	assert.Error(t, err)
}
