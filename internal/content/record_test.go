package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_Fields(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "modules", "auth", "pages", "3rd-party", "sso.adoc")

	r := NewRecord(root, path)
	assert.Equal(t, path, r.Path)
	assert.Equal(t, "modules/auth/pages/3rd-party/sso.adoc", r.RelPath)
	assert.Equal(t, ".adoc", r.Ext)
	assert.Equal(t, "sso", r.Stem)
	assert.Equal(t, root, r.Root)
	assert.False(t, r.Loaded())
}

func TestContents_LazyLoadAndCache(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "modules", "ROOT", "partials", "snippet.adoc"),
		"This is lazy-loaded partial content.")

	r := NewRecord(root, path)
	require.False(t, r.Loaded())

	data, err := r.Contents()
	require.NoError(t, err)
	assert.Equal(t, "This is lazy-loaded partial content.", string(data))
	assert.True(t, r.Loaded())

	// Second access serves the cached bytes: rewriting the file on disk is
	// invisible until the record is reset.
	require.NoError(t, os.WriteFile(path, []byte("changed on disk"), 0644))
	again, err := r.Contents()
	require.NoError(t, err)
	assert.Equal(t, "This is lazy-loaded partial content.", string(again))
}

func TestResetContents_ForcesReread(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "modules", "ROOT", "pages", "index.adoc"), "v1")

	r := NewRecord(root, path)
	data, err := r.Contents()
	require.NoError(t, err)
	require.Equal(t, "v1", string(data))

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
	r.ResetContents()
	assert.False(t, r.Loaded())

	data, err = r.Contents()
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestContents_ReadErrorSurfaces(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	r := NewRecord(root, filepath.Join(root, "modules", "ROOT", "pages", "gone.adoc"))

	_, err := r.Contents()
	require.Error(t, err)
	// A failed load leaves the record unloaded so a later retry re-reads.
	assert.False(t, r.Loaded())
}
