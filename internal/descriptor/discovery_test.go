package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docatlas/docatlas/internal/pathfilter"
)

func TestList_FindsDescriptorsWorkspaceWide(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	api := writeDescriptor(t, filepath.Join(root, "docs", "multiComponents", "api"), "name: api\nversion: \"1.0\"\n")
	cli := writeDescriptor(t, filepath.Join(root, "docs", "multiComponents", "cli"), "name: cli\nversion: \"2.0\"\n")
	top := writeDescriptor(t, root, "name: root\nversion: \"1.0\"\n")

	d := NewDiscovery(root, "antora.yml", pathfilter.Default())
	got := d.List()

	assert.ElementsMatch(t, []string{api, cli, top}, got)
}

func TestList_AppliesExclusionFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	kept := writeDescriptor(t, filepath.Join(root, "docs", "api"), "name: api\nversion: \"1.0\"\n")
	writeDescriptor(t, filepath.Join(root, "node_modules", "dep"), "name: dep\nversion: \"9.9\"\n")

	d := NewDiscovery(root, "antora.yml", pathfilter.Default())
	assert.Equal(t, []string{kept}, d.List())
}

func TestList_IgnoresOtherFileNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "antora.yaml"), []byte("name: x\nversion: \"1\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.adoc"), []byte("= Hi"), 0644))

	d := NewDiscovery(root, "antora.yml", pathfilter.Default())
	assert.Empty(t, d.List())
}

func TestList_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeDescriptor(t, filepath.Join(root, "api"), "name: api\nversion: \"1.0\"\n")

	d := NewDiscovery(root, "antora.yml", pathfilter.Default())
	require.Len(t, d.List(), 1)

	// A new descriptor is invisible until the list is invalidated.
	writeDescriptor(t, filepath.Join(root, "cli"), "name: cli\nversion: \"1.0\"\n")
	assert.Len(t, d.List(), 1)

	d.Invalidate()
	assert.Len(t, d.List(), 2)
}

func TestList_MissingRootDegradesToEmpty(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "gone")
	d := NewDiscovery(root, "antora.yml", pathfilter.Default())

	assert.Empty(t, d.List())

	// The failed walk must not poison the cache: once the root exists,
	// the next call discovers normally.
	writeDescriptor(t, filepath.Join(root, "api"), "name: api\nversion: \"1.0\"\n")
	assert.Len(t, d.List(), 1)
}

func TestIsDescriptorPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d := NewDiscovery(root, "antora.yml", pathfilter.Default())

	assert.True(t, d.IsDescriptorPath(filepath.Join(root, "docs", "api", "antora.yml")))
	assert.False(t, d.IsDescriptorPath(filepath.Join(root, "docs", "api", "page.adoc")))
	assert.False(t, d.IsDescriptorPath(filepath.Join(root, "node_modules", "dep", "antora.yml")))
}
