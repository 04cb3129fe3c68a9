package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestList_MatchesFixedContentDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	page := writeFile(t, filepath.Join(root, "modules", "auth", "pages", "sso.adoc"), "= SSO")
	nested := writeFile(t, filepath.Join(root, "modules", "auth", "pages", "3rd-party", "saml.adoc"), "= SAML")
	partial := writeFile(t, filepath.Join(root, "modules", "ROOT", "partials", "snippet.adoc"), "snip")
	image := writeFile(t, filepath.Join(root, "modules", "ROOT", "images", "logo.png"), "png")
	example := writeFile(t, filepath.Join(root, "modules", "ROOT", "examples", "main.go"), "package main")
	attachment := writeFile(t, filepath.Join(root, "modules", "ROOT", "attachments", "cli.zip"), "zip")
	asset := writeFile(t, filepath.Join(root, "modules", "ROOT", "assets", "site.css"), "css")

	// Outside the content shape: not listed.
	writeFile(t, filepath.Join(root, "modules", "auth", "nav.adoc"), "* nav")
	writeFile(t, filepath.Join(root, "modules", "auth", "drafts", "wip.adoc"), "wip")
	writeFile(t, filepath.Join(root, "README.adoc"), "= Readme")

	ix := NewIndex()
	got := ix.List(root)
	assert.ElementsMatch(t, []string{page, nested, partial, image, example, attachment, asset}, got)
}

func TestList_NoModulesDir(t *testing.T) {
	t.Parallel()

	ix := NewIndex()
	assert.Empty(t, ix.List(t.TempDir()))
}

func TestList_CachedPerRoot(t *testing.T) {
	t.Parallel()

	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "modules", "ROOT", "pages", "a.adoc"), "a")
	writeFile(t, filepath.Join(rootB, "modules", "ROOT", "pages", "b.adoc"), "b")

	ix := NewIndex()
	require.Len(t, ix.List(rootA), 1)
	require.Len(t, ix.List(rootB), 1)

	// New file under rootA is invisible until that root is invalidated.
	writeFile(t, filepath.Join(rootA, "modules", "ROOT", "pages", "a2.adoc"), "a2")
	assert.Len(t, ix.List(rootA), 1)

	ix.InvalidateRoot(rootA)
	assert.Len(t, ix.List(rootA), 2)
	// rootB untouched by rootA's invalidation.
	assert.Len(t, ix.List(rootB), 1)
}

func TestMatchesContentShape(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchesContentShape("modules/auth/pages/sso.adoc"))
	assert.True(t, MatchesContentShape("modules/ROOT/partials/deep/nested/snippet.adoc"))
	assert.False(t, MatchesContentShape("modules/auth/nav.adoc"))
	assert.False(t, MatchesContentShape("modules/auth/drafts/wip.adoc"))
	assert.False(t, MatchesContentShape("pages/sso.adoc"))
}

func TestOwnerRoot(t *testing.T) {
	t.Parallel()

	roots := []string{"/ws/docs/api", "/ws/docs", "/ws/other"}

	owner, ok := OwnerRoot("/ws/docs/api/modules/auth/pages/sso.adoc", roots)
	require.True(t, ok)
	// Deepest containing root wins.
	assert.Equal(t, "/ws/docs/api", owner)

	owner, ok = OwnerRoot("/ws/docs/modules/ROOT/pages/index.adoc", roots)
	require.True(t, ok)
	assert.Equal(t, "/ws/docs", owner)

	_, ok = OwnerRoot("/elsewhere/modules/ROOT/pages/index.adoc", roots)
	assert.False(t, ok)
}
