package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	f, err := New([]string{`[unclosed`})
	assert.Error(t, err)
	assert.Nil(t, f)
}

func TestDefault_ExcludesNodeModules(t *testing.T) {
	t.Parallel()

	f := Default()
	assert.True(t, f.Excluded("docs/node_modules/pkg/antora.yml"))
	assert.True(t, f.Excluded("node_modules/antora.yml"))
	assert.False(t, f.Excluded("docs/components/api/antora.yml"))
	// Substring of a longer segment must not match.
	assert.False(t, f.Excluded("docs/my_node_modules_backup/antora.yml"))
}

func TestExcluded_OrderedPatterns(t *testing.T) {
	t.Parallel()

	f, err := New([]string{`/private/`, `\.bak$`})
	require.NoError(t, err)

	assert.True(t, f.Excluded("docs/private/antora.yml"))
	assert.True(t, f.Excluded("docs/api/antora.yml.bak"))
	assert.False(t, f.Excluded("docs/api/antora.yml"))
}

func TestExcluded_EmptyFilter(t *testing.T) {
	t.Parallel()

	f, err := New(nil)
	require.NoError(t, err)
	assert.False(t, f.Excluded("anything/at/all"))
}
