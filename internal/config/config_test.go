package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "antora.yml", cfg.Workspace.DescriptorName)
	assert.Contains(t, cfg.Workspace.Exclude, `(^|/)node_modules(/|$)`)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 300, cfg.Watch.DebounceMs)
	require.NoError(t, Validate(cfg))
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Workspace.DescriptorName, cfg.Workspace.DescriptorName)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".docatlas")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	content := `workspace:
  descriptor_name: component.yml
  exclude:
    - "(^|/)vendor(/|$)"
watch:
  enabled: false
  debounce_ms: 50
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0644))

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)
	assert.Equal(t, "component.yml", cfg.Workspace.DescriptorName)
	assert.Equal(t, []string{"(^|/)vendor(/|$)"}, cfg.Workspace.Exclude)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 50, cfg.Watch.DebounceMs)
}

func TestLoad_InvalidExcludePattern(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".docatlas")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	content := `workspace:
  exclude:
    - "[unclosed"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0644))

	_, err := LoadConfigFromDir(rootDir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty descriptor name", func(c *Config) { c.Workspace.DescriptorName = "  " }, true},
		{"descriptor name with path", func(c *Config) { c.Workspace.DescriptorName = "docs/antora.yml" }, true},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }, true},
		{"bad exclude regex", func(c *Config) { c.Workspace.Exclude = []string{"("} }, true},
		{"no excludes is fine", func(c *Config) { c.Workspace.Exclude = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, Validate(nil))
}
