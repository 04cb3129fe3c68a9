package config

// Config represents the complete docatlas configuration.
// It can be loaded from .docatlas/config.yml with environment variable overrides.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
}

// WorkspaceConfig defines how component descriptors are discovered.
type WorkspaceConfig struct {
	DescriptorName string   `yaml:"descriptor_name" mapstructure:"descriptor_name"` // descriptor file name, e.g. "antora.yml"
	Exclude        []string `yaml:"exclude" mapstructure:"exclude"`                 // regex patterns over slash paths
}

// WatchConfig defines filesystem watching behavior.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`         // subscribe to filesystem events
	DebounceMs int  `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before events are delivered
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			DescriptorName: "antora.yml",
			Exclude: []string{
				`(^|/)node_modules(/|$)`,
			},
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 300,
		},
	}
}
