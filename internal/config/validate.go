package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Validate checks a configuration for consistency problems.
// It is called by the loader after unmarshaling so a bad config file or
// environment override fails loudly at startup.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	name := strings.TrimSpace(cfg.Workspace.DescriptorName)
	if name == "" {
		return fmt.Errorf("workspace.descriptor_name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("workspace.descriptor_name must be a bare file name, got %q", name)
	}

	for _, expr := range cfg.Workspace.Exclude {
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("workspace.exclude pattern %q: %w", expr, err)
		}
	}

	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms cannot be negative, got %d", cfg.Watch.DebounceMs)
	}

	return nil
}
