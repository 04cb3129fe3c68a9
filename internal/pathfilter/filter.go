// Package pathfilter applies configured exclusion patterns to candidate
// descriptor paths. Patterns are regular expressions tested against the
// POSIX-slash form of the path.
package pathfilter

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// DefaultPatterns excludes dependency-vendor directories from discovery.
var DefaultPatterns = []string{`(^|/)node_modules(/|$)`}

// Filter holds an ordered list of compiled exclusion patterns.
type Filter struct {
	patterns []*regexp.Regexp
}

// New compiles the given exclusion expressions into a Filter.
// An invalid expression fails the whole filter so misconfiguration
// surfaces at startup, not as silently-included paths later.
func New(exprs []string) (*Filter, error) {
	f := &Filter{}
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", expr, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Default returns a Filter with the default exclusion patterns.
func Default() *Filter {
	f, err := New(DefaultPatterns)
	if err != nil {
		panic(err) // DefaultPatterns are compile-checked by tests
	}
	return f
}

// Excluded reports whether path matches any exclusion pattern.
// The path is normalized to forward slashes before matching.
func (f *Filter) Excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range f.patterns {
		if re.MatchString(slashed) {
			return true
		}
	}
	return false
}
