package discovery

import (
	"path"
	"strings"
)

// Filter filters identifiers and labels by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches pattern. The last path element of name
// is matched with path.Match (* and ? wildcards); a pattern with * also matches
// when all its literal parts appear in that element; a pattern without
// wildcards is a substring match. An empty pattern, or one made only of *,
// matches everything.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	base := path.Base(name)

	if matched, err := path.Match(pattern, base); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		nonEmpty := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			nonEmpty = true
			if !strings.Contains(base, part) {
				return false
			}
		}
		return nonEmpty
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(base, pattern)
	}
	return false
}

// FilterByName keeps the names matching pattern
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}
	var filtered []string
	for _, n := range names {
		if f.Match(n, pattern) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
