package filesystem

import (
	"path/filepath"
	"strings"
)

// Excluder decides which entries are pruned from a walk
type Excluder struct {
	fragments []string
}

// NewExcluder creates an excluder from name fragments. Matching is
// case-insensitive; empty fragments are ignored.
func NewExcluder(fragments []string) *Excluder {
	lowered := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			lowered = append(lowered, f)
		}
	}
	return &Excluder{fragments: lowered}
}

// ShouldSkip reports whether path is hidden or contains an excluded fragment
// anywhere in its full path. Substring matching also catches nested paths
// whose ancestors match, and intentionally matches partial names.
func (e *Excluder) ShouldSkip(path string) bool {
	if isHidden(filepath.Base(path)) {
		return true
	}

	lower := strings.ToLower(path)
	for _, f := range e.fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// Fragments returns the normalized exclusion fragments
func (e *Excluder) Fragments() []string {
	out := make([]string, len(e.fragments))
	copy(out, e.fragments)
	return out
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	// Unix-like systems: files starting with dot
	return len(name) > 0 && name[0] == '.'
}
