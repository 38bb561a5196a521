package types

import (
	"fmt"
	"path"
	"strings"
)

// TrackedPath is a file location relative to the home directory, using
// forward slashes, with no "." or ".." segments and no leading slash.
type TrackedPath string

// ParseTrackedPath validates s and returns it as a TrackedPath.
func ParseTrackedPath(s string) (TrackedPath, error) {
	if s == "" {
		return "", fmt.Errorf("tracked path cannot be empty")
	}
	if strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("tracked path %q contains a null byte", s)
	}
	if strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("tracked path %q must be relative", s)
	}
	if strings.Contains(s, `\`) {
		return "", fmt.Errorf("tracked path %q must use forward slashes", s)
	}
	for _, part := range strings.Split(s, "/") {
		switch part {
		case "":
			return "", fmt.Errorf("tracked path %q has an empty segment", s)
		case ".", "..":
			return "", fmt.Errorf("tracked path %q has a %q segment", s, part)
		}
	}
	return TrackedPath(s), nil
}

// String returns the path as a plain string
func (p TrackedPath) String() string {
	return string(p)
}

// Components splits the path into its segments.
func (p TrackedPath) Components() []string {
	return strings.Split(string(p), "/")
}

// Prefixes returns every leading sub-path, shortest first, ending with the
// path itself: "a/b/c" yields "a", "a/b", "a/b/c".
func (p TrackedPath) Prefixes() []string {
	parts := p.Components()
	out := make([]string, len(parts))
	for i := range parts {
		out[i] = strings.Join(parts[:i+1], "/")
	}
	return out
}

// HasPrefixDir reports whether p lies beneath the directory dir.
func (p TrackedPath) HasPrefixDir(dir string) bool {
	dir = strings.TrimSuffix(path.Clean(dir), "/")
	if dir == "." || dir == "" {
		return true
	}
	return strings.HasPrefix(string(p), dir+"/")
}
