package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
)

const maxPathLength = 4096

// ValidatePath rejects arguments that can never name a file: empty
// strings, strings with null bytes and overlong paths.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidPath, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidPath, "path contains null bytes")
	}
	if len(path) > maxPathLength {
		return errors.New(errors.ErrInvalidPath, "path exceeds maximum length")
	}
	return nil
}

// Within reports whether child lies strictly beneath parent and returns
// the relative path using forward slashes. Both paths must be absolute and
// clean; no symlinks are resolved.
func Within(parent, child string) (string, bool) {
	rel, err := filepath.Rel(parent, child)
	if err != nil || filepath.IsAbs(rel) {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
