// Package format provides formatting helpers shared by the renderers.
package format

import (
	"strings"

	"github.com/arthur-debert/dottler/pkg/types"
)

// StatusSymbol returns a one-character marker for an item status, used
// where color is not available.
func StatusSymbol(status types.ItemStatus) string {
	switch status {
	case types.StatusAdded:
		return "+"
	case types.StatusUpdated, types.StatusModified:
		return "~"
	case types.StatusRemoved, types.StatusDeleted:
		return "-"
	case types.StatusIgnored, types.StatusProtected:
		return "!"
	case types.StatusMissing:
		return "?"
	default:
		return " "
	}
}

// ShortHash abbreviates a commit hash to seven characters.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// Subject returns the first line of a commit message.
func Subject(msg string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(msg), "\n")
	return first
}
