package ignore

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Protected rejects paths matching any of a set of globs. '*' does not
// cross '/', '**' does.
type Protected struct {
	patterns []string
	globs    []glob.Glob
}

// NewProtected compiles patterns, failing on the first invalid one.
func NewProtected(patterns []string) (*Protected, error) {
	p := &Protected{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid protected pattern %q: %w", pattern, err)
		}
		p.patterns = append(p.patterns, pattern)
		p.globs = append(p.globs, g)
	}
	return p, nil
}

// IsIgnored implements Oracle.
func (p *Protected) IsIgnored(path string) (bool, error) {
	for _, g := range p.globs {
		if g.Match(path) {
			return true, nil
		}
	}
	return false, nil
}

// Patterns returns the source patterns.
func (p *Protected) Patterns() []string {
	return append([]string(nil), p.patterns...)
}
