package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	gitignoreFile = ".gitignore"
	commentPrefix = "#"
)

// GitIgnore evaluates gitignore rules against a worktree. Per-directory
// .gitignore files are read lazily, only for directories on a queried
// path, so a large home is never scanned up front.
type GitIgnore struct {
	fs    billy.Filesystem
	base  []gitignore.Pattern
	dirs  map[string][]gitignore.Pattern
	cache map[string]bool
}

// NewGitIgnore returns an oracle over worktree. base holds repository-wide
// patterns (info/exclude, configured patterns) with the lowest priority.
func NewGitIgnore(worktree billy.Filesystem, base []gitignore.Pattern) *GitIgnore {
	return &GitIgnore{
		fs:    worktree,
		base:  base,
		dirs:  make(map[string][]gitignore.Pattern),
		cache: make(map[string]bool),
	}
}

// IsIgnored implements Oracle.
func (g *GitIgnore) IsIgnored(p string) (bool, error) {
	if v, ok := g.cache[p]; ok {
		return v, nil
	}

	parts := strings.Split(p, "/")
	patterns := append([]gitignore.Pattern{}, g.base...)
	for i := 0; i < len(parts); i++ {
		dirPatterns, err := g.dirPatterns(parts[:i])
		if err != nil {
			return false, err
		}
		patterns = append(patterns, dirPatterns...)
	}

	isDir := false
	if info, err := g.fs.Lstat(p); err == nil {
		isDir = info.IsDir()
	}

	ignored := gitignore.NewMatcher(patterns).Match(parts, isDir)
	g.cache[p] = ignored
	return ignored, nil
}

func (g *GitIgnore) dirPatterns(domain []string) ([]gitignore.Pattern, error) {
	key := path.Join(domain...)
	if ps, ok := g.dirs[key]; ok {
		return ps, nil
	}
	ps, err := ReadPatternFile(g.fs, path.Join(key, gitignoreFile), domain)
	if err != nil {
		return nil, err
	}
	g.dirs[key] = ps
	return ps, nil
}

// ReadPatternFile parses a gitignore-format file. A missing file yields no
// patterns; domain is the directory the patterns are relative to.
func ReadPatternFile(fs billy.Filesystem, name string, domain []string) ([]gitignore.Pattern, error) {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParsePatterns(lines, domain), nil
}

// ParsePatterns turns gitignore lines into patterns, skipping blanks and
// comments.
func ParsePatterns(lines []string, domain []string) []gitignore.Pattern {
	var ps []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	return ps
}
