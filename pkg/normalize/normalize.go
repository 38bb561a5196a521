// Package normalize turns command-line path arguments into home-relative
// TrackedPath values.
//
// Arguments may be relative (to the working directory) or absolute, files
// or directories. Directories are expanded to every regular file beneath
// them, skipping version-control metadata directories. Every result must
// lie inside the home directory.
package normalize

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/paths"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/rs/zerolog"
)

// Normalizer resolves raw arguments against a fixed home and working
// directory. It never writes to the filesystem.
type Normalizer struct {
	home     string
	cwd      string
	metadata map[string]struct{}
	logger   zerolog.Logger
}

// New returns a Normalizer. home and cwd are canonicalized so that
// containment checks compare resolved paths on both sides.
func New(home, cwd string, metadataDirs []string) (*Normalizer, error) {
	canonHome, err := canonical(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEnvironment, "cannot resolve home directory %s", home)
	}
	if !filepath.IsAbs(cwd) {
		cwd = filepath.Join(canonHome, cwd)
	}
	canonCwd, err := canonical(cwd)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEnvironment, "cannot resolve working directory %s", cwd)
	}

	meta := make(map[string]struct{}, len(metadataDirs))
	for _, d := range metadataDirs {
		if d != "" {
			meta[d] = struct{}{}
		}
	}

	return &Normalizer{
		home:     canonHome,
		cwd:      canonCwd,
		metadata: meta,
		logger:   logging.GetLogger("normalize"),
	}, nil
}

// Home returns the canonical home directory.
func (n *Normalizer) Home() string { return n.home }

// Normalize expands raw into a deduplicated PathSet, preserving the order
// in which paths are first seen. The first failing argument aborts the
// whole call.
func (n *Normalizer) Normalize(raw []string) (*types.PathSet, error) {
	done := logging.LogOperationStart(n.logger, "normalize")
	defer done()

	set := types.NewPathSet()
	for _, arg := range raw {
		if err := n.normalizeOne(arg, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (n *Normalizer) normalizeOne(arg string, set *types.PathSet) error {
	if err := paths.ValidatePath(arg); err != nil {
		return err
	}

	abs := n.absolute(arg)
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", arg).
			WithDetail("path", abs)
	}

	info, err := os.Lstat(canon)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPath, "cannot stat %s", arg).
			WithDetail("path", canon)
	}

	if info.IsDir() {
		if canon != n.home {
			if _, ok := paths.Within(n.home, canon); !ok {
				return n.outsideHome(arg, canon)
			}
		}
		return n.expandDir(arg, canon, set)
	}

	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrInvalidPath, "%s is not a regular file", arg).
			WithDetail("path", canon)
	}
	return n.include(arg, canon, set)
}

func (n *Normalizer) expandDir(arg, dir string, set *types.PathSet) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrInvalidPath, "cannot read %s", p).
				WithDetail("argument", arg)
		}
		if d.IsDir() {
			if p != dir && n.isMetadata(d.Name()) {
				n.logger.Debug().Str("dir", p).Msg("skipping metadata directory")
				return filepath.SkipDir
			}
			return nil
		}
		// Symlinks met while walking are not followed; sockets and other
		// special files are never tracked.
		if !d.Type().IsRegular() {
			n.logger.Trace().Str("path", p).Msg("skipping non-regular file")
			return nil
		}
		return n.include(arg, p, set)
	})
}

func (n *Normalizer) include(arg, abs string, set *types.PathSet) error {
	rel, ok := paths.Within(n.home, abs)
	if !ok {
		return n.outsideHome(arg, abs)
	}
	for _, part := range strings.Split(rel, "/") {
		if n.isMetadata(part) {
			n.logger.Info().Str("path", rel).Msg("skipping path inside a metadata directory")
			return nil
		}
	}
	tp, err := types.ParseTrackedPath(rel)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidPath, "cannot form a tracked path").
			WithDetail("path", abs)
	}
	if set.Add(tp) {
		n.logger.Trace().Str("path", rel).Msg("normalized")
	}
	return nil
}

// Lexical maps raw to a TrackedPath without requiring it to exist. An
// existing path is canonicalized the same way Normalize does it, so a
// symlink names its target. For a missing path only the deepest existing
// ancestor is resolved and the final component is taken as written.
func (n *Normalizer) Lexical(raw string) (types.TrackedPath, error) {
	if err := paths.ValidatePath(raw); err != nil {
		return "", err
	}
	abs := filepath.Clean(n.absolute(raw))

	full, err := n.canonicalLexical(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", raw).
			WithDetail("path", abs)
	}

	rel, ok := paths.Within(n.home, full)
	if !ok {
		return "", n.outsideHome(raw, full)
	}
	tp, err := types.ParseTrackedPath(rel)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidPath, "cannot form a tracked path").
			WithDetail("path", full)
	}
	return tp, nil
}

func (n *Normalizer) canonicalLexical(abs string) (string, error) {
	if _, err := os.Lstat(abs); err == nil {
		if canon, err := filepath.EvalSymlinks(abs); err == nil {
			return canon, nil
		}
		// dangling link: keep its own name
		n.logger.Debug().Str("path", abs).Msg("symlink target missing, using link path")
	}
	dir, base := filepath.Split(abs)
	resolvedDir, err := resolveExistingPrefix(filepath.Clean(dir))
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

func (n *Normalizer) absolute(arg string) string {
	switch {
	case arg == "~":
		return n.home
	case strings.HasPrefix(arg, "~/"):
		return filepath.Join(n.home, arg[2:])
	case filepath.IsAbs(arg):
		return arg
	default:
		return filepath.Join(n.cwd, arg)
	}
}

func (n *Normalizer) isMetadata(name string) bool {
	_, ok := n.metadata[name]
	return ok
}

func (n *Normalizer) outsideHome(arg, abs string) error {
	return errors.Newf(errors.ErrOutsideHome, "%s is outside the home directory", arg).
		WithDetail("path", abs).
		WithDetail("home", n.home).
		WithHint("dottler only tracks files beneath your home directory")
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveExistingPrefix resolves symlinks in the longest existing
// ancestor of p and re-appends the missing tail.
func resolveExistingPrefix(p string) (string, error) {
	var tail []string
	cur := p
	for {
		if _, err := os.Lstat(cur); err == nil {
			resolved, err := filepath.EvalSymlinks(cur)
			if err != nil {
				return "", err
			}
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p, nil
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
}
