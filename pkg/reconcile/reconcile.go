// Package reconcile stages tracked paths into the repository index and
// records each change set as exactly one commit.
//
// Every operation reads the index once, applies all of its changes in
// memory and writes the index back once, so a failure on any path leaves
// both the index and the history untouched.
package reconcile

import (
	"os"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/repo"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// Commit descriptions, prefixed by the commit timestamp in the message.
const (
	AddDescription    = "Add new files to Dottler"
	RemoveDescription = "Remove files from Dottler"
	SyncDescription   = "Update Dottler files"
)

// Store is the slice of the repository the reconciler needs.
type Store interface {
	Index() (*index.Index, error)
	SetIndex(*index.Index) error
	WriteBlob(path string) (plumbing.Hash, os.FileInfo, error)
	Exists(path string) (bool, error)
	Commit(description string) (*object.Commit, error)
}

// Result describes what an operation did. Commit is nil when no commit
// was made.
type Result struct {
	Items  []types.ReportItem
	Commit *object.Commit
}

func (r *Result) add(path string, status types.ItemStatus) {
	r.Items = append(r.Items, types.ReportItem{Path: path, Status: status})
}

// SyncOptions tune SyncExisting.
type SyncOptions struct {
	// Exclude, when set, skips entries it reports true for. Skipped
	// entries stay tracked.
	Exclude func(types.TrackedPath) (bool, error)
}

// Reconciler applies add, remove and sync operations to a Store.
type Reconciler struct {
	store  Store
	logger zerolog.Logger
}

// New returns a Reconciler over store.
func New(store Store) *Reconciler {
	return &Reconciler{store: store, logger: logging.GetLogger("reconcile")}
}

// AddPaths stages the current content of every path and commits, even
// when no content changed. An empty set is a no-op.
func (r *Reconciler) AddPaths(paths *types.PathSet) (*Result, error) {
	res := &Result{}
	if paths.Len() == 0 {
		r.logger.Debug().Msg("nothing to add")
		return res, nil
	}

	idx, err := r.store.Index()
	if err != nil {
		return nil, err
	}

	for _, p := range paths.Paths() {
		name := p.String()
		_, lookupErr := idx.Entry(name)
		isNew := lookupErr == index.ErrEntryNotFound

		hash, fi, err := r.store.WriteBlob(name)
		if err != nil {
			return nil, stageError(err, name)
		}
		changed, err := repo.Stage(idx, name, hash, fi)
		if err != nil {
			return nil, stageError(err, name)
		}

		switch {
		case isNew:
			res.add(name, types.StatusAdded)
		case changed:
			res.add(name, types.StatusUpdated)
		default:
			res.add(name, types.StatusUnchanged)
		}
		r.logger.Debug().Str("path", name).Str("hash", hash.String()).Msg("staged")
	}

	if err := r.store.SetIndex(idx); err != nil {
		return nil, err
	}
	res.Commit, err = r.store.Commit(AddDescription)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RemovePaths drops the entries for targets from the index and commits.
// A target naming a directory removes every entry beneath it. Files on
// disk are not touched. If any target matches nothing, NOT_TRACKED is
// returned and nothing is written.
func (r *Reconciler) RemovePaths(targets []types.TrackedPath) (*Result, error) {
	res := &Result{}
	if len(targets) == 0 {
		return res, nil
	}

	idx, err := r.store.Index()
	if err != nil {
		return nil, err
	}

	var (
		doomed    []string
		seen      = make(map[string]bool)
		untracked []string
	)
	for _, t := range targets {
		matched := matchEntries(idx, t.String())
		if len(matched) == 0 {
			untracked = append(untracked, t.String())
			continue
		}
		for _, name := range matched {
			if !seen[name] {
				seen[name] = true
				doomed = append(doomed, name)
			}
		}
	}
	if len(untracked) > 0 {
		return nil, errors.Newf(errors.ErrNotTracked, "not tracked: %s", strings.Join(untracked, ", ")).
			WithDetail("paths", untracked).
			WithHint("run 'dottler status' to list tracked files")
	}

	for _, name := range doomed {
		if _, err := idx.Remove(name); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIndexWrite, "cannot unstage %s", name).
				WithDetail("path", name).
				WithDetail(errors.DetailVCSCategory, repo.Category(err))
		}
		res.add(name, types.StatusRemoved)
	}

	if err := r.store.SetIndex(idx); err != nil {
		return nil, err
	}
	res.Commit, err = r.store.Commit(RemoveDescription)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SyncExisting restages every tracked path that still exists. Entries
// whose files are gone stay in the index and are reported as missing. A
// commit is made only when some content or mode changed.
func (r *Reconciler) SyncExisting(opts SyncOptions) (*Result, error) {
	res := &Result{}

	idx, err := r.store.Index()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		names = append(names, e.Name)
	}

	dirty := false
	for _, name := range names {
		if opts.Exclude != nil {
			excluded, err := r.excluded(opts.Exclude, name)
			if err != nil {
				return nil, err
			}
			if excluded {
				res.add(name, types.StatusIgnored)
				continue
			}
		}

		exists, err := r.store.Exists(name)
		if err != nil {
			return nil, stageError(err, name)
		}
		if !exists {
			r.logger.Info().Str("path", name).Msg("tracked file is missing, keeping entry")
			res.add(name, types.StatusMissing)
			continue
		}

		hash, fi, err := r.store.WriteBlob(name)
		if err != nil {
			return nil, stageError(err, name)
		}
		changed, err := repo.Stage(idx, name, hash, fi)
		if err != nil {
			return nil, stageError(err, name)
		}
		if changed {
			dirty = true
			res.add(name, types.StatusUpdated)
		} else {
			res.add(name, types.StatusUnchanged)
		}
	}

	if !dirty {
		r.logger.Debug().Int("entries", len(names)).Msg("nothing changed, no commit")
		return res, nil
	}
	if err := r.store.SetIndex(idx); err != nil {
		return nil, err
	}
	res.Commit, err = r.store.Commit(SyncDescription)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Reconciler) excluded(exclude func(types.TrackedPath) (bool, error), name string) (bool, error) {
	p, err := types.ParseTrackedPath(name)
	if err != nil {
		r.logger.Warn().Str("path", name).Err(err).Msg("unusual index entry, not filtering")
		return false, nil
	}
	return exclude(p)
}

// matchEntries returns the entries equal to target or beneath it.
func matchEntries(idx *index.Index, target string) []string {
	prefix := target + "/"
	var out []string
	for _, e := range idx.Entries {
		if e.Name == target || strings.HasPrefix(e.Name, prefix) {
			out = append(out, e.Name)
		}
	}
	return out
}

func stageError(err error, path string) error {
	e := errors.Wrapf(err, errors.ErrIndexWrite, "cannot stage %s", path).WithDetail("path", path)
	if cat, ok := errors.GetErrorDetails(err)[errors.DetailVCSCategory]; ok {
		e.WithDetail(errors.DetailVCSCategory, cat)
	}
	return e
}
