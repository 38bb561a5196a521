// Package repo is dottler's version-control collaborator.
//
// The repository's object database and index live in a bare-layout
// directory (by default ~/.dottler) while the home directory is the
// working tree. Everything is implemented on go-git, so no git binary is
// required; core.worktree is still recorded so that
// "git --git-dir ~/.dottler" works as expected.
package repo

import (
	"os"
	"time"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"
)

const (
	DefaultBranch = "master"
	DefaultRemote = "origin"
)

// Options tune a Repository. Zero values fall back to defaults.
type Options struct {
	Branch      string
	RemoteName  string
	AuthorName  string
	AuthorEmail string
	// Now is the commit clock.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Branch == "" {
		o.Branch = DefaultBranch
	}
	if o.RemoteName == "" {
		o.RemoteName = DefaultRemote
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Repository wraps a go-git repository whose worktree is the home directory.
type Repository struct {
	repo     *git.Repository
	storer   storage.Storer
	gitDir   string
	worktree billy.Filesystem
	opts     Options
	logger   zerolog.Logger
}

// Init creates a new repository at gitDir with workTree as its working
// tree. The directory must not already hold a repository.
func Init(gitDir, workTree string, opts Options) (*Repository, error) {
	opts = opts.withDefaults()
	logger := logging.GetLogger("repo")

	if err := ensureFreshDir(gitDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepositoryCreate, "cannot create %s", gitDir).
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	st := fileStorage(gitDir)
	r, err := git.InitWithOptions(st, nil, git.InitOptions{
		DefaultBranch: plumbing.NewBranchReferenceName(opts.Branch),
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepositoryCreate, "cannot initialize repository at %s", gitDir).
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	if err := configureWorktree(r, workTree); err != nil {
		return nil, errors.Wrap(err, errors.ErrRepositoryCreate, "cannot configure working tree").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	logger.Info().Str("gitDir", gitDir).Str("workTree", workTree).Str("branch", opts.Branch).Msg("repository initialized")
	return reopen(st, gitDir, workTree, opts)
}

// Open loads an existing repository.
func Open(gitDir, workTree string, opts Options) (*Repository, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil, notARepository(gitDir, err)
	}
	return reopen(fileStorage(gitDir), gitDir, workTree, opts)
}

// Clone creates the repository by cloning url. Home files are left as
// they are; the index is populated from the remote head so that tracked
// files are known to sync and status. On failure a freshly created gitDir
// is removed again.
func Clone(gitDir, workTree, url string, auth transport.AuthMethod, opts Options) (_ *Repository, err error) {
	opts = opts.withDefaults()
	logger := logging.GetLogger("repo")

	if err := ensureFreshDir(gitDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepositoryCreate, "cannot create %s", gitDir).
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(gitDir); rmErr != nil {
				logger.Warn().Err(rmErr).Str("gitDir", gitDir).Msg("failed to clean up partial clone")
			}
		}
	}()

	st := fileStorage(gitDir)
	logger.Info().Str("url", url).Str("gitDir", gitDir).Msg("cloning")
	r, err := git.Clone(st, nil, &git.CloneOptions{
		URL:        url,
		Auth:       auth,
		RemoteName: opts.RemoteName,
	})
	if err != nil {
		return nil, remoteError(err, "clone failed").WithDetail("url", url)
	}
	if err := configureWorktree(r, workTree); err != nil {
		return nil, errors.Wrap(err, errors.ErrRepositoryState, "cannot configure working tree").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	repo, err := reopen(st, gitDir, workTree, opts)
	if err != nil {
		return nil, err
	}
	if err := repo.indexFromHead(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewMemory returns a repository held entirely in memory over worktree.
func NewMemory(worktree billy.Filesystem, opts Options) (*Repository, error) {
	opts = opts.withDefaults()
	st := memory.NewStorage()
	r, err := git.InitWithOptions(st, worktree, git.InitOptions{
		DefaultBranch: plumbing.NewBranchReferenceName(opts.Branch),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepositoryCreate, "cannot initialize in-memory repository")
	}
	return &Repository{
		repo:     r,
		storer:   st,
		worktree: worktree,
		opts:     opts,
		logger:   logging.GetLogger("repo"),
	}, nil
}

// GitDir returns the repository directory, empty for in-memory repositories.
func (r *Repository) GitDir() string { return r.gitDir }

// Worktree returns the working tree filesystem.
func (r *Repository) Worktree() billy.Filesystem { return r.worktree }

// GitDirFS returns a filesystem rooted at the repository directory, or nil
// for in-memory repositories.
func (r *Repository) GitDirFS() billy.Filesystem {
	if r.gitDir == "" {
		return nil
	}
	return osfs.New(r.gitDir)
}

func reopen(st storage.Storer, gitDir, workTree string, opts Options) (*Repository, error) {
	wt := osfs.New(workTree)
	r, err := git.Open(st, wt)
	if err != nil {
		return nil, notARepository(gitDir, err)
	}
	return &Repository{
		repo:     r,
		storer:   st,
		gitDir:   gitDir,
		worktree: wt,
		opts:     opts,
		logger:   logging.GetLogger("repo"),
	}, nil
}

func fileStorage(gitDir string) *filesystem.Storage {
	return filesystem.NewStorage(osfs.New(gitDir), cache.NewObjectLRUDefault())
}

// configureWorktree records home as the working tree and keeps untracked
// files out of git status, which would otherwise list the whole home.
func configureWorktree(r *git.Repository, workTree string) error {
	cfg, err := r.Config()
	if err != nil {
		return err
	}
	cfg.Core.IsBare = false
	cfg.Core.Worktree = workTree
	cfg.Raw.Section("status").SetOption("showUntrackedFiles", "no")
	return r.SetConfig(cfg)
}

func ensureFreshDir(gitDir string) error {
	entries, err := os.ReadDir(gitDir)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return errors.Wrapf(err, errors.ErrRepositoryCreate, "cannot use %s", gitDir).
			WithDetail(errors.DetailVCSCategory, Category(err))
	case len(entries) > 0:
		return errors.Newf(errors.ErrRepositoryCreate, "%s already exists and is not empty", gitDir).
			WithDetail(errors.DetailVCSCategory, CategoryRepositoryExists).
			WithHint("remove it or choose another repository.dir")
	}
	return nil
}

func notARepository(gitDir string, cause error) error {
	e := errors.Newf(errors.ErrRepositoryState, "no dottler repository at %s", gitDir).
		WithHint("run 'dottler init' or 'dottler clone <url>' first")
	if cause != nil {
		e.Wrapped = cause
		e.WithDetail(errors.DetailVCSCategory, Category(cause))
	}
	return e
}
