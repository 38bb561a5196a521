// Package internal holds the wiring shared by every command: opening the
// repository, building the path normalizer and ignore filter, resolving
// credentials and pushing.
package internal

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dottler/pkg/config"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/ignore"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/normalize"
	"github.com/arthur-debert/dottler/pkg/paths"
	"github.com/arthur-debert/dottler/pkg/repo"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/gobwas/glob"
)

// excludeFile is git's per-repository ignore file, relative to the git dir.
const excludeFile = "info/exclude"

// Env is what every command runs against.
type Env struct {
	Paths  *paths.Paths
	Config *config.Config
	// Cwd resolves relative path arguments. Empty means the process
	// working directory.
	Cwd string
	// Now overrides the commit clock.
	Now func() time.Time
}

// Validate fails early on an incomplete Env.
func (e Env) Validate() error {
	if e.Paths == nil {
		return errors.New(errors.ErrInternal, "paths not resolved")
	}
	if e.Config == nil {
		return errors.New(errors.ErrInternal, "configuration not loaded")
	}
	return nil
}

// GitDir returns the repository directory.
func (e Env) GitDir() string {
	return e.Paths.RepoDir(e.Config.Repository.Dir)
}

// RepoOptions maps configuration onto repository options.
func (e Env) RepoOptions() repo.Options {
	return repo.Options{
		Branch:      e.Config.Repository.Branch,
		RemoteName:  e.Config.Remote.Name,
		AuthorName:  e.Config.Commit.AuthorName,
		AuthorEmail: e.Config.Commit.AuthorEmail,
		Now:         e.Now,
	}
}

// OpenRepo opens the existing repository.
func OpenRepo(e Env) (*repo.Repository, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return repo.Open(e.GitDir(), e.Paths.Home(), e.RepoOptions())
}

// NewNormalizer builds a path normalizer whose metadata directories
// include the repository directory itself.
func NewNormalizer(e Env) (*normalize.Normalizer, error) {
	cwd := e.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrEnvironment, "cannot determine working directory")
		}
		cwd = wd
	}

	metadata := append([]string(nil), e.Config.Ignore.MetadataDirs...)
	metadata = append(metadata, filepath.Base(e.GitDir()))
	return normalize.New(e.Paths.Home(), cwd, metadata)
}

// NewFilter builds the ignore filter: protected globs first, then
// gitignore rules from info/exclude, ignore.patterns and the .gitignore
// files found in home.
func NewFilter(e Env, r *repo.Repository) (*ignore.Filter, error) {
	logger := logging.GetLogger("commands.internal")

	protectedPatterns := append([]string(nil), e.Config.Ignore.Protected...)
	if rel, ok := paths.Within(e.Paths.Home(), e.GitDir()); ok {
		quoted := glob.QuoteMeta(rel)
		protectedPatterns = append(protectedPatterns, quoted, quoted+"/**")
	}
	protected, err := ignore.NewProtected(protectedPatterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid ignore.protected pattern")
	}

	var base []gitignore.Pattern
	if fs := r.GitDirFS(); fs != nil {
		ps, err := ignore.ReadPatternFile(fs, excludeFile, nil)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", excludeFile)
		}
		base = append(base, ps...)
	}
	base = append(base, ignore.ParsePatterns(e.Config.Ignore.Patterns, nil)...)
	logger.Debug().Int("protected", len(protectedPatterns)).Int("patterns", len(base)).Msg("ignore rules loaded")

	return ignore.NewFilter(
		ignore.Rule{Reason: ignore.ReasonProtected, Oracle: protected},
		ignore.Rule{Reason: ignore.ReasonIgnored, Oracle: ignore.NewGitIgnore(r.Worktree(), base)},
	), nil
}

// DroppedItems turns filter drops into report items.
func DroppedItems(report *types.Report, dropped []ignore.Dropped) {
	for _, d := range dropped {
		status := types.StatusIgnored
		if d.Reason == ignore.ReasonProtected {
			status = types.StatusProtected
		}
		note := ""
		if d.Prefix != d.Path.String() {
			note = "under " + d.Prefix
		}
		report.AddItem(d.Path.String(), status, note)
	}
}

// Auth resolves credentials for url from the auth configuration.
func Auth(e Env, url string) (transport.AuthMethod, error) {
	key := ""
	if e.Config.Auth.SSHKey != "" {
		key = e.Paths.HomePath(e.Config.Auth.SSHKey)
	}
	return repo.ResolveAuth(url, repo.AuthOptions{
		SSHKey:         key,
		Passphrase:     e.Config.Auth.Passphrase,
		UseAgent:       e.Config.Auth.UseAgent,
		AgentSocket:    e.Paths.SSHAuthSock(),
		StrictHostKeys: e.Config.Auth.StrictHostKeys,
	})
}

// Push sends the current branch to the configured remote and records the
// outcome on report.
func Push(e Env, r *repo.Repository, report *types.Report) error {
	name := e.Config.Remote.Name
	url, err := r.RemoteURL(name)
	if err != nil {
		return err
	}
	if url == "" {
		return errors.Newf(errors.ErrRepositoryState, "remote %q is not configured", name).
			WithDetail(errors.DetailVCSCategory, repo.CategoryRemoteNotConfigured).
			WithHint("run 'dottler link <url>' first")
	}

	auth, err := Auth(e, url)
	if err != nil {
		return err
	}
	upToDate, err := r.Push(name, auth)
	if err != nil {
		return err
	}
	report.Pushed = true
	if upToDate {
		report.AddNotice("remote " + name + " is already up to date")
	} else {
		report.AddNotice("pushed to " + name)
	}
	return nil
}

// Summary converts a commit for reporting. A nil commit yields nil.
func Summary(c *object.Commit) *types.CommitSummary {
	if c == nil {
		return nil
	}
	return &types.CommitSummary{
		Hash:    c.Hash.String(),
		Message: c.Message,
		When:    c.Author.When,
		Parents: len(c.ParentHashes),
	}
}

// ResultItems copies reconcile items onto the report.
func ResultItems(report *types.Report, items []types.ReportItem) {
	report.Items = append(report.Items, items...)
}

// PushAfterCommit annotates a push failure that followed a successful
// commit.
func PushAfterCommit(err error) error {
	var dErr *errors.DottlerError
	if stderrors.As(err, &dErr) && dErr.Hint == "" {
		dErr.WithHint("the commit was recorded locally; run 'dottler push' to retry")
	}
	return err
}
