package repo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	fallbackAuthorName = "dottler"
	fallbackDomain     = "localhost"
)

// Commit records the current index as a new commit on HEAD. The message is
// "<millisecond epoch> <description>"; the timestamp is kept strictly
// greater than the one in the previous head message so that commits made
// within the same millisecond still order correctly. A commit is made
// even when the tree did not change.
func (r *Repository) Commit(description string) (*object.Commit, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}

	ts := r.opts.Now().UnixMilli()
	if head != nil {
		if prev, ok := MessageTimestamp(head.Message); ok && ts <= prev {
			ts = prev + 1
		}
	}

	sig := r.signature(time.UnixMilli(ts))
	msg := fmt.Sprintf("%d %s", ts, description)

	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommit, "cannot access working tree").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommit, "commit failed").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCommit, "cannot read new commit").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	r.logger.Info().Str("hash", hash.String()).Str("subject", msg).Msg("committed")
	return c, nil
}

// HeadCommit returns the commit HEAD points at, or nil for an unborn branch.
func (r *Repository) HeadCommit() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err == plumbing.ErrReferenceNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepositoryState, "cannot resolve HEAD").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	c, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepositoryState, "cannot read head commit").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	return c, nil
}

// Branch returns the short name of the branch HEAD refers to.
func (r *Repository) Branch() (string, error) {
	ref, err := r.storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRepositoryState, "cannot read HEAD").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short(), nil
	}
	return ref.Name().Short(), nil
}

// MessageTimestamp extracts the leading millisecond timestamp of a commit
// message.
func MessageTimestamp(msg string) (int64, bool) {
	field, _, _ := strings.Cut(strings.TrimSpace(msg), " ")
	ts, err := strconv.ParseInt(field, 10, 64)
	if err != nil || ts < 0 {
		return 0, false
	}
	return ts, true
}

func (r *Repository) signature(when time.Time) *object.Signature {
	name, email := r.opts.AuthorName, r.opts.AuthorEmail
	if name == "" || email == "" {
		if cfg, err := config.LoadConfig(config.GlobalScope); err == nil {
			if name == "" {
				name = cfg.User.Name
			}
			if email == "" {
				email = cfg.User.Email
			}
		}
	}
	if name == "" {
		name = fallbackAuthorName
	}
	if email == "" {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = fallbackDomain
		}
		email = fallbackAuthorName + "@" + host
	}
	return &object.Signature{Name: name, Email: email, When: when}
}
