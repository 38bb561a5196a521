package repo

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// AddRemote registers url under name. An existing remote of that name is
// an error unless replace is set.
func (r *Repository) AddRemote(name, url string, replace bool) error {
	if _, err := transport.NewEndpoint(url); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid remote url %q", url)
	}

	if _, err := r.repo.Remote(name); err == nil {
		if !replace {
			return errors.Newf(errors.ErrRepositoryState, "remote %q already exists", name).
				WithDetail(errors.DetailVCSCategory, CategoryRemoteExists).
				WithHint("use --force to replace it")
		}
		if err := r.repo.DeleteRemote(name); err != nil {
			return errors.Wrapf(err, errors.ErrRepositoryState, "cannot remove remote %q", name).
				WithDetail(errors.DetailVCSCategory, Category(err))
		}
	} else if err != git.ErrRemoteNotFound {
		return errors.Wrap(err, errors.ErrRepositoryState, "cannot read remotes").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	_, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	if err != nil {
		return errors.Wrapf(err, errors.ErrRepositoryState, "cannot add remote %q", name).
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	r.logger.Info().Str("remote", name).Str("url", url).Msg("remote configured")
	return nil
}

// RemoteURL returns the first url of the named remote, or "" when the
// remote is not configured.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err == git.ErrRemoteNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrRepositoryState, "cannot read remotes").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		return urls[0], nil
	}
	return "", nil
}

// Push sends the current branch to the named remote. It reports whether
// the remote was already up to date.
func (r *Repository) Push(remoteName string, auth transport.AuthMethod) (upToDate bool, err error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrRepositoryState, "nothing to push").
			WithDetail(errors.DetailVCSCategory, Category(err)).
			WithHint("add files with 'dottler add' first")
	}

	spec := config.RefSpec(fmt.Sprintf("%s:%s", head.Name(), head.Name()))
	r.logger.Debug().Str("remote", remoteName).Str("refspec", spec.String()).Msg("pushing")

	err = r.repo.Push(&git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	switch {
	case err == nil:
		r.logger.Info().Str("remote", remoteName).Str("branch", head.Name().Short()).Msg("pushed")
		return false, nil
	case stderrors.Is(err, git.NoErrAlreadyUpToDate):
		return true, nil
	case stderrors.Is(err, git.ErrRemoteNotFound):
		return false, errors.Newf(errors.ErrRepositoryState, "remote %q is not configured", remoteName).
			WithDetail(errors.DetailVCSCategory, CategoryRemoteNotConfigured).
			WithHint("run 'dottler link <url>' first")
	}
	return false, remoteError(err, "push failed").WithDetail("remote", remoteName)
}

// remoteError classifies failures talking to a remote as AUTH or NETWORK.
func remoteError(err error, msg string) *errors.DottlerError {
	cat := Category(err)
	code := errors.ErrNetwork
	var hint string
	switch cat {
	case CategoryAuth:
		code = errors.ErrAuth
		hint = "check auth.ssh_key, auth.use_agent and the remote url"
	case CategoryRemoteNotFound:
		hint = "check that the remote repository exists"
	case CategoryRemoteEmpty:
		code = errors.ErrRepositoryState
		hint = "the remote has no commits yet; use 'dottler init' and 'dottler link' instead"
	}
	e := errors.Wrap(err, code, msg).WithDetail(errors.DetailVCSCategory, cat)
	if hint != "" {
		e.WithHint(hint)
	}
	return e
}
