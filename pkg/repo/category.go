package repo

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Categories of version-control failures, reported in the vcs_category
// error detail.
const (
	CategoryRepositoryNotFound  = "repository-not-found"
	CategoryRepositoryExists    = "repository-exists"
	CategoryAuth                = "auth"
	CategoryRemoteNotFound      = "remote-not-found"
	CategoryRemoteNotConfigured = "remote-not-configured"
	CategoryRemoteExists        = "remote-exists"
	CategoryRemoteEmpty         = "remote-empty"
	CategoryIndexCorrupt        = "index-corrupt"
	CategoryObjectMissing       = "object-missing"
	CategoryPermissionDenied    = "permission-denied"
	CategoryNotFound            = "not-found"
	CategoryNetwork             = "network"
	CategoryUnknown             = "unknown"
)

// Category maps an error from go-git or the filesystem to a stable
// category name.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, git.ErrRepositoryNotExists):
		return CategoryRepositoryNotFound
	case stderrors.Is(err, git.ErrRepositoryAlreadyExists):
		return CategoryRepositoryExists
	case stderrors.Is(err, transport.ErrAuthenticationRequired),
		stderrors.Is(err, transport.ErrAuthorizationFailed),
		stderrors.Is(err, transport.ErrInvalidAuthMethod):
		return CategoryAuth
	case stderrors.Is(err, transport.ErrRepositoryNotFound):
		return CategoryRemoteNotFound
	case stderrors.Is(err, git.ErrRemoteNotFound):
		return CategoryRemoteNotConfigured
	case stderrors.Is(err, git.ErrRemoteExists):
		return CategoryRemoteExists
	case stderrors.Is(err, transport.ErrEmptyRemoteRepository):
		return CategoryRemoteEmpty
	case stderrors.Is(err, index.ErrMalformedSignature),
		stderrors.Is(err, index.ErrInvalidChecksum),
		stderrors.Is(err, index.ErrUnsupportedVersion):
		return CategoryIndexCorrupt
	case stderrors.Is(err, plumbing.ErrObjectNotFound):
		return CategoryObjectMissing
	case os.IsPermission(err):
		return CategoryPermissionDenied
	case os.IsNotExist(err):
		return CategoryNotFound
	}

	// ssh and tcp failures arrive as plain errors from x/crypto and net.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unable to authenticate"),
		strings.Contains(msg, "knownhosts"),
		strings.Contains(msg, "host key"):
		return CategoryAuth
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "network is unreachable"):
		return CategoryNetwork
	}
	return CategoryUnknown
}
