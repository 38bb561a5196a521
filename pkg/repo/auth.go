package repo

import (
	"os"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"
)

const defaultSSHUser = "git"

// AuthOptions selects credentials for remote operations.
type AuthOptions struct {
	// SSHKey is an absolute path to a private key.
	SSHKey     string
	Passphrase string
	// UseAgent prefers a running ssh-agent. AgentSocket is the value of
	// SSH_AUTH_SOCK; an empty socket disables the agent.
	UseAgent       bool
	AgentSocket    string
	StrictHostKeys bool
}

// ResolveAuth picks an auth method for url. Non-ssh urls (https, file,
// local paths) get nil, leaving credentials to the transport.
func ResolveAuth(url string, o AuthOptions) (transport.AuthMethod, error) {
	ep, err := transport.NewEndpoint(url)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid remote url %q", url)
	}
	if ep.Protocol != "ssh" {
		return nil, nil
	}

	user := ep.User
	if user == "" {
		user = defaultSSHUser
	}
	logger := logging.GetLogger("repo")

	if o.UseAgent && o.AgentSocket != "" {
		auth, err := gitssh.NewSSHAgentAuth(user)
		if err == nil {
			if !o.StrictHostKeys {
				auth.HostKeyCallback = ssh.InsecureIgnoreHostKey()
			}
			logger.Debug().Str("user", user).Msg("using ssh agent")
			return auth, nil
		}
		logger.Warn().Err(err).Msg("ssh agent unavailable, falling back to key file")
	}

	if o.SSHKey == "" {
		return nil, errors.New(errors.ErrAuth, "no ssh credentials available").
			WithDetail(errors.DetailVCSCategory, CategoryAuth).
			WithHint("start an ssh-agent or set auth.ssh_key")
	}
	if _, err := os.Stat(o.SSHKey); err != nil {
		return nil, errors.Wrapf(err, errors.ErrAuth, "ssh key %s is not readable", o.SSHKey).
			WithDetail(errors.DetailVCSCategory, CategoryAuth).
			WithHint("set auth.ssh_key to an existing private key")
	}

	auth, err := gitssh.NewPublicKeysFromFile(user, o.SSHKey, o.Passphrase)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAuth, "cannot load ssh key %s", o.SSHKey).
			WithDetail(errors.DetailVCSCategory, CategoryAuth).
			WithHint("check auth.passphrase")
	}
	if !o.StrictHostKeys {
		auth.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}
	logger.Debug().Str("user", user).Str("key", o.SSHKey).Msg("using ssh key file")
	return auth, nil
}
