package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dottler/pkg/errors"
)

// Environment variable names
const (
	EnvHome        = "HOME"
	EnvConfigDir   = "DOTTLER_CONFIG_DIR"
	EnvSSHAuthSock = "SSH_AUTH_SOCK"
	EnvConfigHome  = "XDG_CONFIG_HOME"
	EnvStateHome   = "XDG_STATE_HOME"
)

// Default names. The repository directory name can be changed through
// configuration; the rest are fixed.
const (
	AppName         = "dottler"
	DefaultRepoDir  = ".dottler"
	LogFileName     = "dottler.log"
	DefaultSSHKey   = ".ssh/id_rsa"
	ConfigFileTOML  = "config.toml"
	ConfigFileYAML  = "config.yaml"
	ConfigFileYML   = "config.yml"
	defaultStateSub = ".local/state"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Paths holds every location dottler needs, resolved once.
type Paths struct {
	home        string
	configDir   string
	stateDir    string
	sshAuthSock string
}

// FromEnv resolves paths from the environment seen through lookup. HOME,
// XDG_CONFIG_HOME and XDG_STATE_HOME all come from lookup; platform
// defaults are rebased onto the looked-up home. A missing or empty HOME is
// fatal.
func FromEnv(lookup LookupFunc) (*Paths, error) {
	home, ok := lookup(EnvHome)
	if !ok || strings.TrimSpace(home) == "" {
		return nil, errors.New(errors.ErrEnvironment, "HOME is not set").
			WithHint("dottler manages files under your home directory; export HOME and retry")
	}
	if !filepath.IsAbs(home) {
		return nil, errors.Newf(errors.ErrEnvironment, "HOME must be an absolute path, got %q", home).
			WithDetail("home", home)
	}
	home = filepath.Clean(home)

	// xdg caches its values at init; HOME and XDG_* may have changed since.
	xdg.Reload()

	p := &Paths{home: home}

	if dir, ok := lookup(EnvConfigDir); ok && dir != "" {
		p.configDir = p.ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdgDir(lookup, EnvConfigHome, xdg.ConfigHome, home), AppName)
	}

	if dir := xdgDir(lookup, EnvStateHome, xdg.StateHome, home); dir != "" {
		p.stateDir = filepath.Join(dir, AppName)
	} else {
		p.stateDir = filepath.Join(home, defaultStateSub, AppName)
	}

	if sock, ok := lookup(EnvSSHAuthSock); ok {
		p.sshAuthSock = sock
	}
	return p, nil
}

// xdgDir prefers an absolute value from lookup. Otherwise it takes the
// directory xdg resolved from the process environment, moved under home
// when it sits in the process home directory.
func xdgDir(lookup LookupFunc, key, resolved, home string) string {
	if dir, ok := lookup(key); ok && filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	if rel, ok := Within(xdg.Home, resolved); ok {
		return filepath.Join(home, filepath.FromSlash(rel))
	}
	return resolved
}

// New builds Paths from explicit values. Empty configDir or stateDir fall
// back to locations under home.
func New(home, configDir, stateDir string) *Paths {
	home = filepath.Clean(home)
	if configDir == "" {
		configDir = filepath.Join(home, ".config", AppName)
	}
	if stateDir == "" {
		stateDir = filepath.Join(home, defaultStateSub, AppName)
	}
	return &Paths{home: home, configDir: configDir, stateDir: stateDir}
}

// WithSSHAuthSock returns a copy of p reporting sock as the agent socket.
func (p *Paths) WithSSHAuthSock(sock string) *Paths {
	cp := *p
	cp.sshAuthSock = sock
	return &cp
}

// Home returns the home directory, the repository's working tree.
func (p *Paths) Home() string { return p.home }

// ConfigDir returns dottler's configuration directory.
func (p *Paths) ConfigDir() string { return p.configDir }

// StateDir returns dottler's state directory.
func (p *Paths) StateDir() string { return p.stateDir }

// LogFilePath returns the log file location.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// SSHAuthSock returns the agent socket seen at startup, or "".
func (p *Paths) SSHAuthSock() string { return p.sshAuthSock }

// RepoDir returns the repository location for a configured directory
// name. Relative names live under home.
func (p *Paths) RepoDir(name string) string {
	if name == "" {
		name = DefaultRepoDir
	}
	return p.HomePath(name)
}

// HomePath resolves a home-relative path such as ".ssh/id_rsa".
// Absolute paths and "~" forms are accepted as well.
func (p *Paths) HomePath(rel string) string {
	rel = p.ExpandHome(rel)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.home, rel)
}

// ExpandHome expands a leading "~" or "~/" to the home directory.
func (p *Paths) ExpandHome(path string) string {
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

// ConfigFile returns the first existing user configuration file, or "".
func (p *Paths) ConfigFile() string {
	for _, name := range []string{ConfigFileTOML, ConfigFileYAML, ConfigFileYML} {
		candidate := filepath.Join(p.configDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
