package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Environment is an isolated home with its own XDG directories.
type Environment struct {
	Home      string
	ConfigDir string
	StateDir  string
}

// NewEnvironment points HOME and the XDG variables at a fresh temporary
// tree and clears variables that would leak the developer's setup into
// the test: SSH_AUTH_SOCK and every DOTTLER_ override in use.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := TempDir(t)
	env := &Environment{
		Home:      CreateDir(t, root, "home"),
		ConfigDir: filepath.Join(root, "xdg", "config"),
		StateDir:  filepath.Join(root, "xdg", "state"),
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("SSH_AUTH_SOCK", "")
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"DOTTLER_CONFIG_DIR", "GIT_CONFIG_GLOBAL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return env
}

// File creates a file under the environment's home.
func (e *Environment) File(t *testing.T, rel, content string) string {
	t.Helper()
	return CreateFile(t, e.Home, rel, content)
}

// Path joins rel onto the environment's home.
func (e *Environment) Path(rel string) string {
	return filepath.Join(e.Home, filepath.FromSlash(rel))
}

// UserConfig writes the dottler config file for this environment.
func (e *Environment) UserConfig(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, filepath.Join(e.ConfigDir, "dottler"), name, content)
}
