// Package paths is the single place where dottler reads its environment.
//
// The home directory, the XDG config and state directories and the SSH
// agent socket are resolved once at startup by FromEnv and then passed to
// the components that need them. Nothing else in the module consults HOME.
//
// # Environment Variables
//
//   - HOME: required; the working tree of the dotfile repository
//   - DOTTLER_CONFIG_DIR: overrides $XDG_CONFIG_HOME/dottler
//   - XDG_CONFIG_HOME, XDG_STATE_HOME: standard XDG locations
//   - SSH_AUTH_SOCK: presence enables agent authentication for pushes
//
// # Layout
//
//   - Repository: $HOME/.dottler (the name is configurable)
//   - Config: $XDG_CONFIG_HOME/dottler/config.toml or config.yaml
//   - Log: $XDG_STATE_HOME/dottler/dottler.log
package paths
