// Package commands provides high-level command implementations for dottler.
//
// This package is the orchestration layer between the CLI and the
// repository, normalizer, ignore filter and reconciler packages.
//
// Each command is implemented in its own subdirectory:
//   - initialize/ - Init command
//   - link/       - Link command
//   - clone/      - Clone command
//   - add/        - Add command
//   - sync/       - Sync command
//   - remove/     - Remove command
//   - push/       - Push command
//   - status/     - Status command
//   - genconfig/  - GenConfig command
//   - internal/   - Shared wiring
//
// This file re-exports all command functions so that callers need a single
// import.
package commands

import (
	"github.com/arthur-debert/dottler/pkg/commands/add"
	"github.com/arthur-debert/dottler/pkg/commands/clone"
	"github.com/arthur-debert/dottler/pkg/commands/genconfig"
	"github.com/arthur-debert/dottler/pkg/commands/initialize"
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/commands/link"
	"github.com/arthur-debert/dottler/pkg/commands/push"
	"github.com/arthur-debert/dottler/pkg/commands/remove"
	"github.com/arthur-debert/dottler/pkg/commands/status"
	"github.com/arthur-debert/dottler/pkg/commands/sync"
	"github.com/arthur-debert/dottler/pkg/types"
)

// Env carries resolved paths, configuration and overrides into commands.
type Env = internal.Env

// Init creates an empty repository with home as its working tree.
type InitOptions = initialize.InitOptions

func Init(opts InitOptions) (*types.Report, error) {
	return initialize.Init(opts)
}

// Link records the remote url.
type LinkOptions = link.LinkOptions

func Link(opts LinkOptions) (*types.Report, error) {
	return link.Link(opts)
}

// Clone creates the repository from a remote.
type CloneOptions = clone.CloneOptions

func Clone(opts CloneOptions) (*types.Report, error) {
	return clone.Clone(opts)
}

// Add starts tracking files and records them in one commit.
type AddOptions = add.AddOptions

func Add(opts AddOptions) (*types.Report, error) {
	return add.Add(opts)
}

// Sync records the current content of all tracked files.
type SyncOptions = sync.SyncOptions

func Sync(opts SyncOptions) (*types.Report, error) {
	return sync.Sync(opts)
}

// Remove stops tracking files.
type RemoveOptions = remove.RemoveOptions

func Remove(opts RemoveOptions) (*types.Report, error) {
	return remove.Remove(opts)
}

// Push sends the current branch to the remote.
type PushOptions = push.PushOptions

func Push(opts PushOptions) (*types.Report, error) {
	return push.Push(opts)
}

// Status lists tracked files and their state on disk.
type StatusOptions = status.StatusOptions

func Status(opts StatusOptions) (*types.Report, error) {
	return status.Status(opts)
}

// GenConfig renders the effective configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.Report, error) {
	return genconfig.GenConfig(opts)
}
