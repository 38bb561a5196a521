package config

import (
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
)

// Config is the effective configuration.
type Config struct {
	Repository RepositoryConfig `koanf:"repository" toml:"repository"`
	Remote     RemoteConfig     `koanf:"remote" toml:"remote"`
	Auth       AuthConfig       `koanf:"auth" toml:"auth"`
	Commit     CommitConfig     `koanf:"commit" toml:"commit"`
	Ignore     IgnoreConfig     `koanf:"ignore" toml:"ignore"`
	Sync       SyncConfig       `koanf:"sync" toml:"sync"`
}

// RepositoryConfig locates the repository. Dir is relative to home.
type RepositoryConfig struct {
	Dir    string `koanf:"dir" toml:"dir"`
	Branch string `koanf:"branch" toml:"branch"`
}

type RemoteConfig struct {
	Name string `koanf:"name" toml:"name"`
}

// AuthConfig drives SSH credential resolution for clone and push.
type AuthConfig struct {
	SSHKey         string `koanf:"ssh_key" toml:"ssh_key"`
	Passphrase     string `koanf:"passphrase" toml:"passphrase"`
	UseAgent       bool   `koanf:"use_agent" toml:"use_agent"`
	StrictHostKeys bool   `koanf:"strict_host_keys" toml:"strict_host_keys"`
}

// CommitConfig sets the commit identity. Empty values fall back to the
// global git identity.
type CommitConfig struct {
	AuthorName  string `koanf:"author_name" toml:"author_name"`
	AuthorEmail string `koanf:"author_email" toml:"author_email"`
}

type IgnoreConfig struct {
	// MetadataDirs are directory names never descended into when expanding.
	MetadataDirs []string `koanf:"metadata_dirs" toml:"metadata_dirs"`
	// Patterns are extra gitignore-style rules.
	Patterns []string `koanf:"patterns" toml:"patterns"`
	// Protected are globs for paths that must never be tracked.
	Protected []string `koanf:"protected" toml:"protected"`
}

type SyncConfig struct {
	RespectIgnore bool `koanf:"respect_ignore" toml:"respect_ignore"`
	Push          bool `koanf:"push" toml:"push"`
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Repository.Dir) == "" {
		return errors.New(errors.ErrConfigParse, "repository.dir cannot be empty")
	}
	if strings.TrimSpace(c.Repository.Branch) == "" {
		return errors.New(errors.ErrConfigParse, "repository.branch cannot be empty")
	}
	if strings.TrimSpace(c.Remote.Name) == "" {
		return errors.New(errors.ErrConfigParse, "remote.name cannot be empty")
	}
	for _, d := range c.Ignore.MetadataDirs {
		if d == "" || strings.ContainsAny(d, `/\`) {
			return errors.Newf(errors.ErrConfigParse, "ignore.metadata_dirs entry %q must be a single directory name", d)
		}
	}
	return nil
}
