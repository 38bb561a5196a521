package config

import (
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// ToTOML renders cfg as a TOML document suitable for config.toml.
func ToTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
