package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/config"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/paths"
	"github.com/arthur-debert/dottler/pkg/types"
)

const header = "# dottler configuration\n# Generated from the effective settings; remove keys to fall back to defaults.\n\n"

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	Env internal.Env
	// Write saves the configuration to the user config file instead of
	// only returning it. An existing file is never overwritten.
	Write bool
}

// GenConfig renders the effective configuration as TOML.
func GenConfig(opts GenConfigOptions) (*types.Report, error) {
	logger := logging.GetLogger("commands.genconfig")
	if err := opts.Env.Validate(); err != nil {
		return nil, err
	}

	body, err := config.ToTOML(opts.Env.Config)
	if err != nil {
		return nil, err
	}
	content := header + string(body)

	report := types.NewReport("genconfig")
	report.Message = content
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return report, nil
	}

	target := filepath.Join(opts.Env.Paths.ConfigDir(), paths.ConfigFileTOML)
	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		report.AddItem(target, types.StatusUnchanged, "already exists, not overwritten")
		return report, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot create %s", filepath.Dir(target))
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	report.AddItem(target, types.StatusAdded, "")
	return report, nil
}
