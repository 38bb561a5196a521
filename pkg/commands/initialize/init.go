package initialize

import (
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/repo"
	"github.com/arthur-debert/dottler/pkg/types"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	Env internal.Env
}

// Init creates an empty repository with home as its working tree.
func Init(opts InitOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.init")
	if err := opts.Env.Validate(); err != nil {
		return nil, err
	}

	gitDir := opts.Env.GitDir()
	log.Debug().Str("gitDir", gitDir).Msg("Executing command")

	r, err := repo.Init(gitDir, opts.Env.Paths.Home(), opts.Env.RepoOptions())
	if err != nil {
		return nil, err
	}
	branch, err := r.Branch()
	if err != nil {
		return nil, err
	}

	report := types.NewReport("init")
	report.Message = "Initialized empty dottler repository in " + gitDir
	report.AddNotice("branch " + branch + ", working tree " + opts.Env.Paths.Home())
	return report, nil
}
