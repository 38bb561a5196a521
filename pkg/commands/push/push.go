package push

import (
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/types"
)

// PushOptions defines the options for the Push command.
type PushOptions struct {
	Env internal.Env
}

// Push sends the current branch to the configured remote.
func Push(opts PushOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.push")

	r, err := internal.OpenRepo(opts.Env)
	if err != nil {
		return nil, err
	}

	report := types.NewReport("push")
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	report.Commit = internal.Summary(head)

	log.Debug().Str("remote", opts.Env.Config.Remote.Name).Msg("Executing command")
	if err := internal.Push(opts.Env, r, report); err != nil {
		return nil, err
	}
	report.Message = "Pushed to " + opts.Env.Config.Remote.Name
	return report, nil
}
