package remove

import (
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/reconcile"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/dustin/go-humanize/english"
)

// RemoveOptions defines the options for the Remove command.
type RemoveOptions struct {
	Env   internal.Env
	Paths []string
}

// Remove stops tracking the given paths. Paths that no longer exist on
// disk are resolved lexically. The files themselves are left in place.
func Remove(opts RemoveOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.remove")
	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no paths given")
	}

	r, err := internal.OpenRepo(opts.Env)
	if err != nil {
		return nil, err
	}
	n, err := internal.NewNormalizer(opts.Env)
	if err != nil {
		return nil, err
	}

	targets := make([]types.TrackedPath, 0, len(opts.Paths))
	for _, raw := range opts.Paths {
		p, err := n.Lexical(raw)
		if err != nil {
			return nil, err
		}
		targets = append(targets, p)
	}
	log.Debug().Int("targets", len(targets)).Msg("paths resolved")

	res, err := reconcile.New(r).RemovePaths(targets)
	if err != nil {
		return nil, err
	}

	report := types.NewReport("remove")
	internal.ResultItems(report, res.Items)
	report.Commit = internal.Summary(res.Commit)
	report.Message = "Stopped tracking " + english.Plural(len(res.Items), "file", "")
	return report, nil
}
