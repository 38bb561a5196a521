package add

import (
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/reconcile"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/dustin/go-humanize/english"
)

// AddOptions defines the options for the Add command.
type AddOptions struct {
	Env   internal.Env
	Paths []string
	// Push sends the new commit to the remote afterwards.
	Push bool
}

// Add normalizes the given paths, drops ignored and protected ones, and
// records the rest in a single commit.
func Add(opts AddOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.add")
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
	candidates, err := n.Normalize(opts.Paths)
	if err != nil {
		return nil, err
	}

	filter, err := internal.NewFilter(opts.Env, r)
	if err != nil {
		return nil, err
	}
	kept, dropped, err := filter.Apply(candidates)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("candidates", candidates.Len()).Int("kept", kept.Len()).Int("dropped", len(dropped)).Msg("paths resolved")

	report := types.NewReport("add")
	res, err := reconcile.New(r).AddPaths(kept)
	if err != nil {
		return nil, err
	}
	internal.ResultItems(report, res.Items)
	internal.DroppedItems(report, dropped)

	if res.Commit == nil {
		report.Message = "Nothing to add"
		return report, nil
	}
	report.Commit = internal.Summary(res.Commit)
	report.Message = "Recorded " + english.Plural(kept.Len(), "file", "")

	if opts.Push {
		if err := internal.Push(opts.Env, r, report); err != nil {
			return nil, internal.PushAfterCommit(err)
		}
	}
	return report, nil
}
