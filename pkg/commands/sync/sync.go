package sync

import (
	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/reconcile"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/dustin/go-humanize/english"
)

// SyncOptions defines the options for the Sync command.
type SyncOptions struct {
	Env internal.Env
	// Push sends the result to the remote. sync.push in the configuration
	// has the same effect.
	Push bool
}

// Sync restages every tracked file that still exists and commits when
// anything changed. Tracked files that were deleted stay tracked.
func Sync(opts SyncOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.sync")

	r, err := internal.OpenRepo(opts.Env)
	if err != nil {
		return nil, err
	}

	var syncOpts reconcile.SyncOptions
	if opts.Env.Config.Sync.RespectIgnore {
		filter, err := internal.NewFilter(opts.Env, r)
		if err != nil {
			return nil, err
		}
		syncOpts.Exclude = filter.Excluded
	}

	res, err := reconcile.New(r).SyncExisting(syncOpts)
	if err != nil {
		return nil, err
	}

	report := types.NewReport("sync")
	internal.ResultItems(report, res.Items)
	if missing := report.Count(types.StatusMissing); missing > 0 {
		report.AddNotice(english.Plural(missing, "tracked file is", "tracked files are") + " missing from disk and kept in the repository")
	}

	if res.Commit == nil {
		report.Message = "Everything up to date"
	} else {
		report.Commit = internal.Summary(res.Commit)
		report.Message = "Updated " + english.Plural(report.Count(types.StatusUpdated), "file", "")
	}
	log.Debug().Bool("committed", res.Commit != nil).Msg("sync finished")

	if opts.Push || opts.Env.Config.Sync.Push {
		if err := internal.Push(opts.Env, r, report); err != nil {
			if res.Commit != nil {
				return nil, internal.PushAfterCommit(err)
			}
			return nil, err
		}
	}
	return report, nil
}
