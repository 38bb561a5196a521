package status

import (
	"fmt"

	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// StatusOptions defines the options for the Status command.
type StatusOptions struct {
	Env internal.Env
}

// Status lists every tracked file with its state on disk.
func Status(opts StatusOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.status")

	r, err := internal.OpenRepo(opts.Env)
	if err != nil {
		return nil, err
	}

	states, err := r.Status()
	if err != nil {
		return nil, err
	}
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	branch, err := r.Branch()
	if err != nil {
		return nil, err
	}
	remote := opts.Env.Config.Remote.Name
	url, err := r.RemoteURL(remote)
	if err != nil {
		return nil, err
	}

	report := types.NewReport("status")
	report.Commit = internal.Summary(head)
	for _, s := range states {
		note := ""
		if s.Status != types.StatusDeleted {
			note = fmt.Sprintf("%s, changed %s", humanize.Bytes(uint64(s.Size)), humanize.Time(s.Modified))
		}
		report.AddItem(s.Path, s.Status, note)
	}

	report.Message = fmt.Sprintf("%s on branch %s", english.Plural(len(states), "tracked file", ""), branch)
	if url == "" {
		report.AddNotice("no remote configured; run 'dottler link <url>'")
	} else {
		report.AddNotice(fmt.Sprintf("remote %s: %s", remote, url))
	}
	if head != nil {
		report.AddNotice("last commit " + humanize.Time(head.Author.When))
	}
	log.Debug().Int("tracked", len(states)).Msg("status collected")
	return report, nil
}
