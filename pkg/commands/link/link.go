package link

import (
	"strings"

	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/types"
)

// LinkOptions defines the options for the Link command.
type LinkOptions struct {
	Env internal.Env
	URL string
	// Force replaces an existing remote of the same name.
	Force bool
}

// Link records URL as the configured remote.
func Link(opts LinkOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.link")

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New(errors.ErrInvalidInput, "remote url cannot be empty")
	}

	r, err := internal.OpenRepo(opts.Env)
	if err != nil {
		return nil, err
	}

	name := opts.Env.Config.Remote.Name
	log.Debug().Str("remote", name).Str("url", url).Bool("force", opts.Force).Msg("Executing command")
	if err := r.AddRemote(name, url, opts.Force); err != nil {
		return nil, err
	}

	report := types.NewReport("link")
	report.Message = "Remote " + name + " set to " + url
	return report, nil
}
