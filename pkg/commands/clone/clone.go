package clone

import (
	"strings"

	"github.com/arthur-debert/dottler/pkg/commands/internal"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/repo"
	"github.com/arthur-debert/dottler/pkg/types"
)

// CloneOptions defines the options for the Clone command.
type CloneOptions struct {
	Env internal.Env
	URL string
}

// Clone creates the repository from URL. Files in home are not touched;
// tracked files that differ on disk show up as modified in status.
func Clone(opts CloneOptions) (*types.Report, error) {
	log := logging.GetLogger("commands.clone")
	if err := opts.Env.Validate(); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New(errors.ErrInvalidInput, "remote url cannot be empty")
	}

	auth, err := internal.Auth(opts.Env, url)
	if err != nil {
		return nil, err
	}

	gitDir := opts.Env.GitDir()
	log.Debug().Str("url", url).Str("gitDir", gitDir).Msg("Executing command")
	r, err := repo.Clone(gitDir, opts.Env.Paths.Home(), url, auth, opts.Env.RepoOptions())
	if err != nil {
		return nil, err
	}

	report := types.NewReport("clone")
	report.Message = "Cloned " + url + " into " + gitDir

	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	report.Commit = internal.Summary(head)

	states, err := r.Status()
	if err != nil {
		return nil, err
	}
	for _, s := range states {
		report.AddItem(s.Path, s.Status, "")
	}
	if n := report.Count(types.StatusModified) + report.Count(types.StatusDeleted); n > 0 {
		report.AddNotice("some tracked files differ from your home directory; run 'dottler status'")
	}
	return report, nil
}
