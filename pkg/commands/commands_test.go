package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/dottler/pkg/config"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/paths"
	"github.com/arthur-debert/dottler/pkg/testutil"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozen = time.UnixMilli(1700000000000)

func newEnv(t *testing.T, home string) Env {
	t.Helper()
	cfg, err := config.Defaults()
	require.NoError(t, err)
	cfg.Commit.AuthorName = "Test"
	cfg.Commit.AuthorEmail = "test@example.com"
	return Env{
		Paths:  paths.New(home, filepath.Join(home, ".config", "dottler"), ""),
		Config: cfg,
		Cwd:    home,
		Now:    func() time.Time { return frozen },
	}
}

func setup(t *testing.T) (*testutil.Environment, Env) {
	t.Helper()
	te := testutil.NewEnvironment(t)
	e := newEnv(t, te.Home)
	_, err := Init(InitOptions{Env: e})
	require.NoError(t, err)
	return te, e
}

func items(r *types.Report) map[string]types.ItemStatus {
	out := map[string]types.ItemStatus{}
	for _, it := range r.Items {
		out[it.Path] = it.Status
	}
	return out
}

func TestInit(t *testing.T) {
	te := testutil.NewEnvironment(t)
	e := newEnv(t, te.Home)

	report, err := Init(InitOptions{Env: e})
	require.NoError(t, err)
	assert.Equal(t, "init", report.Command)
	assert.DirExists(t, te.Path(".dottler"))
	assert.FileExists(t, te.Path(".dottler/HEAD"))

	_, err = Init(InitOptions{Env: e})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryCreate))
	assert.Equal(t, 73, errors.ExitCode(err))
}

func TestAdd_Bashrc(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "export EDITOR=vim\n")

	report, err := Add(AddOptions{Env: e, Paths: []string{"~/.bashrc"}})
	require.NoError(t, err)
	require.NotNil(t, report.Commit)
	assert.Regexp(t, `^\d+ Add new files to Dottler$`, report.Commit.Message)
	assert.Equal(t, 0, report.Commit.Parents)
	assert.Equal(t, map[string]types.ItemStatus{".bashrc": types.StatusAdded}, items(report))

	r, err := git.PlainOpenWithOptions(te.Path(".dottler"), &git.PlainOpenOptions{})
	require.NoError(t, err)
	head, err := r.Head()
	require.NoError(t, err)
	c, err := r.CommitObject(head.Hash())
	require.NoError(t, err)
	f, err := c.File(".bashrc")
	require.NoError(t, err)
	content, err := f.Contents()
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=vim\n", content)
}

func TestSync_DeletedFileKeepsEntry(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "export EDITOR=vim\n")
	added, err := Add(AddOptions{Env: e, Paths: []string{".bashrc"}})
	require.NoError(t, err)

	testutil.RemoveFile(t, te.Path(".bashrc"))
	report, err := Sync(SyncOptions{Env: e})
	require.NoError(t, err)
	assert.Nil(t, report.Commit, "a deletion alone is not a change")
	assert.Equal(t, types.StatusMissing, items(report)[".bashrc"])

	status, err := Status(StatusOptions{Env: e})
	require.NoError(t, err)
	require.NotNil(t, status.Commit)
	assert.Equal(t, added.Commit.Hash, status.Commit.Hash)
	assert.Equal(t, types.StatusDeleted, items(status)[".bashrc"])
}

func TestAdd_DirectoryWithIgnoreRules(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".gitignore", "*.log\n")
	te.File(t, ".config/app/settings.json", "{}")
	te.File(t, ".config/app/debug.log", "noise")
	te.File(t, ".config/app/.git/HEAD", "ref: refs/heads/main")
	te.File(t, ".ssh/id_rsa", "secret")
	te.File(t, ".ssh/config", "Host *")

	report, err := Add(AddOptions{Env: e, Paths: []string{".config", ".ssh"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]types.ItemStatus{
		".config/app/settings.json": types.StatusAdded,
		".config/app/debug.log":     types.StatusIgnored,
		".ssh/config":               types.StatusAdded,
		".ssh/id_rsa":               types.StatusProtected,
	}, items(report))
}

func TestAdd_HomeSkipsRepository(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "x")

	report, err := Add(AddOptions{Env: e, Paths: []string{"~"}})
	require.NoError(t, err)
	for path := range items(report) {
		assert.NotContains(t, path, ".dottler")
	}
	assert.Equal(t, types.StatusAdded, items(report)[".bashrc"])
}

func TestAdd_OutsideHome(t *testing.T) {
	_, e := setup(t)
	outside := testutil.CreateFile(t, testutil.TempDir(t), "stray", "x")

	_, err := Add(AddOptions{Env: e, Paths: []string{outside}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideHome))

	status, err := Status(StatusOptions{Env: e})
	require.NoError(t, err)
	assert.Nil(t, status.Commit)
}

func TestAdd_EverythingFiltered(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".ssh/id_rsa", "secret")

	report, err := Add(AddOptions{Env: e, Paths: []string{".ssh/id_rsa"}})
	require.NoError(t, err)
	assert.Nil(t, report.Commit)
	assert.Equal(t, types.StatusProtected, items(report)[".ssh/id_rsa"])
}

func TestAdd_WithoutRepository(t *testing.T) {
	te := testutil.NewEnvironment(t)
	e := newEnv(t, te.Home)
	te.File(t, ".bashrc", "x")

	_, err := Add(AddOptions{Env: e, Paths: []string{".bashrc"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryState))
}

func TestAdd_NoPaths(t *testing.T) {
	_, e := setup(t)
	_, err := Add(AddOptions{Env: e})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRemove(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "a")
	te.File(t, ".config/nvim/init.vim", "b")
	_, err := Add(AddOptions{Env: e, Paths: []string{".bashrc", ".config/nvim"}})
	require.NoError(t, err)

	testutil.RemoveFile(t, te.Path(".config/nvim/init.vim"))
	require.NoError(t, os.Remove(te.Path(".config/nvim")))

	report, err := Remove(RemoveOptions{Env: e, Paths: []string{".config/nvim"}})
	require.NoError(t, err)
	assert.Regexp(t, `^\d+ Remove files from Dottler$`, report.Commit.Message)
	assert.Equal(t, map[string]types.ItemStatus{".config/nvim/init.vim": types.StatusRemoved}, items(report))

	_, err = Remove(RemoveOptions{Env: e, Paths: []string{".zshrc"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotTracked))
	assert.Equal(t, 66, errors.ExitCode(err))
	assert.FileExists(t, te.Path(".bashrc"))
}

func TestRemove_SymlinkedFile(t *testing.T) {
	te, e := setup(t)
	te.File(t, "dotfiles/bashrc", "a")
	testutil.CreateSymlink(t, te.Path("dotfiles/bashrc"), te.Path(".bashrc"))

	report, err := Add(AddOptions{Env: e, Paths: []string{".bashrc"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.ItemStatus{"dotfiles/bashrc": types.StatusAdded}, items(report))

	report, err = Remove(RemoveOptions{Env: e, Paths: []string{".bashrc"}})
	require.NoError(t, err)
	require.NotNil(t, report.Commit)
	assert.Equal(t, map[string]types.ItemStatus{"dotfiles/bashrc": types.StatusRemoved}, items(report))
	assert.FileExists(t, te.Path(".bashrc"))
}

func TestSync(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "a")
	te.File(t, ".vimrc", "b")
	_, err := Add(AddOptions{Env: e, Paths: []string{".bashrc", ".vimrc"}})
	require.NoError(t, err)

	report, err := Sync(SyncOptions{Env: e})
	require.NoError(t, err)
	assert.Nil(t, report.Commit)

	te.File(t, ".bashrc", "changed")
	testutil.RemoveFile(t, te.Path(".vimrc"))

	report, err = Sync(SyncOptions{Env: e})
	require.NoError(t, err)
	require.NotNil(t, report.Commit)
	assert.Regexp(t, `^\d+ Update Dottler files$`, report.Commit.Message)
	assert.Equal(t, map[string]types.ItemStatus{
		".bashrc": types.StatusUpdated,
		".vimrc":  types.StatusMissing,
	}, items(report))
	assert.NotEmpty(t, report.Notices)

	status, err := Status(StatusOptions{Env: e})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.ItemStatus{
		".bashrc": types.StatusTracked,
		".vimrc":  types.StatusDeleted,
	}, items(status))
}

func TestSync_RespectIgnore(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".config/app/state", "a")
	_, err := Add(AddOptions{Env: e, Paths: []string{".config/app/state"}})
	require.NoError(t, err)

	te.File(t, ".gitignore", ".config/app/\n")
	te.File(t, ".config/app/state", "b")
	e.Config.Sync.RespectIgnore = true

	report, err := Sync(SyncOptions{Env: e})
	require.NoError(t, err)
	assert.Nil(t, report.Commit)
	assert.Equal(t, types.StatusIgnored, items(report)[".config/app/state"])
}

func TestLinkPushClone(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "export A=1\n")

	_, err := Push(PushOptions{Env: e})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryState))

	remote := filepath.Join(testutil.TempDir(t), "dots.git")
	_, err = git.PlainInit(remote, true)
	require.NoError(t, err)

	_, err = Link(LinkOptions{Env: e, URL: remote})
	require.NoError(t, err)
	_, err = Link(LinkOptions{Env: e, URL: remote})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryState))
	_, err = Link(LinkOptions{Env: e, URL: remote, Force: true})
	require.NoError(t, err)

	report, err := Add(AddOptions{Env: e, Paths: []string{".bashrc"}, Push: true})
	require.NoError(t, err)
	assert.True(t, report.Pushed)

	report, err = Push(PushOptions{Env: e})
	require.NoError(t, err)
	assert.True(t, report.Pushed)
	assert.Contains(t, report.Notices, "remote origin is already up to date")

	otherHome := testutil.CreateDir(t, testutil.TempDir(t), "home")
	other := newEnv(t, otherHome)
	report, err = Clone(CloneOptions{Env: other, URL: remote})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.ItemStatus{".bashrc": types.StatusDeleted}, items(report))
	assert.NoFileExists(t, filepath.Join(otherHome, ".bashrc"), "clone does not write into home")

	_, err = Clone(CloneOptions{Env: other, URL: remote})
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepositoryCreate))
}

func TestStatus(t *testing.T) {
	te, e := setup(t)
	te.File(t, ".bashrc", "a")
	_, err := Add(AddOptions{Env: e, Paths: []string{".bashrc"}})
	require.NoError(t, err)

	report, err := Status(StatusOptions{Env: e})
	require.NoError(t, err)
	assert.Equal(t, "1 tracked file on branch master", report.Message)
	require.NotNil(t, report.Commit)
	require.Len(t, report.Items, 1)
	assert.Contains(t, report.Items[0].Note, "1 B")
	assert.Contains(t, report.Notices, "no remote configured; run 'dottler link <url>'")
}

func TestGenConfig(t *testing.T) {
	te := testutil.NewEnvironment(t)
	e := newEnv(t, te.Home)

	report, err := GenConfig(GenConfigOptions{Env: e})
	require.NoError(t, err)
	assert.Contains(t, report.Message, "[repository]")
	assert.Contains(t, report.Message, ".dottler")
	assert.Empty(t, report.Items)

	report, err = GenConfig(GenConfigOptions{Env: e, Write: true})
	require.NoError(t, err)
	target := filepath.Join(e.Paths.ConfigDir(), "config.toml")
	assert.Equal(t, map[string]types.ItemStatus{target: types.StatusAdded}, items(report))

	loaded, err := config.Load(target, true)
	require.NoError(t, err)
	assert.Equal(t, e.Config, loaded)

	report, err = GenConfig(GenConfigOptions{Env: e, Write: true})
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnchanged, items(report)[target])
}
