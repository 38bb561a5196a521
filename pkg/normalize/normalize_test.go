package normalize

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/testutil"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T, home, cwd string) *Normalizer {
	t.Helper()
	n, err := New(home, cwd, []string{".git", ".dottler"})
	require.NoError(t, err)
	return n
}

func TestNormalize_SingleFile(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".bashrc", "export X=1")

	n := newNormalizer(t, home, home)

	set, err := n.Normalize([]string{".bashrc"})
	require.NoError(t, err)
	assert.Equal(t, []string{".bashrc"}, set.Strings())
}

func TestNormalize_RelativeToCwd(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".config/git/config", "[user]")
	cwd := filepath.Join(home, ".config")

	n := newNormalizer(t, home, cwd)

	tests := []struct {
		name string
		arg  string
	}{
		{"relative", "git/config"},
		{"dot segments", "./git/../git/config"},
		{"absolute", filepath.Join(home, ".config", "git", "config")},
		{"tilde", "~/.config/git/config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := n.Normalize([]string{tt.arg})
			require.NoError(t, err)
			assert.Equal(t, []string{".config/git/config"}, set.Strings())
		})
	}
}

func TestNormalize_DirectoryExpansion(t *testing.T) {
	home := testutil.TempDir(t)
	want := []string{
		".config/nvim/init.lua",
		".config/nvim/lua/plugins.lua",
		".config/nvim/lua/deep/er/settings.lua",
		".config/nvim/after/ftplugin/go.lua",
	}
	for _, f := range want {
		testutil.CreateFile(t, home, f, f)
	}
	testutil.CreateDir(t, home, ".config/nvim/empty")
	testutil.CreateFile(t, home, ".config/nvim/.git/HEAD", "ref: refs/heads/main")
	testutil.CreateFile(t, home, ".config/nvim/pack/x/.git/config", "")
	testutil.CreateSymlink(t, filepath.Join(home, ".config/nvim/init.lua"), filepath.Join(home, ".config/nvim/link.lua"))

	n := newNormalizer(t, home, home)

	set, err := n.Normalize([]string{".config/nvim"})
	require.NoError(t, err)

	got := set.Strings()
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestNormalize_Dedup(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".zshrc", "")
	testutil.CreateFile(t, home, ".config/a", "")
	testutil.CreateFile(t, home, ".config/b", "")

	n := newNormalizer(t, home, home)

	set, err := n.Normalize([]string{".zshrc", ".config/b", ".config", "~/.zshrc"})
	require.NoError(t, err)
	assert.Equal(t, []string{".zshrc", ".config/b", ".config/a"}, set.Strings())
}

func TestNormalize_OutsideHome(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	outsideFile := testutil.CreateFile(t, root, "elsewhere/secret", "x")
	testutil.CreateFile(t, home, ".bashrc", "")
	testutil.CreateSymlink(t, outsideFile, filepath.Join(home, ".escape"))

	n := newNormalizer(t, home, home)

	for _, arg := range []string{
		outsideFile,
		filepath.Join(root, "elsewhere"),
		"../elsewhere/secret",
		".escape",
	} {
		t.Run(arg, func(t *testing.T) {
			set, err := n.Normalize([]string{".bashrc", arg})
			require.Error(t, err)
			assert.Nil(t, set)
			assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideHome), "got %v", err)
		})
	}
}

func TestNormalize_InvalidPath(t *testing.T) {
	home := testutil.TempDir(t)
	n := newNormalizer(t, home, home)

	for _, arg := range []string{"missing", "", "dir/\x00"} {
		_, err := n.Normalize([]string{arg})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath), "arg %q: %v", arg, err)
	}
}

func TestNormalize_SymlinkedHome(t *testing.T) {
	root := testutil.TempDir(t)
	realHome := testutil.CreateDir(t, root, "real-home")
	testutil.CreateFile(t, realHome, ".profile", "")
	link := filepath.Join(root, "home")
	testutil.CreateSymlink(t, realHome, link)

	n := newNormalizer(t, link, link)

	set, err := n.Normalize([]string{filepath.Join(link, ".profile")})
	require.NoError(t, err)
	assert.Equal(t, []string{".profile"}, set.Strings())
}

func TestNormalize_MetadataFileGivenDirectly(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.CreateFile(t, home, ".dottler/config", "")

	n := newNormalizer(t, home, home)

	set, err := n.Normalize([]string{".dottler/config"})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestNormalize_UnreadableDirectory(t *testing.T) {
	testutil.SkipIfRoot(t)
	home := testutil.TempDir(t)
	locked := testutil.CreateDir(t, home, ".locked")
	testutil.CreateFile(t, locked, "f", "")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	n := newNormalizer(t, home, home)

	_, err := n.Normalize([]string{".locked"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
}

func TestLexical(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	testutil.CreateDir(t, home, ".config")
	testutil.CreateSymlink(t, filepath.Join(home, ".config"), filepath.Join(home, ".cfg"))
	testutil.CreateFile(t, home, "dotfiles/bashrc", "export A=1")
	testutil.CreateSymlink(t, filepath.Join(home, "dotfiles", "bashrc"), filepath.Join(home, ".bashrc"))
	testutil.CreateSymlink(t, filepath.Join(home, "nowhere"), filepath.Join(home, ".dangling"))

	n := newNormalizer(t, home, home)

	tests := []struct {
		arg  string
		want types.TrackedPath
		code errors.ErrorCode
	}{
		{arg: ".gone", want: ".gone"},
		{arg: ".config/deleted/deeper", want: ".config/deleted/deeper"},
		{arg: ".cfg/app.conf", want: ".config/app.conf"},
		{arg: "./.config/", want: ".config"},
		{arg: ".bashrc", want: "dotfiles/bashrc"},
		{arg: "~/.bashrc", want: "dotfiles/bashrc"},
		{arg: ".dangling", want: ".dangling"},
		{arg: "~", code: errors.ErrOutsideHome},
		{arg: "../other", code: errors.ErrOutsideHome},
		{arg: "", code: errors.ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := n.Lexical(tt.arg)
			if tt.code != "" {
				assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
