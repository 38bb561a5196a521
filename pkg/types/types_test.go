package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrackedPath(t *testing.T) {
	valid := []string{".bashrc", ".config/nvim/init.lua", "a/b/c"}
	for _, s := range valid {
		t.Run("valid "+s, func(t *testing.T) {
			p, err := ParseTrackedPath(s)
			require.NoError(t, err)
			assert.Equal(t, s, p.String())
		})
	}

	invalid := []string{"", "/etc/passwd", "./x", "a/../b", "a//b", "a/", `a\b`, "..", "x\x00y"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := ParseTrackedPath(s)
			assert.Error(t, err)
		})
	}
}

func TestTrackedPathPrefixes(t *testing.T) {
	assert.Equal(t, []string{"a", "a/b", "a/b/c"}, TrackedPath("a/b/c").Prefixes())
	assert.Equal(t, []string{".bashrc"}, TrackedPath(".bashrc").Prefixes())
}

func TestTrackedPathHasPrefixDir(t *testing.T) {
	p := TrackedPath(".config/nvim/init.lua")
	assert.True(t, p.HasPrefixDir(".config"))
	assert.True(t, p.HasPrefixDir(".config/nvim/"))
	assert.False(t, p.HasPrefixDir(".conf"))
	assert.False(t, p.HasPrefixDir(".config/nvim/init.lua"))
	assert.True(t, p.HasPrefixDir("."))
}

func TestPathSet(t *testing.T) {
	var s PathSet
	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	assert.True(t, s.Add("c"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "a", "c"}, s.Strings())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("d"))

	paths := s.Paths()
	paths[0] = "mutated"
	assert.Equal(t, TrackedPath("b"), s.Paths()[0])

	var nilSet *PathSet
	assert.Equal(t, 0, nilSet.Len())
	assert.Nil(t, nilSet.Paths())
}

func TestReportCount(t *testing.T) {
	r := NewReport("add")
	r.AddItem(".bashrc", StatusAdded, "")
	r.AddItem(".vimrc", StatusAdded, "")
	r.AddItem(".cache", StatusIgnored, ".cache is ignored")

	assert.Equal(t, 2, r.Count(StatusAdded))
	assert.Equal(t, 1, r.Count(StatusIgnored))
	assert.Equal(t, 0, r.Count(StatusRemoved))
}
