package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *types.Report {
	r := types.NewReport("add")
	r.Message = "Recorded 1 file"
	r.AddItem(".bashrc", types.StatusAdded, "")
	r.AddItem(".ssh/id_rsa", types.StatusProtected, "under .ssh/id_*")
	r.Commit = &types.CommitSummary{
		Hash:    "0123456789abcdef0123456789abcdef01234567",
		Message: "1700000000000 Add new files to Dottler",
		When:    time.Now().Add(-time.Minute),
	}
	r.AddNotice("pushed to origin")
	return r
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "terminal", format: ui.FormatTerminal},
		{name: "text", format: ui.FormatText},
		{name: "json", format: ui.FormatJSON},
		{name: "auto with buffer", format: ui.FormatAuto},
		{name: "invalid", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestRendererInterface(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			assert.NoError(t, renderer.RenderMessage("test message"))
			assert.NoError(t, renderer.RenderError(assert.AnError))
			assert.NoError(t, renderer.RenderResult(sampleReport()))
			assert.NoError(t, renderer.RenderResult(nil))
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render plain error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, assert.AnError.Error(), result["error"])
		assert.Equal(t, "UNKNOWN", result["code"])
	})

	t.Run("render structured error", func(t *testing.T) {
		buf.Reset()
		err := errors.New(errors.ErrNotTracked, "paths are not tracked").
			WithHint("run 'dottler status' to list tracked files").
			WithDetail("paths", []string{".zshrc"})
		require.NoError(t, renderer.RenderError(err))

		var result struct {
			Error   string                 `json:"error"`
			Code    string                 `json:"code"`
			Hint    string                 `json:"hint"`
			Details map[string]interface{} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "NOT_TRACKED", result.Code)
		assert.Equal(t, "paths are not tracked", result.Error)
		assert.Contains(t, result.Hint, "dottler status")
		assert.Equal(t, []interface{}{".zshrc"}, result.Details["paths"])
	})

	t.Run("render report", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleReport()))

		var result types.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "add", result.Command)
		require.Len(t, result.Items, 2)
		assert.Equal(t, types.StatusProtected, result.Items[1].Status)
		require.NotNil(t, result.Commit)
		assert.Equal(t, "1700000000000 Add new files to Dottler", result.Commit.Message)
	})
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))
		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(errors.New(errors.ErrAuth, "denied").WithHint("load a key")))
		assert.Equal(t, "Error: denied\n  hint: load a key\n", buf.String())
	})

	t.Run("render report", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleReport()))
		assert.Equal(t, "Recorded 1 file\n\n"+
			"+ added      .bashrc\n"+
			"! protected  .ssh/id_rsa  (under .ssh/id_*)\n"+
			"commit 0123456 1700000000000 Add new files to Dottler\n"+
			"note: pushed to origin\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("render report", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleReport()))
		out := buf.String()
		assert.Contains(t, out, "Recorded 1 file")
		assert.Contains(t, out, ".bashrc")
		assert.Contains(t, out, "under .ssh/id_*")
		assert.Contains(t, out, "0123456")
		assert.Contains(t, out, "minute ago")
		assert.Contains(t, out, "pushed to origin")
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := errors.New(errors.ErrOutsideHome, "path is outside home").
			WithDetail("path", "/etc/passwd").
			WithHint("only files under your home directory can be tracked")
		require.NoError(t, renderer.RenderError(err))
		out := buf.String()
		assert.Contains(t, out, "OUTSIDE_HOME")
		assert.Contains(t, out, "/etc/passwd")
		assert.Contains(t, out, "only files under your home directory")
	})
}
