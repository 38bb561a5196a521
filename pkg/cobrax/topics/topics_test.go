package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"ignore-rules.md":   {Data: []byte("# Ignore rules\n\nProtected paths are never tracked.")},
		"option-push.txt":   {Data: []byte("Push after committing.")},
		"remotes/ssh.txt":   {Data: []byte("Keys are read from the agent first.")},
		"config.txxt":       {Data: []byte("Configuration Guide")},
		"ignore.json":       {Data: []byte("{}")},
		"remotes/notes.bin": {Data: []byte{0x00}},
	}
}

func TestTopicManager_Scan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"ignore-rules", "option-push", "ssh"}, tm.ListTopics())
		topic, ok := tm.GetTopic("ssh")
		require.True(t, ok)
		assert.Equal(t, "remotes/ssh.txt", topic.FilePath)
		assert.Equal(t, "Keys are read from the agent first.", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Scan())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.Scan())

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"ignore-rules", "ignore-rules", true},
		{"push", "option-push", true},
		{"--push", "option-push", true},
		{"-push", "option-push", true},
		{"option-push", "option-push", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.query)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func TestTopicManager_WriteIndex(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteIndex(&buf, "dottler")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  ignore-rules\n  ssh\n")
	assert.Contains(t, out, "Option topics:\n  --push\n")
	assert.Contains(t, out, "Use 'dottler help <topic>'")

	buf.Reset()
	New(fstest.MapFS{}).WriteIndex(&buf, "dottler")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{ seen string }

func (r *upperRenderer) Render(content, ext string) string {
	r.seen = ext
	return "<" + content + ">"
}

func TestTopicManager_Render(t *testing.T) {
	r := &upperRenderer{}
	tm := NewWithOptions(topicFS(), Options{Renderer: r})
	require.NoError(t, tm.Scan())

	topic, ok := tm.GetTopic("push")
	require.True(t, ok)
	assert.Equal(t, "<Push after committing.>", tm.Render(topic))
	assert.Equal(t, ".txt", r.seen)
}

func TestGlamourRenderer_NonMarkdown(t *testing.T) {
	assert.Equal(t, "plain", NewGlamourRenderer().Render("plain", ".txt"))
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "dottler", Short: "test root"}
	root.AddCommand(&cobra.Command{Use: "add", Short: "Track files", Run: func(*cobra.Command, []string) {}})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	_, err := Initialize(root, topicFS())
	require.NoError(t, err)
	return root, &out
}

func TestIntegration_HelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "ssh"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Keys are read from the agent first.", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Available help topics:")
	})

	t.Run("command help", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "add"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Track files")
	})
}
