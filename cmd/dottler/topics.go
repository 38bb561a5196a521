package dottler

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/dottler/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// initTopics installs the topic-aware help command. Topics ship inside the
// binary, so a failure here means a broken build.
func initTopics(root *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	_, err = topics.InitializeWithOptions(root, sub, topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	return err
}
