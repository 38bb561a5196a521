// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui/format"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a report as plain text, one item per line.
func (r *Renderer) RenderResult(report *types.Report) error {
	if report == nil {
		return nil
	}
	var b strings.Builder
	if report.Message != "" {
		b.WriteString(strings.TrimRight(report.Message, "\n"))
		b.WriteString("\n")
	}
	if len(report.Items) > 0 && report.Message != "" {
		b.WriteString("\n")
	}
	for _, it := range report.Items {
		fmt.Fprintf(&b, "%s %-10s %s", format.StatusSymbol(it.Status), it.Status, it.Path)
		if it.Note != "" {
			fmt.Fprintf(&b, "  (%s)", it.Note)
		}
		b.WriteString("\n")
	}
	if report.Commit != nil {
		fmt.Fprintf(&b, "commit %s %s\n", format.ShortHash(report.Commit.Hash), format.Subject(report.Commit.Message))
	}
	for _, n := range report.Notices {
		fmt.Fprintf(&b, "note: %s\n", n)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", errors.Format(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
