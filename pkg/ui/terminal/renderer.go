// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui/format"
	"github.com/arthur-debert/dottler/pkg/ui/styles"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using pterm badges and the
// lipgloss styles registry.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders a report with a status column per item, followed
// by the commit line and any notices.
func (r *Renderer) RenderResult(report *types.Report) error {
	if report == nil {
		return nil
	}
	var b strings.Builder

	if report.Message != "" {
		b.WriteString(styles.GetStyle("Message").Render(strings.TrimRight(report.Message, "\n")))
		b.WriteString("\n")
	}
	if len(report.Items) > 0 {
		if report.Message != "" {
			b.WriteString("\n")
		}
		for _, it := range report.Items {
			b.WriteString("  ")
			b.WriteString(styles.GetStyle(string(it.Status)).Render(string(it.Status)))
			b.WriteString(styles.GetStyle("Path").Render(it.Path))
			if it.Note != "" {
				b.WriteString("  ")
				b.WriteString(styles.GetStyle("Note").Render(it.Note))
			}
			b.WriteString("\n")
		}
	}

	if c := report.Commit; c != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s %s",
			pterm.Success.Prefix.Style.Sprint(" "+pterm.Success.Prefix.Text+" "),
			styles.GetStyle("Hash").Render(format.ShortHash(c.Hash)),
			format.Subject(c.Message))
		if !c.When.IsZero() {
			b.WriteString(" ")
			b.WriteString(styles.GetStyle("Muted").Render(humanize.Time(c.When)))
		}
		b.WriteString("\n")
	}

	for _, n := range report.Notices {
		fmt.Fprintf(&b, "%s %s\n",
			pterm.Info.Prefix.Style.Sprint(" "+pterm.Info.Prefix.Text+" "),
			styles.GetStyle("Notice").Render(n))
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code badge, details and hint.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	var b strings.Builder
	badge := pterm.Error.Prefix.Style.Sprint(" " + pterm.Error.Prefix.Text + " ")

	dErr, ok := errors.AsDottlerError(err)
	if !ok {
		fmt.Fprintf(&b, "%s %s\n", badge, styles.GetStyle("Error").Render(err.Error()))
		_, werr := io.WriteString(r.output, b.String())
		return werr
	}

	fmt.Fprintf(&b, "%s %s %s\n", badge,
		styles.GetStyle("Muted").Render(string(dErr.Code)),
		styles.GetStyle("Error").Render(dErr.Message))
	if dErr.Wrapped != nil {
		fmt.Fprintf(&b, "  %s\n", styles.GetStyle("Muted").Render(dErr.Wrapped.Error()))
	}
	keys := make([]string, 0, len(dErr.Details))
	for k := range dErr.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s %v\n", styles.GetStyle("Muted").Render(k+":"), dErr.Details[k])
	}
	if dErr.Hint != "" {
		fmt.Fprintf(&b, "  %s\n", styles.GetStyle("Hint").Render(dErr.Hint))
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Message").Render(msg))
	return err
}
