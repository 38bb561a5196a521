// Package ui provides a unified interface for rendering command reports in
// different formats. It supports terminal (rich), text (plain), and JSON
// output.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui/json"
	"github.com/arthur-debert/dottler/pkg/ui/terminal"
	"github.com/arthur-debert/dottler/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders the report a command returned.
	RenderResult(report *types.Report) error

	// RenderError renders an error with its hint and details.
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file and falls back to terminal
// rendering otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
