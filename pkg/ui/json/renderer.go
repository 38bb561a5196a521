// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// ErrorOutput is the JSON shape of a failed command.
type ErrorOutput struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Hint    string                 `json:"hint,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   string                 `json:"cause,omitempty"`
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderResult renders a report as JSON
func (r *Renderer) RenderResult(report *types.Report) error {
	return r.encoder.Encode(report)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	out := ErrorOutput{Code: string(errors.ErrUnknown)}
	if dErr, ok := errors.AsDottlerError(err); ok {
		out.Error = dErr.Message
		out.Code = string(dErr.Code)
		out.Hint = dErr.Hint
		if len(dErr.Details) > 0 {
			out.Details = dErr.Details
		}
		if dErr.Wrapped != nil {
			out.Cause = dErr.Wrapped.Error()
		}
	} else if err != nil {
		out.Error = err.Error()
	}
	return r.encoder.Encode(out)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}
