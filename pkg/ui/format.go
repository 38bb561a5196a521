package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how reports and errors are rendered.
type Format int

const (
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

type formatInfo struct {
	format  Format
	name    string
	aliases []string
	usage   string
}

// Ordered as shown in help and completions.
var formats = []formatInfo{
	{FormatAuto, "auto", nil, "term on a color terminal, text otherwise"},
	{FormatTerminal, "term", []string{"terminal"}, "styled report with status badges"},
	{FormatText, "text", []string{"plain"}, "one line per path; stable for scripts"},
	{FormatJSON, "json", nil, "report object {command, message, items[{path,status,note}], commit, pushed, notices}"},
}

func lookupFormat(f Format) (formatInfo, bool) {
	for _, info := range formats {
		if info.format == f {
			return info, true
		}
	}
	return formatInfo{}, false
}

func (f Format) String() string {
	if info, ok := lookupFormat(f); ok {
		return info.name
	}
	return "unknown"
}

// Usage is the one-line description shown in flag completions.
func (f Format) Usage() string {
	info, _ := lookupFormat(f)
	return info.usage
}

// FormatNames lists the canonical --format values.
func FormatNames() []string {
	names := make([]string, len(formats))
	for i, info := range formats {
		names[i] = info.name
	}
	return names
}

// ParseFormat accepts a canonical name or alias, case-insensitively. The
// empty string means auto.
func ParseFormat(s string) (Format, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	if want == "" {
		return FormatAuto, nil
	}
	for _, info := range formats {
		if want == info.name {
			return info.format, nil
		}
		for _, alias := range info.aliases {
			if want == alias {
				return info.format, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s).
		WithHint("use one of " + strings.Join(FormatNames(), ", "))
}

// DetectFormat picks term or text for output. NO_COLOR, TERM=dumb, a pipe
// or a colorless terminal all mean text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
