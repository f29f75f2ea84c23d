package report

import (
	"strings"

	"github.com/oneconcern/datadesk/pkg/report/status"
)

// Format of the rendered output
type Format string

// Supported output formats
const (
	// Desk is a human-readable, coloured rendering
	Desk Format = "desk"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat parses an output format. An empty string defaults to Desk.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Desk, nil
	case Desk, YAML, JSON:
		return f, nil
	default:
		return "", status.ErrUnknownFormat.WrapMessage(s)
	}
}
