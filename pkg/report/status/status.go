// Package status declares error constants returned by
// the report package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrUnknownFormat indicates an unsupported output format
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrRender indicates a failure to render some output
	ErrRender = errors.New("cannot render output")

	// ErrWrite indicates a failure to write a report file
	ErrWrite = errors.New("cannot write report")
)
