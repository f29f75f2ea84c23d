// Package status declares error constants returned by
// the pipeline package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrScript indicates a script that cannot be read or decoded
	ErrScript = errors.New("invalid pipeline script")

	// ErrUnknownOp indicates a step with an unsupported operation
	ErrUnknownOp = errors.New("unknown operation")

	// ErrMissingArgument indicates a step lacking a required argument
	ErrMissingArgument = errors.New("missing argument")

	// ErrStep indicates a step that failed while running a pipeline
	ErrStep = errors.New("pipeline step failed")

	// ErrNoSink indicates a step needing an output which was not configured
	ErrNoSink = errors.New("no output configured for this step")
)
