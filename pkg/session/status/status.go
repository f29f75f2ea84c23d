// Package status declares error constants returned by
// the session package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrNoData indicates a session started without a dataset
	ErrNoData = errors.New("a dataset is required to start a session")

	// ErrTraceID indicates that we failed to generate a session trace ID.
	// An error here is telling of an issue with the random generator.
	ErrTraceID = errors.New("failed to generate session trace ID")

	// ErrTransform indicates a transformation that failed: nothing was committed
	ErrTransform = errors.New("transformation failed")
)
