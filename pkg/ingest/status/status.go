// Package status declares error constants returned by
// the ingest package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrNotFound indicates that the dataset file does not exist
	ErrNotFound = errors.New("data file not found")

	// ErrUnsupportedFormat indicates a file extension that we do not know how to read or write
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrDecode indicates a dataset that could not be decoded
	ErrDecode = errors.New("encoding or format error")

	// ErrEncode indicates a dataset that could not be encoded
	ErrEncode = errors.New("failed to encode dataset")

	// ErrWrite indicates a failure when writing a dataset
	ErrWrite = errors.New("failed to write dataset")
)
