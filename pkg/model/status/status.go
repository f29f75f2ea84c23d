// Package status declares error constants returned by
// the model package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrUnknownColumn indicates a transformation referring to a column that the table doesn't have
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumn indicates a table built with the same column name twice
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrRowWidth indicates a row with a number of values different from the number of columns
	ErrRowWidth = errors.New("row width does not match the number of columns")

	// ErrUnknownStrategy indicates an unsupported null imputation strategy
	ErrUnknownStrategy = errors.New("unknown fill strategy")

	// ErrMissingConstant indicates a constant fill requested without a constant
	ErrMissingConstant = errors.New("constant fill strategy requires a constant value")
)
