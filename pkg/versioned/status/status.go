// Package status declares error constants returned by
// the versioned package.
package status

import (
	"github.com/oneconcern/datadesk/pkg/errors"
)

var (
	// ErrLocked indicates a rollback attempted while the administrative lock is engaged.
	// Retrying cannot succeed until the store is unlocked.
	ErrLocked = errors.New("rollback is currently disabled by administrative policy")

	// ErrReservedCheckpoint indicates an attempt to move the reserved "initial" checkpoint
	ErrReservedCheckpoint = errors.New("checkpoint name is reserved")

	// ErrEmptyCheckpoint indicates a checkpoint without a name
	ErrEmptyCheckpoint = errors.New("checkpoint name is required")

	// ErrInvariantViolation signals an internal inconsistency of the store.
	// This is a bug, never a normal error path.
	ErrInvariantViolation = errors.New("versioned store invariant violated")
)
