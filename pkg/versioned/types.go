package versioned

import "time"

// Snapshot is the only requirement on the values kept by a Store:
// they must be able to produce an independent copy of themselves.
type Snapshot[S any] interface {
	Copy() S
}

// Sizer is an optional interface for snapshots able to estimate their memory footprint, in bytes.
type Sizer interface {
	Size() int64
}

// Outcome tells what a rollback did
type Outcome int

const (
	// RolledBack indicates that the current version moved
	RolledBack Outcome = iota

	// AlreadyAtInitial indicates a one-step rollback attempted from version 0: nothing changed
	AlreadyAtInitial

	// CheckpointNotFound indicates a rollback to an unknown checkpoint: nothing changed
	CheckpointNotFound
)

func (o Outcome) String() string {
	switch o {
	case RolledBack:
		return "rolled back"
	case AlreadyAtInitial:
		return "already at initial state"
	case CheckpointNotFound:
		return "checkpoint not found"
	default:
		return "unknown"
	}
}

// Restored is the result of a rollback: a copy of the now current snapshot, with
// its version index and what happened.
type Restored[S any] struct {
	Snapshot   S
	Index      int
	Outcome    Outcome
	Checkpoint string // the requested checkpoint, if any
}

// Status summarizes the state of a store
type Status struct {
	CurrentIndex    int      `json:"currentIndex" yaml:"currentIndex"`
	TotalVersions   int      `json:"totalVersions" yaml:"totalVersions"`
	Checkpoints     []string `json:"checkpointNames" yaml:"checkpointNames"`
	RollbackAllowed bool     `json:"rollbackAllowed" yaml:"rollbackAllowed"`

	// HistoryBytes estimates the memory held by all versions. It is only known when snapshots implement Sizer.
	HistoryBytes int64 `json:"historyBytes,omitempty" yaml:"historyBytes,omitempty"`
}

// VersionInfo describes a version, without its snapshot
type VersionInfo struct {
	Index       int       `json:"index" yaml:"index"`
	Message     string    `json:"message" yaml:"message"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Current     bool      `json:"current,omitempty" yaml:"current,omitempty"`
	Checkpoints []string  `json:"checkpoints,omitempty" yaml:"checkpoints,omitempty"`
	Size        int64     `json:"size,omitempty" yaml:"size,omitempty"`
}
