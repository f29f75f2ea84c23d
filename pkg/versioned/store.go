package versioned

import (
	"fmt"
	"sort"
	"time"

	"github.com/oneconcern/datadesk/pkg/versioned/status"

	"go.uber.org/zap"
)

const (
	// InitialCheckpoint is the reserved checkpoint pointing to the version the store was created with
	InitialCheckpoint = "initial"

	initialMessage = "initial"
)

// Store keeps the full history of a dataset as an ordered list of snapshots.
//
// The store owns every version it holds: snapshots are copied on the way in (Commit)
// and on the way out (Current, Rollback, RollbackTo).
//
// A Store is not safe for concurrent use: it is meant to have a single owner, such as an analysis session.
type Store[S Snapshot[S]] struct {
	history     []version[S]
	current     int
	checkpoints map[string]int
	locked      bool

	l   *zap.Logger
	now func() time.Time
}

type version[S any] struct {
	index     int
	message   string
	timestamp time.Time
	size      int64
	data      S
}

// New builds a versioned store, with a copy of the initial snapshot as version 0
func New[S Snapshot[S]](initial S, opts ...Option) *Store[S] {
	o := defaultOptions()
	for _, apply := range opts {
		apply(o)
	}

	s := &Store[S]{
		checkpoints: map[string]int{InitialCheckpoint: 0},
		locked:      o.locked,
		l:           o.l,
		now:         o.now,
	}
	s.history = []version[S]{s.newVersion(initial, initialMessage, 0)}
	s.mustBeConsistent()

	return s
}

func (s *Store[S]) newVersion(snapshot S, message string, index int) version[S] {
	v := version[S]{
		index:     index,
		message:   message,
		timestamp: s.now(),
		data:      snapshot.Copy(),
	}
	if sz, ok := any(v.data).(Sizer); ok {
		v.size = sz.Size()
	}
	return v
}

// Commit saves a new version of the dataset and makes it current.
//
// All versions after the current one are discarded, so a rollback followed by a commit
// permanently forecloses the abandoned versions. Checkpoints pointing to discarded versions are dropped.
func (s *Store[S]) Commit(snapshot S, message string) int {
	s.discardForward()

	index := len(s.history)
	s.history = append(s.history, s.newVersion(snapshot, message, index))
	s.current = index
	s.mustBeInRange()

	s.l.Info("state committed", zap.String("message", message), zap.Int("version", index))
	return index
}

func (s *Store[S]) discardForward() {
	last := len(s.history) - 1
	if s.current == last {
		return
	}

	for i := s.current + 1; i <= last; i++ {
		s.history[i] = version[S]{} // release the snapshot
	}
	s.history = s.history[:s.current+1]

	var dropped []string
	for name, index := range s.checkpoints {
		if index > s.current {
			delete(s.checkpoints, name)
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)
	s.mustBeConsistent()

	s.l.Info("discarded forward history",
		zap.Int("from version", s.current+1),
		zap.Int("to version", last),
		zap.Strings("dropped checkpoints", dropped),
	)
}

// Checkpoint records a name for the current version. Reusing a name moves it.
//
// The reserved "initial" checkpoint cannot be moved.
func (s *Store[S]) Checkpoint(name string) error {
	if name == "" {
		return status.ErrEmptyCheckpoint
	}
	if name == InitialCheckpoint {
		return status.ErrReservedCheckpoint.WrapMessage(name)
	}

	s.checkpoints[name] = s.current
	s.l.Info("checkpoint created", zap.String("checkpoint", name), zap.Int("version", s.current))
	return nil
}

// Rollback moves one version back and returns a copy of the snapshot at the new position.
//
// Rolling back from the initial version is a no-op, reported as AlreadyAtInitial.
// It fails with status.ErrLocked when rollbacks are locked.
func (s *Store[S]) Rollback() (Restored[S], error) {
	if s.locked {
		s.l.Warn("rollback refused: store is locked", zap.Int("version", s.current))
		return Restored[S]{Index: s.current}, status.ErrLocked
	}

	outcome := RolledBack
	if s.current > 0 {
		s.current--
		s.l.Info("rolled back one step", zap.Int("version", s.current))
	} else {
		outcome = AlreadyAtInitial
		s.l.Info("already at initial state: cannot rollback further")
	}
	s.mustBeInRange()

	return s.restored(outcome, ""), nil
}

// RollbackTo moves to the version recorded by a checkpoint and returns a copy of its snapshot.
//
// An unknown checkpoint name leaves the store unchanged and is reported as CheckpointNotFound:
// this is not an error, and the current snapshot is returned.
// It fails with status.ErrLocked when rollbacks are locked.
func (s *Store[S]) RollbackTo(name string) (Restored[S], error) {
	if s.locked {
		s.l.Warn("rollback refused: store is locked", zap.String("checkpoint", name), zap.Int("version", s.current))
		return Restored[S]{Index: s.current, Checkpoint: name}, status.ErrLocked
	}

	index, ok := s.checkpoints[name]
	if !ok {
		s.l.Warn("checkpoint not found: no action taken", zap.String("checkpoint", name))
		return s.restored(CheckpointNotFound, name), nil
	}

	s.current = index
	s.mustBeInRange()
	s.l.Info("rolled back to checkpoint", zap.String("checkpoint", name), zap.Int("version", index))

	return s.restored(RolledBack, name), nil
}

func (s *Store[S]) restored(outcome Outcome, checkpoint string) Restored[S] {
	return Restored[S]{
		Snapshot:   s.history[s.current].data.Copy(),
		Index:      s.current,
		Outcome:    outcome,
		Checkpoint: checkpoint,
	}
}

// SetLock engages or releases the administrative lock on rollbacks
func (s *Store[S]) SetLock(locked bool) {
	s.locked = locked
	if locked {
		s.l.Info("data rollback system is now LOCKED")
	} else {
		s.l.Info("data rollback system is now UNLOCKED")
	}
}

// Locked tells if rollbacks are currently locked
func (s *Store[S]) Locked() bool {
	return s.locked
}

// Current returns a copy of the current snapshot
func (s *Store[S]) Current() S {
	return s.history[s.current].data.Copy()
}

// Status summarizes the state of the store
func (s *Store[S]) Status() Status {
	var size int64
	for _, v := range s.history {
		size += v.size
	}

	return Status{
		CurrentIndex:    s.current,
		TotalVersions:   len(s.history),
		Checkpoints:     s.checkpointNames(),
		RollbackAllowed: !s.locked,
		HistoryBytes:    size,
	}
}

func (s *Store[S]) checkpointNames() []string {
	names := make([]string, 0, len(s.checkpoints))
	for name := range s.checkpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checkpoints returns a copy of the checkpoint table
func (s *Store[S]) Checkpoints() map[string]int {
	res := make(map[string]int, len(s.checkpoints))
	for name, index := range s.checkpoints {
		res[name] = index
	}
	return res
}

// Log describes all versions, oldest first
func (s *Store[S]) Log() []VersionInfo {
	byIndex := make(map[int][]string, len(s.checkpoints))
	for _, name := range s.checkpointNames() {
		index := s.checkpoints[name]
		byIndex[index] = append(byIndex[index], name)
	}

	infos := make([]VersionInfo, 0, len(s.history))
	for _, v := range s.history {
		infos = append(infos, VersionInfo{
			Index:       v.index,
			Message:     v.message,
			Timestamp:   v.timestamp,
			Current:     v.index == s.current,
			Checkpoints: byIndex[v.index],
			Size:        v.size,
		})
	}
	return infos
}

func (s *Store[S]) violation(format string, args ...interface{}) {
	err := status.ErrInvariantViolation.WrapMessage(fmt.Sprintf(format, args...))
	s.l.Error("internal error", zap.Error(err))
	panic(err)
}

// mustBeInRange panics whenever the current version or the last version are out of place.
//
// It runs in constant time, after every commit and rollback.
func (s *Store[S]) mustBeInRange() {
	last := len(s.history) - 1
	if last < 0 {
		s.violation("empty history")
	}
	if s.current < 0 || s.current > last {
		s.violation("current version %d out of range [0, %d)", s.current, len(s.history))
	}
	if s.history[last].index != last {
		s.violation("version at position %d has index %d", last, s.history[last].index)
	}
	if index, ok := s.checkpoints[InitialCheckpoint]; !ok || index != 0 {
		s.violation("checkpoint %q must point to version 0", InitialCheckpoint)
	}
}

// mustBeConsistent panics whenever the internal state breaks the store invariants.
//
// It walks the whole history: it runs when the store is created and when history is truncated.
func (s *Store[S]) mustBeConsistent() {
	s.mustBeInRange()
	for i, v := range s.history {
		if v.index != i {
			s.violation("version at position %d has index %d", i, v.index)
		}
	}
	for name, index := range s.checkpoints {
		if index < 0 || index >= len(s.history) {
			s.violation("checkpoint %q points to unknown version %d", name, index)
		}
	}
}
