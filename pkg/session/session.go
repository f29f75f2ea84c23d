// Package session applies transformations to a working dataset and keeps its history.
//
// A session owns exactly one versioned store. Every transformation reads the current
// version of the dataset, builds a new table and commits it. Checkpoints, rollbacks
// and the rollback lock are delegated to the store.
package session

import (
	"context"
	"fmt"

	"github.com/oneconcern/datadesk/pkg/errors"
	"github.com/oneconcern/datadesk/pkg/metrics"
	"github.com/oneconcern/datadesk/pkg/model"
	"github.com/oneconcern/datadesk/pkg/session/status"
	"github.com/oneconcern/datadesk/pkg/versioned"
	vstatus "github.com/oneconcern/datadesk/pkg/versioned/status"

	"github.com/docker/go-units"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// Transformation builds a new version of a dataset. It receives a copy of the current version.
//
// The returned count tells how many values or rows were affected.
type Transformation func(*model.Table) (*model.Table, int, error)

// Change describes a committed transformation
type Change struct {
	Version  int    `json:"version" yaml:"version"`
	Message  string `json:"message" yaml:"message"`
	Affected int    `json:"affected" yaml:"affected"`
}

// Session is an analysis session over a working dataset.
//
// A session is not safe for concurrent use.
type Session struct {
	id    string
	store *versioned.Store[*model.Table]

	l      *zap.Logger
	tr     opentracing.Tracer
	m      *metrics.M
	locked bool

	warnVersions int
	warnBytes    int64
	warned       bool
}

// New starts a session on an initial dataset
func New(initial *model.Table, opts ...Option) (*Session, error) {
	if initial == nil {
		return nil, status.ErrNoData
	}

	id, err := ksuid.NewRandom()
	if err != nil {
		return nil, status.ErrTraceID.Wrap(err)
	}

	s := &Session{
		id:           id.String(),
		l:            zap.NewNop(),
		tr:           opentracing.NoopTracer{},
		m:            metrics.New(),
		warnVersions: defaultWarnVersions,
		warnBytes:    defaultWarnBytes,
	}
	for _, apply := range opts {
		apply(s)
	}
	s.l = s.l.With(zap.String("session", s.id))

	s.store = versioned.New(initial,
		versioned.Logger(s.l),
		versioned.Locked(s.locked),
	)
	s.recordHistory()

	s.l.Info("session started",
		zap.Int("rows", initial.NumRows()),
		zap.Int("columns", initial.NumColumns()),
		zap.Bool("locked", s.locked),
	)
	return s, nil
}

// ID returns the trace ID of the session
func (s *Session) ID() string {
	return s.id
}

// Data returns a copy of the current version of the dataset
func (s *Session) Data() *model.Table {
	return s.store.Current()
}

// Apply runs a transformation on the current dataset and commits the result.
// Nothing is committed when the transformation fails.
func (s *Session) Apply(ctx context.Context, message string, transform Transformation) (Change, error) {
	return s.apply(ctx, func(int) string { return message }, transform)
}

func (s *Session) apply(ctx context.Context, message func(int) string, transform Transformation) (change Change, err error) {
	traced(ctx, s.tr, "apply", func(span opentracing.Span) {
		next, affected, terr := transform(s.store.Current())
		if terr != nil {
			err = status.ErrTransform.WrapWithLog(s.l, terr)
			span.SetTag("error", true)
			return
		}
		if next == nil {
			err = status.ErrTransform.WrapMessage("transformation returned no dataset")
			span.SetTag("error", true)
			return
		}

		msg := message(affected)
		change = Change{
			Version:  s.store.Commit(next, msg),
			Message:  msg,
			Affected: affected,
		}
		span.SetTag("message", msg)
		span.SetTag("version", change.Version)
		s.m.Commits.Inc()
		s.recordHistory()
	})
	return change, err
}

// FillNulls imputes null values across the entire dataset
func (s *Session) FillNulls(ctx context.Context, strategy model.FillStrategy, constant *string) (Change, error) {
	return s.Apply(ctx, fmt.Sprintf("Global Null Imputation (%s)", strategy), func(tbl *model.Table) (*model.Table, int, error) {
		return tbl.FillNulls(strategy, constant)
	})
}

// Clean drops the rows holding null values, then duplicate rows
func (s *Session) Clean(ctx context.Context) (Change, error) {
	return s.apply(ctx, func(removed int) string { return fmt.Sprintf("Cleaned %d rows", removed) }, func(tbl *model.Table) (*model.Table, int, error) {
		cleaned, removed := tbl.Clean()
		return cleaned, removed, nil
	})
}

// Replace replaces the values of a column equal to target
func (s *Session) Replace(ctx context.Context, column, target, replacement string) (Change, error) {
	return s.Apply(ctx, fmt.Sprintf("Replaced %s -> %s in %s", target, replacement, column), func(tbl *model.Table) (*model.Table, int, error) {
		return tbl.Replace(column, target, replacement)
	})
}

// Checkpoint gives a name to the current version
func (s *Session) Checkpoint(ctx context.Context, name string) (err error) {
	traced(ctx, s.tr, "checkpoint", func(span opentracing.Span) {
		span.SetTag("checkpoint", name)
		if err = s.store.Checkpoint(name); err != nil {
			span.SetTag("error", true)
			return
		}
		s.m.Checkpoints.Inc()
	})
	return err
}

// Rollback moves back one version
func (s *Session) Rollback(ctx context.Context) (restored versioned.Restored[*model.Table], err error) {
	traced(ctx, s.tr, "rollback", func(span opentracing.Span) {
		restored, err = s.store.Rollback()
		s.observeRollback(span, restored, err)
	})
	return restored, err
}

// RollbackTo moves back to a checkpoint.
//
// An unknown checkpoint is not an error: the outcome of the returned value says so.
func (s *Session) RollbackTo(ctx context.Context, name string) (restored versioned.Restored[*model.Table], err error) {
	traced(ctx, s.tr, "rollback", func(span opentracing.Span) {
		span.SetTag("checkpoint", name)
		restored, err = s.store.RollbackTo(name)
		s.observeRollback(span, restored, err)
	})
	return restored, err
}

func (s *Session) observeRollback(span opentracing.Span, restored versioned.Restored[*model.Table], err error) {
	if errors.Is(err, vstatus.ErrLocked) {
		span.SetTag("error", true)
		s.m.Rollback("locked")
		return
	}
	span.SetTag("version", restored.Index)
	span.SetTag("outcome", restored.Outcome.String())
	s.m.Rollback(restored.Outcome.String())
}

// SetLock engages or releases the administrative lock on rollbacks
func (s *Session) SetLock(ctx context.Context, locked bool) {
	traced(ctx, s.tr, "lock", func(span opentracing.Span) {
		span.SetTag("locked", locked)
		s.store.SetLock(locked)
	})
}

// Status summarizes the history of the session
func (s *Session) Status() versioned.Status {
	return s.store.Status()
}

// Log describes all versions of the dataset, oldest first
func (s *Session) Log() []versioned.VersionInfo {
	return s.store.Log()
}

func (s *Session) recordHistory() {
	st := s.store.Status()
	s.m.History(st.TotalVersions, st.HistoryBytes)

	tooMany := s.warnVersions > 0 && st.TotalVersions > s.warnVersions
	tooBig := s.warnBytes > 0 && st.HistoryBytes > s.warnBytes
	if !tooMany && !tooBig {
		s.warned = false
		return
	}
	if s.warned {
		return
	}
	s.warned = true
	s.l.Warn("history is growing: every version of the dataset is kept in memory",
		zap.Int("versions", st.TotalVersions),
		zap.String("history size", units.HumanSize(float64(st.HistoryBytes))),
		zap.Int("max versions", s.warnVersions),
		zap.String("max size", units.HumanSize(float64(s.warnBytes))),
	)
}
