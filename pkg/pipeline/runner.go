package pipeline

import (
	"context"
	"fmt"

	"github.com/oneconcern/datadesk/pkg/model"
	"github.com/oneconcern/datadesk/pkg/pipeline/status"
	"github.com/oneconcern/datadesk/pkg/session"
	"github.com/oneconcern/datadesk/pkg/versioned"

	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Reporter renders the history of a session
type Reporter interface {
	Status(versioned.Status) error
	Log([]versioned.VersionInfo) error
}

// Saver writes a dataset
type Saver interface {
	Save(pth string, tbl *model.Table) error
}

// Result of a step
type Result struct {
	Step     Step
	Change   *session.Change
	Restored *versioned.Restored[*model.Table]
	Err      error
}

// Runner executes steps against a session
type Runner struct {
	s        *session.Session
	l        *zap.Logger
	tr       opentracing.Tracer
	reporter Reporter
	saver    Saver
}

// Option to the runner
type Option func(*Runner)

// Logger sets a logger for this runner
func Logger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.l = logger
		}
	}
}

// Tracer sets an opentracing tracer. Each run is traced as a parent span of the session operations.
func Tracer(tr opentracing.Tracer) Option {
	return func(r *Runner) {
		if tr != nil {
			r.tr = tr
		}
	}
}

// WithReporter sets the output of status and log steps
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

// WithSaver sets the output of save steps
func WithSaver(saver Saver) Option {
	return func(r *Runner) {
		r.saver = saver
	}
}

// New runner for a session
func New(s *session.Session, opts ...Option) *Runner {
	r := &Runner{
		s:  s,
		l:  zap.NewNop(),
		tr: opentracing.NoopTracer{},
	}
	for _, apply := range opts {
		apply(r)
	}
	r.l = r.l.With(zap.String("session", s.ID()))
	return r
}

// Run all steps in order.
//
// Soft rollback outcomes are logged and do not stop the run. A failed step stops it,
// unless the step is flagged with ContinueOnError.
// Results are returned for all steps attempted, including the failed one.
func (r *Runner) Run(ctx context.Context, steps []Step) ([]Result, error) {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, r.tr, "pipeline")
	defer span.Finish()
	span.SetTag("steps", len(steps))

	results := make([]Result, 0, len(steps))
	for i, step := range steps {
		res := r.Exec(ctx, step)
		results = append(results, res)
		if res.Err == nil {
			continue
		}

		if step.ContinueOnError {
			r.l.Warn("step failed: continuing", zap.Int("step", i+1), zap.Stringer("op", step), zap.Error(res.Err))
			continue
		}
		span.SetTag("error", true)
		return results, status.ErrStep.WrapMessage(fmt.Sprintf("step %d (%s)", i+1, step)).Wrap(res.Err)
	}
	return results, nil
}

// Exec runs a single step
func (r *Runner) Exec(ctx context.Context, step Step) (res Result) {
	res.Step = step
	if res.Err = step.Validate(); res.Err != nil {
		return res
	}

	switch step.Op {
	case OpFill:
		res.Change, res.Err = change(r.s.FillNulls(ctx, step.strategy(), step.Constant))
	case OpClean:
		res.Change, res.Err = change(r.s.Clean(ctx))
	case OpReplace:
		res.Change, res.Err = change(r.s.Replace(ctx, step.Column, step.Target, step.Replacement))
	case OpCheckpoint:
		res.Err = r.s.Checkpoint(ctx, step.Name)
	case OpRollback:
		var restored versioned.Restored[*model.Table]
		if step.Name == "" {
			restored, res.Err = r.s.Rollback(ctx)
		} else {
			restored, res.Err = r.s.RollbackTo(ctx, step.Name)
		}
		if res.Err == nil {
			res.Restored = &restored
			r.logRollback(restored)
		}
	case OpLock:
		r.s.SetLock(ctx, true)
	case OpUnlock:
		r.s.SetLock(ctx, false)
	case OpStatus:
		if r.reporter == nil {
			res.Err = status.ErrNoSink.WrapMessage(string(step.Op))
			break
		}
		res.Err = r.reporter.Status(r.s.Status())
	case OpLog:
		if r.reporter == nil {
			res.Err = status.ErrNoSink.WrapMessage(string(step.Op))
			break
		}
		res.Err = r.reporter.Log(r.s.Log())
	case OpSave:
		if r.saver == nil {
			res.Err = status.ErrNoSink.WrapMessage(string(step.Op))
			break
		}
		res.Err = r.saver.Save(step.Path, r.s.Data())
	}

	if res.Change != nil {
		r.l.Info("step applied",
			zap.String("message", res.Change.Message),
			zap.Int("version", res.Change.Version),
			zap.Int("affected", res.Change.Affected),
		)
	}
	return res
}

func (r *Runner) logRollback(restored versioned.Restored[*model.Table]) {
	switch restored.Outcome {
	case versioned.CheckpointNotFound:
		r.l.Warn("rollback skipped: checkpoint not found", zap.String("checkpoint", restored.Checkpoint))
	case versioned.AlreadyAtInitial:
		r.l.Info("rollback skipped: already at initial state")
	default:
		r.l.Info("rolled back", zap.Int("version", restored.Index), zap.String("checkpoint", restored.Checkpoint))
	}
}

func change(c session.Change, err error) (*session.Change, error) {
	if err != nil {
		return nil, err
	}
	return &c, nil
}
