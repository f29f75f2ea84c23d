package session

import (
	"github.com/oneconcern/datadesk/pkg/metrics"

	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

const (
	defaultWarnVersions = 50
	defaultWarnBytes    = 512 * 1024 * 1024
)

// Option to a session
type Option func(*Session)

// Logger sets a logger for this session and its store
func Logger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.l = logger
		}
	}
}

// Tracer sets an opentracing tracer to trace session operations
func Tracer(tr opentracing.Tracer) Option {
	return func(s *Session) {
		if tr != nil {
			s.tr = tr
		}
	}
}

// Metrics sets the metrics collected by this session
func Metrics(m *metrics.M) Option {
	return func(s *Session) {
		if m != nil {
			s.m = m
		}
	}
}

// Locked starts the session with rollbacks locked
func Locked(locked bool) Option {
	return func(s *Session) {
		s.locked = locked
	}
}

// WarnVersions sets the number of versions beyond which the session warns about memory usage.
// Zero disables the warning.
func WarnVersions(n int) Option {
	return func(s *Session) {
		s.warnVersions = n
	}
}

// WarnBytes sets the history size beyond which the session warns about memory usage.
// Zero disables the warning.
func WarnBytes(n int64) Option {
	return func(s *Session) {
		s.warnBytes = n
	}
}
