package versioned

import (
	"time"

	"go.uber.org/zap"
)

// Option is a functor to build a store with some options
type Option func(*options)

type options struct {
	l      *zap.Logger
	now    func() time.Time
	locked bool
}

func defaultOptions() *options {
	return &options{
		l:   zap.NewNop(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Logger sets a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.l = logger
		}
	}
}

// Clock sets the time source used to timestamp versions
func Clock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Locked creates the store with rollbacks already locked
func Locked(locked bool) Option {
	return func(o *options) {
		o.locked = locked
	}
}
