package ecs

import "log/slog"

// Option configures a Registry, EntityManager or SystemManager.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the structured logger used for diagnostics.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
