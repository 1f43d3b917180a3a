package lang

import "github.com/ardnew/fieldvar/log"

// Option configures compilation.
type Option func(options) options

type options struct {
	logger log.Logger
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		o = opt(o)
	}

	return o
}

// WithLogger sets the logger used for compile tracing.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}
