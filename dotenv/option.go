package dotenv

import "github.com/ardnew/dotenvy/log"

// Option configures parsing and loading.
type Option func(*options)

type options struct {
	logger log.Logger
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger attaches a logger that receives trace and debug records about
// parsing and loading. By default nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}
