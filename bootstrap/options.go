package bootstrap

import (
	"io"

	"github.com/kbukum/prodcon/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger     *logger.Logger
	summaryOut io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithSummaryWriter prints the startup summary tree to w.
func WithSummaryWriter(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}
