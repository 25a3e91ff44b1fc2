package inliner

import (
	"io"
	"log/slog"
)

type options struct {
	tableAttributes bool
	logger          *slog.Logger
}

// Option configures Inline.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		tableAttributes: true,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithTableAttributes mirrors width, height, background-color, text-align
// and vertical-align of table elements into the matching HTML attributes
// (width, height, bgcolor, align, valign) when the attribute is absent.
// Enabled by default.
func WithTableAttributes(enabled bool) Option {
	return func(o *options) {
		o.tableAttributes = enabled
	}
}

// WithLogger sets the logger used to report dropped rules. If nil, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
