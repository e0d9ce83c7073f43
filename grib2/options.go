package grib2

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/techlier/wgpv/internal/observability"
)

const (
	// DefaultBufferSize is the initial stream buffer size used by Parse.
	DefaultBufferSize = 1 << 20

	// DefaultMaxSectionSize bounds the declared length of a single
	// section.
	DefaultMaxSectionSize = 1 << 28
)

// Option configures a Parser.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	syntaxCheck bool
	bufferSize  int
	maxSection  int
	metrics     *observability.Metrics
	clock       clockwork.Clock
	diagnostics *Diagnostics
}

func defaultOptions() *options {
	return &options{
		logger:      slog.Default(),
		syntaxCheck: true,
		bufferSize:  DefaultBufferSize,
		maxSection:  DefaultMaxSectionSize,
		clock:       clockwork.NewRealClock(),
	}
}

// WithLogger sets the logger for recovered faults and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSyntaxChecking turns field offset assertions and advisory whitelist
// checks on or off. It is on by default.
func WithSyntaxChecking(enabled bool) Option {
	return func(o *options) {
		o.syntaxCheck = enabled
	}
}

// WithBufferSize sets the initial buffer size used by Parse. The buffer
// grows when a section does not fit.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithMaxSectionSize sets the largest section length accepted. Longer
// declared lengths fail with ErrInvalidSectionLength before any buffering.
func WithMaxSectionSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxSection = size
		}
	}
}

// WithMetrics records decode metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock sets the clock used to time message decodes.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDiagnostics makes the parser record into d instead of a collector of
// its own.
func WithDiagnostics(d *Diagnostics) Option {
	return func(o *options) {
		o.diagnostics = d
	}
}
