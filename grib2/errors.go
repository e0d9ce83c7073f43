// Package grib2 decodes GRIB2 messages section by section and notifies
// observers as each section completes.
package grib2

import "errors"

// Fatal decode errors. Anything else that goes wrong while decoding a
// message is recorded as a [Diagnostic] and decoding continues.
var (
	ErrNotGRIB2             = errors.New("not a GRIB2 message")
	ErrInvalidSectionLength = errors.New("invalid section length")
	ErrUnknownSection       = errors.New("unknown section number")
	ErrSectionOverrun       = errors.New("section decode ran past its declared length")
	ErrTruncated            = errors.New("unexpected end of input")
)

var (
	// ErrMissingSection is returned when a section needed to interpret
	// another has not been decoded in the current message.
	ErrMissingSection = errors.New("required section not decoded")

	// ErrUnsupportedTemplate is returned when a section's template or
	// bitmap cannot be interpreted.
	ErrUnsupportedTemplate = errors.New("unsupported template")

	// ErrUnsupportedTimeUnit is returned by ForecastTime.
	ErrUnsupportedTimeUnit = errors.New("unsupported forecast time unit")
)
