// Package decode implements the schema-driven field decoder for GRIB2
// containers.
//
// A [Decoder] walks the fields of a [schema.Shape] in order and produces a
// [Container]. Integers use the GRIB2 sign-magnitude convention, codes are
// resolved against package codes, and nested templates are dispatched by
// the template number decoded earlier in the same container.
//
// Faults that should not stop a decode (unknown codes and templates,
// unsupported field kinds, whitelist mismatches) are recorded in a
// [Diagnostics] collector owned by the caller. Fatal faults are returned as
// errors.
package decode
