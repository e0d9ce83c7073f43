// Package schema is the static registry of GRIB2 container layouts.
//
// Each section and template is a [Shape]: an ordered list of [Field]
// descriptors giving the 1-based octet offset, octet length (-1 for the
// rest of the container), the semantic [Kind] and an optional advisory
// whitelist. Shapes are plain data; decoding them is the job of package
// decode.
//
// Sections are looked up by section number with [Section]. Templates are
// looked up by family and template number with [Template]; several product
// templates share the fields of template 4.0 and append their own.
package schema
