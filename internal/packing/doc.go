// Package packing decodes GRIB2 simple-packed grid point data.
//
// Each packed value X is an unsigned integer of a fixed bit width. The
// physical value is
//
//	Y = (R + X * 2^E) / 10^D
//
// where R is the reference value and E and D are the binary and decimal
// scale factors. Values come out of a [Decoder] in stream order, or as a
// matrix laid out according to the grid's [ScanningMode].
package packing
