package grib2

import (
	"github.com/techlier/wgpv/internal/binary"
	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/decode"
	"github.com/techlier/wgpv/internal/packing"
)

// Code is a code table value; see [Code.Known] for values missing from the
// catalog.
type Code = codes.Code

// Table identifies a GRIB2 code table.
type Table = codes.Table

// ScanningMode is the grid scanning mode flag octet.
type ScanningMode = packing.ScanningMode

// Diagnostics collects recovered decode faults.
type Diagnostics = decode.Diagnostics

// Diagnostic is one recovered decode fault.
type Diagnostic = decode.Diagnostic

// DiagKind classifies a Diagnostic.
type DiagKind = decode.DiagKind

// Diagnostic kinds.
const (
	DiagUnknownCode      = decode.DiagUnknownCode
	DiagUnknownTemplate  = decode.DiagUnknownTemplate
	DiagUnsupportedField = decode.DiagUnsupportedField
	DiagValidation       = decode.DiagValidation
	DiagUnderrun         = decode.DiagUnderrun
	DiagLengthMismatch   = decode.DiagLengthMismatch
)

// NewDiagnostics creates an empty collector.
func NewDiagnostics() *Diagnostics {
	return decode.NewDiagnostics()
}

// Buffer is the window of stream bytes the parser reads sections from.
type Buffer = binary.Buffer

// NewBuffer creates an empty buffer with the given capacity.
func NewBuffer(size int) *Buffer {
	return binary.NewBuffer(size)
}

// ValueDecoder yields the physical values of a Data Section.
type ValueDecoder = packing.Decoder
