package grib2

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/techlier/wgpv/internal/codes"
	"github.com/techlier/wgpv/internal/packing"
)

// Values returns a decoder for the latest Data Section of h, using the
// latest Grid Definition and Data Representation Sections.
func Values(h Holder) (*ValueDecoder, error) {
	gds := h.GridDefinition()
	drs := h.DataRepresentation()
	data := h.Data()
	switch {
	case gds == nil:
		return nil, fmt.Errorf("%w: grid definition", ErrMissingSection)
	case drs == nil:
		return nil, fmt.Errorf("%w: data representation", ErrMissingSection)
	case data == nil:
		return nil, fmt.Errorf("%w: data", ErrMissingSection)
	case gds.Grid == nil:
		return nil, fmt.Errorf("%w: grid template %d", ErrUnsupportedTemplate, gds.TemplateNumber.Value)
	case drs.Packing == nil:
		return nil, fmt.Errorf("%w: data template %d", ErrUnsupportedTemplate, drs.TemplateNumber.Value)
	}
	if bm := h.Bitmap(); bm != nil && !bm.Indicator.Is(codes.BitmapNone) {
		return nil, fmt.Errorf("%w: bitmap indicator %d", ErrUnsupportedTemplate, bm.Indicator.Value)
	}

	pk := drs.Packing
	params := packing.Params{
		Reference:    pk.ReferenceValue,
		BinaryScale:  pk.BinaryScale,
		DecimalScale: pk.DecimalScale,
		Bits:         pk.Bits,
	}
	grid := packing.Grid{Ni: gds.Grid.Ni, Nj: gds.Grid.Nj, Scan: gds.Grid.ScanningMode}
	return packing.NewDecoder(params, grid, data.Data)
}

// Matrix decodes the latest Data Section of h into an Nj x Ni matrix.
func Matrix(h Holder) (*mat.Dense, error) {
	d, err := Values(h)
	if err != nil {
		return nil, err
	}
	return d.Matrix()
}
