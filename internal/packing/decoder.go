package packing

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/techlier/wgpv/internal/binary"
)

// MaxPoints is the largest grid NewDecoder accepts.
const MaxPoints = 1 << 30

var (
	// ErrInsufficientData is returned when the payload holds fewer than
	// Ni*Nj*Bits bits.
	ErrInsufficientData = errors.New("packing: not enough packed data for grid")

	// ErrInvalidGrid is returned for non-positive grid dimensions and for
	// grids larger than MaxPoints.
	ErrInvalidGrid = errors.New("packing: invalid grid dimensions")

	// ErrUnsupportedBitWidth is returned for bit widths outside 0..32.
	ErrUnsupportedBitWidth = errors.New("packing: unsupported bit width")
)

// Params are the simple packing parameters of data representation
// template 5.0.
type Params struct {
	Reference    float32
	BinaryScale  int
	DecimalScale int
	Bits         int
}

// Value converts a packed integer to its physical value.
func (p Params) Value(x uint32) float64 {
	y := float64(p.Reference) + math.Ldexp(float64(x), p.BinaryScale)
	if p.DecimalScale != 0 {
		y /= math.Pow10(p.DecimalScale)
	}
	return y
}

// Grid gives the dimensions and scan order of the packed field.
type Grid struct {
	Ni   int // points along a parallel (columns)
	Nj   int // points along a meridian (rows)
	Scan ScanningMode
}

// Points returns Ni*Nj.
func (g Grid) Points() int {
	return g.Ni * g.Nj
}

// Decoder yields the physical values of one packed field. It makes a single
// pass over the data and cannot be restarted.
type Decoder struct {
	params Params
	grid   Grid
	br     *binary.BitReader
	remain int
	value  float64
	err    error
}

// NewDecoder checks that data holds a full grid of packed values and
// returns a decoder positioned before the first one.
func NewDecoder(p Params, g Grid, data []byte) (*Decoder, error) {
	if g.Ni <= 0 || g.Nj <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Ni, g.Nj)
	}
	if p.Bits < 0 || p.Bits > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitWidth, p.Bits)
	}
	points := int64(g.Ni) * int64(g.Nj)
	if p.Bits > 0 {
		if fit := int64(len(data)) * 8 / int64(p.Bits); points > fit {
			return nil, fmt.Errorf("%w: %d points of %d bits, data holds %d",
				ErrInsufficientData, points, p.Bits, fit)
		}
	}
	if points > MaxPoints {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d points", ErrInvalidGrid, g.Ni, g.Nj, MaxPoints)
	}
	return &Decoder{
		params: p,
		grid:   g,
		br:     binary.NewBitReader(bytes.NewReader(data)),
		remain: int(points),
	}, nil
}

// Next advances to the next value. It returns false when the grid is
// exhausted or reading failed; check Err.
func (d *Decoder) Next() bool {
	if d.err != nil || d.remain == 0 {
		return false
	}
	x, err := d.br.Read(d.params.Bits)
	if err != nil {
		d.err = err
		return false
	}
	d.remain--
	d.value = d.params.Value(x)
	return true
}

// Value returns the value Next advanced to.
func (d *Decoder) Value() float64 {
	return d.value
}

// Err returns the first read error.
func (d *Decoder) Err() error {
	return d.err
}

// Remaining returns the number of values not yet read.
func (d *Decoder) Remaining() int {
	return d.remain
}

// Values reads all remaining values in stream order.
func (d *Decoder) Values() ([]float64, error) {
	out := make([]float64, 0, d.remain)
	for d.Next() {
		out = append(out, d.value)
	}
	return out, d.err
}

// Matrix reads all values into an Nj x Ni matrix following the grid's
// scanning mode. Row j of the result holds the j-th scanned row. It fails
// once Next has been called.
func (d *Decoder) Matrix() (*mat.Dense, error) {
	ni, nj := d.grid.Ni, d.grid.Nj
	scan := d.grid.Scan
	if d.remain != ni*nj {
		return nil, fmt.Errorf("%w: %d of %d values already read",
			ErrInsufficientData, ni*nj-d.remain, ni*nj)
	}

	if scan.SameDirection() && scan.IConsecutive() {
		values, err := d.Values()
		if err != nil {
			return nil, err
		}
		if len(values) != ni*nj {
			return nil, ErrInsufficientData
		}
		return mat.NewDense(nj, ni, values), nil
	}

	m := mat.NewDense(nj, ni, nil)
	alternate := !scan.SameDirection()
	if scan.IConsecutive() {
		for j := 0; j < nj; j++ {
			reverse := alternate && j%2 == 1
			for k := 0; k < ni; k++ {
				i := k
				if reverse {
					i = ni - 1 - k
				}
				if !d.Next() {
					return nil, d.exhausted()
				}
				m.Set(j, i, d.value)
			}
		}
		return m, nil
	}

	for i := 0; i < ni; i++ {
		reverse := alternate && i%2 == 1
		for k := 0; k < nj; k++ {
			j := k
			if reverse {
				j = nj - 1 - k
			}
			if !d.Next() {
				return nil, d.exhausted()
			}
			m.Set(j, i, d.value)
		}
	}
	return m, nil
}

func (d *Decoder) exhausted() error {
	if d.err != nil {
		return d.err
	}
	return ErrInsufficientData
}
