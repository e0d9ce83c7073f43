// Package testutil builds synthetic GRIB2 messages for tests.
package testutil

import (
	"github.com/techlier/wgpv/internal/binary"
)

// Section lengths written by Build.
const (
	IndicatorLength          = 16
	IdentificationLength     = 21
	GridDefinitionLength     = 72
	ProductForecastLength    = 34
	ProductEnsembleLength    = 37
	ProductStatisticalLength = 58
	DataRepresentationLength = 21
	BitmapLength             = 6
	EndLength                = 4
)

// Message describes a single-field message. Zero values are written as
// is; start from Default for a well-formed JMA style message.
type Message struct {
	Discipline int
	Centre     int
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int

	GridTemplate int
	Ni, Nj       int
	ScanningMode uint8

	// GridPadding octets are appended to the Grid Definition Section and
	// counted in its declared length.
	GridPadding int

	ProductTemplate    int
	Category           int
	Parameter          int
	GeneratingProcess  int
	TimeUnit           int
	ForecastTime       int
	SurfaceType        int
	SurfaceScaleFactor int
	SurfaceScaledValue int

	Reference    float32
	BinaryScale  int
	DecimalScale int
	Bits         int
	Values       []uint32

	// Bitmap adds a Bitmap Section with indicator 255.
	Bitmap bool

	// TotalLength overrides the declared message length when non-zero.
	TotalLength int64
}

// Default returns a 6 hour temperature forecast on a 3x2 grid at 850 hPa.
func Default() Message {
	return Message{
		Discipline:         0,
		Centre:             34,
		Year:               2012,
		Month:              3,
		Day:                6,
		Hour:               12,
		GridTemplate:       0,
		Ni:                 3,
		Nj:                 2,
		ProductTemplate:    0,
		Category:           0,
		Parameter:          0,
		GeneratingProcess:  2,
		TimeUnit:           1,
		ForecastTime:       6,
		SurfaceType:        100,
		SurfaceScaleFactor: -2,
		SurfaceScaledValue: 850,
		Reference:          0,
		Bits:               12,
		Values:             []uint32{1, 2, 3, 4, 5, 6},
	}
}

type writer struct {
	*binary.Writer
}

func (w writer) signed(v int64, n int) {
	if err := w.WriteSignMagnitude(v, n); err != nil {
		panic(err)
	}
}

func (w writer) unsigned(v uint64, n int) {
	if err := w.WriteUintN(v, n); err != nil {
		panic(err)
	}
}

// begin writes a section header with a placeholder length and returns
// the section's start offset.
func (w writer) begin(number int) int {
	start := w.Pos()
	w.WriteUint32(0)
	w.WriteUint8(uint8(number))
	return start
}

func (w writer) end(start int) {
	w.PutUint32(start, uint32(w.Pos()-start))
}

// Build encodes m.
func Build(m Message) []byte {
	w := writer{binary.NewWriter()}

	w.WriteString("GRIB")
	w.signed(-1, 2)
	w.unsigned(uint64(m.Discipline), 1)
	w.WriteUint8(2)
	w.WriteUint64(0)

	s := w.begin(1)
	w.signed(int64(m.Centre), 2)
	w.signed(0, 2)
	w.signed(4, 1)
	w.signed(1, 1)
	w.unsigned(1, 1)
	w.signed(int64(m.Year), 2)
	for _, v := range []int{m.Month, m.Day, m.Hour, m.Minute, m.Second} {
		w.signed(int64(v), 1)
	}
	w.unsigned(0, 1)
	w.unsigned(1, 1)
	w.end(s)

	s = w.begin(3)
	w.signed(0, 1)
	w.signed(int64(m.Ni*m.Nj), 4)
	w.signed(0, 1)
	w.signed(0, 1)
	w.unsigned(uint64(m.GridTemplate), 2)
	writeLatLon(w, m)
	w.WriteBytes(make([]byte, m.GridPadding))
	w.end(s)

	s = w.begin(4)
	w.signed(0, 2)
	w.unsigned(uint64(m.ProductTemplate), 2)
	writeProduct(w, m)
	w.end(s)

	s = w.begin(5)
	w.signed(int64(len(m.Values)), 4)
	w.unsigned(0, 2)
	w.WriteFloat32(m.Reference)
	w.signed(int64(m.BinaryScale), 2)
	w.signed(int64(m.DecimalScale), 2)
	w.signed(int64(m.Bits), 1)
	w.unsigned(0, 1)
	w.end(s)

	if m.Bitmap {
		s = w.begin(6)
		w.unsigned(255, 1)
		w.end(s)
	}

	s = w.begin(7)
	w.WriteBytes(Pack(m.Bits, m.Values...))
	w.end(s)

	w.WriteString("7777")

	total := uint64(w.Pos())
	if m.TotalLength != 0 {
		total = uint64(m.TotalLength)
	}
	w.PutUint64(8, total)
	return w.Bytes()
}

func writeLatLon(w writer, m Message) {
	w.unsigned(6, 1)
	w.signed(-1, 1)
	w.signed(-1, 4)
	w.signed(-1, 1)
	w.signed(-1, 4)
	w.signed(-1, 1)
	w.signed(-1, 4)
	w.signed(int64(m.Ni), 4)
	w.signed(int64(m.Nj), 4)
	w.signed(0, 4)
	w.signed(-1, 4)
	w.signed(47_600000, 4)
	w.signed(120_000000, 4)
	w.unsigned(0x30, 1)
	w.signed(22_400000, 4)
	w.signed(150_000000, 4)
	w.signed(62500, 4)
	w.signed(50000, 4)
	w.unsigned(uint64(m.ScanningMode), 1)
}

func writeProduct(w writer, m Message) {
	w.unsigned(uint64(m.Category), 1)
	w.unsigned(uint64(m.Parameter), 1)
	w.unsigned(uint64(m.GeneratingProcess), 1)
	w.signed(31, 1)
	w.signed(-1, 1)
	w.signed(0, 2)
	w.signed(0, 1)
	w.unsigned(uint64(m.TimeUnit), 1)
	w.signed(int64(m.ForecastTime), 4)
	w.unsigned(uint64(m.SurfaceType), 1)
	w.signed(int64(m.SurfaceScaleFactor), 1)
	w.signed(int64(m.SurfaceScaledValue), 4)
	w.signed(-1, 1)
	w.signed(-1, 1)
	w.signed(-1, 4)

	switch m.ProductTemplate {
	case 1:
		w.unsigned(3, 1)
		w.signed(5, 1)
		w.signed(51, 1)
	case 8:
		w.signed(int64(m.Year), 2)
		for _, v := range []int{m.Month, m.Day, m.Hour + m.ForecastTime, m.Minute, m.Second} {
			w.signed(int64(v), 1)
		}
		w.signed(1, 1)
		w.signed(0, 4)
		w.unsigned(1, 1)
		w.unsigned(2, 1)
		w.unsigned(uint64(m.TimeUnit), 1)
		w.signed(int64(m.ForecastTime), 4)
		w.unsigned(uint64(m.TimeUnit), 1)
		w.signed(0, 4)
	}
}

// Pack packs values MSB first into bits-wide fields, padding the last
// octet with zero bits.
func Pack(bits int, values ...uint32) []byte {
	var out []byte
	var acc uint64
	n := 0
	for _, v := range values {
		acc = acc<<uint(bits) | uint64(v)&(1<<uint(bits)-1)
		n += bits
		for n >= 8 {
			n -= 8
			out = append(out, byte(acc>>uint(n)))
		}
	}
	if n > 0 {
		out = append(out, byte(acc<<uint(8-n)))
	}
	return out
}
