package binary

import (
	"encoding/binary"
	"math"
)

// Writer appends big-endian GRIB2 fields to an in-memory byte slice.
// It is used to build messages in tests and tools.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Pos returns the current write position, which is also the length so far.
func (w *Writer) Pos() int {
	return len(w.buf)
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends data.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteString appends the raw bytes of s.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// WriteUintN writes v as an n byte unsigned integer (1 to 8).
func (w *Writer) WriteUintN(v uint64, n int) error {
	if n < 1 || n > 8 {
		return ErrInvalidWidth
	}
	for i := n - 1; i >= 0; i-- {
		w.buf = append(w.buf, byte(v>>(uint(i)*8)))
	}
	return nil
}

// WriteSignMagnitude writes v as an n byte sign-magnitude integer.
// -1 is written as the all-ones missing pattern.
func (w *Writer) WriteSignMagnitude(v int64, n int) error {
	var raw uint64
	switch {
	case v == -1:
		raw = ^uint64(0)
	case v < 0:
		raw = uint64(-v) | uint64(1)<<(uint(n)*8-1)
	default:
		raw = uint64(v)
	}
	return w.WriteUintN(raw, n)
}

// WriteFloat32 writes an IEEE-754 single precision value.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// PutUint32 overwrites four bytes at offset, for back-filling lengths.
func (w *Writer) PutUint32(offset int, v uint32) {
	binary.BigEndian.PutUint32(w.buf[offset:], v)
}

// PutUint64 overwrites eight bytes at offset.
func (w *Writer) PutUint64(offset int, v uint64) {
	binary.BigEndian.PutUint64(w.buf[offset:], v)
}
