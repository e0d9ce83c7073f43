// Package binary provides low-level binary I/O operations for GRIB2 decoding.
package binary

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortBuffer is returned when fewer bytes remain than a read requires.
var ErrShortBuffer = errors.New("binary: not enough bytes remaining")

// Reader is a big-endian cursor over an in-memory byte slice.
//
// GRIB2 is big-endian throughout, so unlike a general purpose reader the
// byte order is fixed.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying bytes but has an independent position.
func (r *Reader) At(offset int) *Reader {
	return &Reader{buf: r.buf, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// ReadBytes reads exactly n bytes from the current position.
// The returned slice is a copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	if r.Len() < n {
		return nil, ErrShortBuffer
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:])
	r.pos += n
	return out, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Len() < 1 {
		return 0, ErrShortBuffer
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadUintN(2)
	return uint16(v), err
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadUintN(4)
	return uint32(v), err
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	return r.ReadUintN(8)
}

// ReadUintN reads an unsigned integer of n bytes (1 to 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, ErrInvalidWidth
	}
	if r.Len() < n {
		return 0, ErrShortBuffer
	}
	v := decodeUint(r.buf[r.pos:r.pos+n], n)
	r.pos += n
	return v, nil
}

// ReadSignMagnitude reads an n byte integer stored in GRIB2 sign-magnitude
// form. See [SignMagnitude].
func (r *Reader) ReadSignMagnitude(n int) (int64, error) {
	raw, err := r.ReadUintN(n)
	if err != nil {
		return 0, err
	}
	return SignMagnitude(raw, n), nil
}

// ReadFloat32 reads an IEEE-754 single precision value.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Len() < n {
		return ErrShortBuffer
	}
	r.pos += n
	return nil
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if r.Len() < n {
		return nil, ErrShortBuffer
	}
	return r.buf[r.pos : r.pos+n], nil
}

// decodeUint decodes a variable-width big-endian unsigned integer.
func decodeUint(buf []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(buf))
	case 4:
		return uint64(binary.BigEndian.Uint32(buf))
	case 8:
		return binary.BigEndian.Uint64(buf)
	default:
		var val uint64
		for i := 0; i < size; i++ {
			val = (val << 8) | uint64(buf[i])
		}
		return val
	}
}
