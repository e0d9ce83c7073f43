package binary

import (
	"errors"
	"fmt"
	"io"
)

// BitReader reads MSB-first bit fields of up to 32 bits from a byte source.
//
// Bits left over from a partially consumed byte are kept for the next call,
// so reading N bits at once yields the same value as reading them in any
// sequence of smaller pieces.
type BitReader struct {
	src     io.ByteReader
	partial byte
	avail   uint // unconsumed low bits of partial, 0..7
}

// NewBitReader creates a bit reader over src.
func NewBitReader(src io.ByteReader) *BitReader {
	return &BitReader{src: src}
}

// Read consumes n bits (0 to 32) and returns them as an unsigned value.
// Running out of source bytes yields io.ErrUnexpectedEOF.
func (br *BitReader) Read(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBitLength, n)
	}
	if n == 0 {
		return 0, nil
	}

	v := uint64(br.partial) & (uint64(1)<<br.avail - 1)
	remains := n - int(br.avail)
	for remains > 0 {
		b, err := br.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v = v<<8 | uint64(b)
		br.partial = b
		remains -= 8
	}

	br.avail = uint(-remains)
	return uint32(v >> br.avail), nil
}

// Buffered returns the number of bits held from a partially consumed byte.
func (br *BitReader) Buffered() int {
	return int(br.avail)
}
