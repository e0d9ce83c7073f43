package binary

import "errors"

var (
	// ErrInvalidWidth is returned for integer widths outside 1..8 bytes.
	ErrInvalidWidth = errors.New("binary: integer width must be 1 to 8 bytes")

	// ErrInvalidBitLength is returned for bit reads outside 0..32 bits.
	ErrInvalidBitLength = errors.New("binary: bit length must be 0 to 32")
)
