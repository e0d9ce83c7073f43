package packing

import "fmt"

// ScanningMode is the flag table 3.4 octet of a grid definition. Bit 1 is
// the most significant bit.
type ScanningMode uint8

func (m ScanningMode) isSet(bit int) bool {
	return m&(0x80>>(bit-1)) != 0
}

// DirectionI returns +1 when points scan in the +i direction (west to
// east) and -1 otherwise.
func (m ScanningMode) DirectionI() int {
	if m.isSet(1) {
		return -1
	}
	return +1
}

// DirectionJ returns -1 when points scan in the -j direction (north to
// south) and +1 otherwise.
func (m ScanningMode) DirectionJ() int {
	if m.isSet(2) {
		return +1
	}
	return -1
}

// IConsecutive reports whether adjacent points in the i direction are
// consecutive.
func (m ScanningMode) IConsecutive() bool {
	return !m.isSet(3)
}

// SameDirection reports whether all rows scan in the same direction.
// When false, every other row is scanned in the opposite direction.
func (m ScanningMode) SameDirection() bool {
	return !m.isSet(4)
}

func (m ScanningMode) String() string {
	return fmt.Sprintf("%08b", uint8(m))
}
