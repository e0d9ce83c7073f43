package binary

// SignMagnitude converts the raw big-endian value of an n byte field into a
// signed integer.
//
// The most significant bit is a sign flag and the remaining bits hold the
// magnitude. The all-ones pattern is the GRIB2 "missing" value and comes
// back as -1, the same as its two's complement reading.
func SignMagnitude(raw uint64, n int) int64 {
	bits := uint(n * 8)
	sign := uint64(1) << (bits - 1)
	allOnes := ^uint64(0)
	if bits < 64 {
		allOnes = (uint64(1) << bits) - 1
	}

	switch {
	case raw&sign == 0:
		return int64(raw)
	case raw == allOnes:
		return -1
	default:
		return -int64(raw &^ sign)
	}
}

// IsMissing reports whether raw is the all-ones pattern for an n byte field.
func IsMissing(raw uint64, n int) bool {
	if n >= 8 {
		return raw == ^uint64(0)
	}
	return raw == (uint64(1)<<(uint(n)*8))-1
}
