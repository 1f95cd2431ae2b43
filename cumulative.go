package flocic

// Cumulate returns the prefix sums of in. The result is non-decreasing.
func Cumulate[T UnsignedInt](in []T) []uint64 {
	out := make([]uint64, len(in))
	sum := uint64(0)
	for i, v := range in {
		sum += uint64(v)
		out[i] = sum
	}
	return out
}

// Decumulate is the inverse of Cumulate. c must be non-decreasing.
func Decumulate(c []uint64) []uint64 {
	out := make([]uint64, len(c))
	if len(c) == 0 {
		return out
	}
	out[0] = c[0]
	for i := 1; i < len(c); i += 1 {
		out[i] = c[i] - c[i-1]
	}
	return out
}
