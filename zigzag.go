package flocic

// Zigzag maps a signed prediction error onto the non-negative integers:
// 0, -1, 1, -2, 2 ... become 0, 1, 2, 3, 4 ...
func Zigzag[T SignedInt](e T) uint64 {
	v := int64(e)
	if 0 <= v {
		return uint64(v) << 1
	}
	return (uint64(-(v + 1)) << 1) + 1
}

func Unzigzag[T SignedInt](n uint64) T {
	if n&1 == 0 {
		return T(n >> 1)
	}
	return T(-int64(n>>1) - 1)
}
