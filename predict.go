package flocic

// MED is the median edge detector of JPEG-LS over the left (a), top (b) and
// top-left (c) neighbours.
func MED(a, b, c int) int {
	if max(a, b) <= c {
		return min(a, b)
	}
	if c <= min(a, b) {
		return max(a, b)
	}
	return a + b - c
}

// Predict estimates the sample at (x, y) from already known samples of a
// row-major channel of the given width.
func Predict(samples []uint8, x, y, width int) int {
	switch {
	case x == 0 && y == 0:
		return 0
	case y == 0:
		return int(samples[x-1])
	case x == 0:
		return int(samples[(y-1)*width])
	}
	offset := y*width + x
	a := int(samples[offset-1])
	b := int(samples[offset-width])
	c := int(samples[offset-width-1])
	return MED(a, b, c)
}
