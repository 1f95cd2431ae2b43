package flocic

import (
	"math/bits"

	"github.com/pkg/errors"
)

// BitWidth returns ceil(log2(diff+1)), the number of bits that can hold any
// value in [0, diff].
func BitWidth(diff uint64) int {
	return bits.Len64(diff)
}

type interval struct {
	lo, hi int
}

// EncodeInterpolative writes the interior of the non-decreasing sequence
// c[lo..hi]. c[lo] and c[hi] are assumed known to the decoder.
//
// Intervals are visited in the same order as the recursive form
// encode(lo, m); encode(m, hi), using an explicit stack so the depth does not
// depend on the call stack.
func EncodeInterpolative(w *BitWriter, c []uint64, lo, hi int) error {
	if lo < 0 || len(c) <= hi {
		return errors.Wrapf(ErrInvalidInput, "range [%d, %d] out of %d", lo, hi, len(c))
	}
	stack := make([]interval, 0, 64)
	stack = append(stack, interval{lo, hi})
	for 0 < len(stack) {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if iv.hi-iv.lo <= 1 {
			continue
		}
		low, high := c[iv.lo], c[iv.hi]
		if high == low {
			continue
		}
		m := (iv.lo + iv.hi) / 2
		mid := c[m]
		if mid < low || high < mid || high < low {
			return errors.Wrapf(ErrNotMonotonic, "c[%d]=%d c[%d]=%d c[%d]=%d", iv.lo, low, m, mid, iv.hi, high)
		}
		w.WriteBits(mid-low, BitWidth(high-low))

		// right half is popped after the whole left half
		stack = append(stack, interval{m, iv.hi}, interval{iv.lo, m})
	}
	return nil
}

// DecodeInterpolative fills c[lo+1..hi-1] from r. c[lo] and c[hi] must be set.
func DecodeInterpolative(r *BitReader, c []uint64, lo, hi int) error {
	if lo < 0 || len(c) <= hi {
		return errors.Wrapf(ErrInvalidInput, "range [%d, %d] out of %d", lo, hi, len(c))
	}
	stack := make([]interval, 0, 64)
	stack = append(stack, interval{lo, hi})
	for 0 < len(stack) {
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if iv.hi-iv.lo <= 1 {
			continue
		}
		low, high := c[iv.lo], c[iv.hi]
		if high == low {
			for i := iv.lo + 1; i < iv.hi; i += 1 {
				c[i] = low
			}
			continue
		}
		if high < low {
			return errors.Wrapf(ErrCorrupt, "c[%d]=%d > c[%d]=%d", iv.lo, low, iv.hi, high)
		}
		diff := high - low
		val := r.ReadBits(BitWidth(diff))
		if diff < val {
			return errors.Wrapf(ErrCorrupt, "offset %d exceeds range %d at [%d, %d]", val, diff, iv.lo, iv.hi)
		}
		m := (iv.lo + iv.hi) / 2
		c[m] = low + val

		stack = append(stack, interval{m, iv.hi}, interval{iv.lo, m})
	}
	return nil
}
