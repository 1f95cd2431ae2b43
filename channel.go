package flocic

import (
	"math"

	"github.com/pkg/errors"
)

const (
	channelHeaderBits = 16 + 8 + 32 + 32
	ChannelHeaderSize = channelHeaderBits / 8

	maxChannelHeight = math.MaxUint16
)

// ChannelHeader precedes the interpolative body of a compressed channel.
// Last is C[n-1]; C[0] is not stored, it is always 2*First.
type ChannelHeader struct {
	Height uint16
	First  uint8
	Last   uint32
	Count  uint32
}

func (h ChannelHeader) write(w *BitWriter) {
	w.WriteBits(uint64(h.Height), 16)
	w.WriteBits(uint64(h.First), 8)
	w.WriteBits(uint64(h.Last), 32)
	w.WriteBits(uint64(h.Count), 32)
}

func readChannelHeader(r *BitReader) (ChannelHeader, error) {
	h := ChannelHeader{
		Height: uint16(r.ReadBits(16)),
		First:  uint8(r.ReadBits(8)),
		Last:   uint32(r.ReadBits(32)),
		Count:  uint32(r.ReadBits(32)),
	}
	if 0 < r.Overrun() {
		return ChannelHeader{}, errors.Wrapf(ErrTruncated, "channel header needs %d bytes", ChannelHeaderSize)
	}
	return h, nil
}

func ReadChannelHeader(data []byte) (ChannelHeader, error) {
	h, err := readChannelHeader(NewBitReader(data))
	if err != nil {
		return ChannelHeader{}, errors.WithStack(err)
	}
	return h, nil
}

func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	if maxChannelHeight < height {
		return errors.Wrapf(ErrInvalidDimensions, "height %d exceeds %d", height, maxChannelHeight)
	}
	if math.MaxUint32 < uint64(width)*uint64(height) {
		return errors.Wrapf(ErrTooLarge, "%dx%d samples", width, height)
	}
	return nil
}

// mappedErrors returns the zigzag mapped prediction errors of samples.
// The first sample has no prediction and is mapped as its own value.
func mappedErrors(samples []uint8, width int) []uint64 {
	n := make([]uint64, len(samples))
	n[0] = Zigzag(int(samples[0]))
	for i := 1; i < len(samples); i += 1 {
		x, y := i%width, i/width
		e := Predict(samples, x, y, width) - int(samples[i])
		n[i] = Zigzag(e)
	}
	return n
}

// CompressChannel encodes one row-major channel of width*height samples.
func CompressChannel(samples []uint8, width, height int) ([]byte, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(samples) != width*height {
		return nil, errors.Wrapf(ErrInvalidInput, "%d samples for %dx%d", len(samples), width, height)
	}
	count := len(samples)

	c := Cumulate(mappedErrors(samples, width))
	last := c[count-1]
	if math.MaxUint32 < last {
		return nil, errors.Wrapf(ErrTooLarge, "cumulative sum %d does not fit in 32 bits", last)
	}

	w := NewBitWriter(ChannelHeaderSize + count/4)
	header := ChannelHeader{
		Height: uint16(height),
		First:  samples[0],
		Last:   uint32(last),
		Count:  uint32(count),
	}
	header.write(w)

	if err := EncodeInterpolative(w, c, 0, count-1); err != nil {
		return nil, errors.WithStack(err)
	}
	w.Flush()
	return w.Bytes(), nil
}

// DecompressChannel decodes a block produced by CompressChannel.
func DecompressChannel(data []byte, width int) ([]uint8, error) {
	r := NewBitReader(data)
	header, err := readChannelHeader(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	height := int(header.Height)
	if err := validateDimensions(width, height); err != nil {
		return nil, errors.WithStack(err)
	}
	count := int(header.Count)
	if count != width*height {
		return nil, errors.Wrapf(ErrCorrupt, "sample count %d does not match %dx%d", count, width, height)
	}

	first := uint64(header.First)
	last := uint64(header.Last)
	c0 := Zigzag(int(first))
	if last < c0 {
		return nil, errors.Wrapf(ErrCorrupt, "last cumulative %d below first %d", last, c0)
	}
	if count == 1 && last != c0 {
		return nil, errors.Wrapf(ErrCorrupt, "single sample with cumulative %d != %d", last, c0)
	}

	c := make([]uint64, count)
	c[0] = c0
	c[count-1] = last
	if err := DecodeInterpolative(r, c, 0, count-1); err != nil {
		return nil, errors.WithStack(err)
	}
	if 0 < r.Overrun() {
		return nil, errors.Wrapf(ErrTruncated, "body short by %d bits", r.Overrun())
	}

	mapped := Decumulate(c)
	samples := make([]uint8, count)
	samples[0] = header.First
	for i := 1; i < count; i += 1 {
		x, y := i%width, i/width
		e := Unzigzag[int](mapped[i])
		v := Predict(samples, x, y, width) - e
		if v < 0 || 255 < v {
			return nil, errors.Wrapf(ErrCorrupt, "sample %d reconstructs to %d", i, v)
		}
		samples[i] = uint8(v)
	}
	return samples, nil
}
