package flocic

import (
	"github.com/pkg/errors"
)

const (
	channelR = iota
	channelG
	channelB
	numChannels
)

// RGB is an interleaved 8-bit RGB image, 3 bytes per pixel, row-major.
type RGB struct {
	Pix           []uint8
	Width, Height int
}

func (img *RGB) At(x, y int) (r, g, b uint8) {
	off := (y*img.Width + x) * numChannels
	return img.Pix[off+channelR], img.Pix[off+channelG], img.Pix[off+channelB]
}

// Split returns the R, G and B planes.
func (img *RGB) Split() [3][]uint8 {
	return [3][]uint8{
		ExtractChannel(img.Pix, numChannels, channelR),
		ExtractChannel(img.Pix, numChannels, channelG),
		ExtractChannel(img.Pix, numChannels, channelB),
	}
}

func NewRGB(width, height int) *RGB {
	return &RGB{
		Pix:    make([]uint8, width*height*numChannels),
		Width:  width,
		Height: height,
	}
}

// ExtractChannel picks every stride-th sample of pix starting at index.
// It serves both RGB (stride 3) and RGBA (stride 4) buffers.
func ExtractChannel(pix []uint8, stride, index int) []uint8 {
	plane := make([]uint8, 0, len(pix)/stride)
	for i := index; i < len(pix); i += stride {
		plane = append(plane, pix[i])
	}
	return plane
}

// MergeRGB interleaves three planes of width*height samples.
func MergeRGB(r, g, b []uint8, width, height int) (*RGB, error) {
	n := width * height
	if len(r) != n || len(g) != n || len(b) != n {
		return nil, errors.Wrapf(ErrInvalidInput, "planes %d/%d/%d for %dx%d", len(r), len(g), len(b), width, height)
	}
	img := NewRGB(width, height)
	for i := 0; i < n; i += 1 {
		off := i * numChannels
		img.Pix[off+channelR] = r[i]
		img.Pix[off+channelG] = g[i]
		img.Pix[off+channelB] = b[i]
	}
	return img, nil
}
