package flocic

import (
	"sync"

	"github.com/pkg/errors"
)

type channelResult struct {
	data []byte
	err  error
}

// Compress encodes an interleaved RGB buffer of width*height pixels.
// The three channels are compressed concurrently; the output does not
// depend on scheduling.
func Compress(rgb []byte, width, height int) ([]byte, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(rgb) != width*height*numChannels {
		return nil, errors.Wrapf(ErrInvalidInput, "%d bytes for %dx%d RGB", len(rgb), width, height)
	}

	img := &RGB{Pix: rgb, Width: width, Height: height}
	planes := img.Split()

	results := [numChannels]channelResult{}
	wg := sync.WaitGroup{}
	for i := range planes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := CompressChannel(planes[i], width, height)
			results[i] = channelResult{data, err}
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if res.err != nil {
			return nil, errors.Wrapf(res.err, "channel %d", i)
		}
	}
	out, err := Pack(&Container{
		Width:  uint32(width),
		Height: uint32(height),
		R:      results[channelR].data,
		G:      results[channelG].data,
		B:      results[channelB].data,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

type planeResult struct {
	samples []uint8
	err     error
}

// Decompress decodes a buffer produced by Compress.
func Decompress(data []byte) (*RGB, error) {
	c, err := Unpack(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	width, height := int(c.Width), int(c.Height)
	if err := validateDimensions(width, height); err != nil {
		return nil, errors.WithStack(err)
	}

	blocks := c.Blocks()
	for i, b := range blocks {
		h, err := ReadChannelHeader(b)
		if err != nil {
			return nil, errors.Wrapf(err, "channel %d", i)
		}
		if int(h.Height) != height {
			return nil, errors.Wrapf(ErrCorrupt, "channel %d height %d, container %d", i, h.Height, height)
		}
	}

	results := [numChannels]planeResult{}
	wg := sync.WaitGroup{}
	for i := range blocks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			samples, err := DecompressChannel(blocks[i], width)
			results[i] = planeResult{samples, err}
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if res.err != nil {
			return nil, errors.Wrapf(res.err, "channel %d", i)
		}
	}
	img, err := MergeRGB(results[channelR].samples, results[channelG].samples, results[channelB].samples, width, height)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return img, nil
}
