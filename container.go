package flocic

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	FormatVersion uint8 = 0x01

	// width(4) + height(4) + version(1)
	containerHeaderSize = 4 + 4 + 1
)

// Container holds the three compressed channel blocks of one image.
type Container struct {
	Width, Height uint32
	Version       uint8
	R, G, B       []byte
}

// Blocks returns the channel blocks in R, G, B order.
func (c *Container) Blocks() [3][]byte {
	return [3][]byte{c.R, c.G, c.B}
}

// Pack serializes c. Version is always written as FormatVersion.
func Pack(c *Container) ([]byte, error) {
	size := containerHeaderSize
	for _, b := range c.Blocks() {
		size += 4 + len(b)
	}
	out := bytes.NewBuffer(make([]byte, 0, size))

	if err := binary.Write(out, binary.BigEndian, c.Width); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := binary.Write(out, binary.BigEndian, c.Height); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := binary.Write(out, binary.BigEndian, FormatVersion); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, b := range c.Blocks() {
		if 0xffffffff < uint64(len(b)) {
			return nil, errors.Wrapf(ErrTooLarge, "block of %d bytes", len(b))
		}
		if err := binary.Write(out, binary.BigEndian, uint32(len(b))); err != nil {
			return nil, errors.WithStack(err)
		}
		if _, err := out.Write(b); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return out.Bytes(), nil
}

func readBlock(r *bytes.Reader) ([]byte, error) {
	size := uint32(0)
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, errors.Wrapf(ErrTruncated, "block length: %v", err)
	}
	if uint64(r.Len()) < uint64(size) {
		return nil, errors.Wrapf(ErrTruncated, "block declares %d bytes, %d remain", size, r.Len())
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf, nil
}

// Unpack parses a buffer produced by Pack.
func Unpack(data []byte) (*Container, error) {
	if len(data) < containerHeaderSize {
		return nil, errors.Wrapf(ErrTruncated, "container header needs %d bytes, got %d", containerHeaderSize, len(data))
	}
	r := bytes.NewReader(data)

	c := &Container{}
	if err := binary.Read(r, binary.BigEndian, &c.Width); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := binary.Read(r, binary.BigEndian, &c.Height); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := binary.Read(r, binary.BigEndian, &c.Version); err != nil {
		return nil, errors.WithStack(err)
	}
	if c.Version != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version 0x%02x", c.Version)
	}

	blocks := [3]*[]byte{&c.R, &c.G, &c.B}
	for i, dst := range blocks {
		b, err := readBlock(r)
		if err != nil {
			return nil, errors.Wrapf(err, "channel %d", i)
		}
		*dst = b
	}
	if 0 < r.Len() {
		return nil, errors.Wrapf(ErrCorrupt, "%d trailing bytes", r.Len())
	}
	return c, nil
}
