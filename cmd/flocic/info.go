package main

import (
	"os"

	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/octu0/flocic"
)

type channelInfo struct {
	Name   string
	Bytes  int
	Header flocic.ChannelHeader
}

type fileInfo struct {
	Path          string
	Width, Height uint32
	Version       uint8
	Channels      []channelInfo
	RawBytes      int
	Compressed    int
	BitsPerPixel  float64
}

func readInfo(path string, data []byte) (*fileInfo, error) {
	c, err := flocic.Unpack(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	info := &fileInfo{
		Path:       path,
		Width:      c.Width,
		Height:     c.Height,
		Version:    c.Version,
		RawBytes:   int(c.Width) * int(c.Height) * 3,
		Compressed: len(data),
	}
	for i, b := range c.Blocks() {
		h, err := flocic.ReadChannelHeader(b)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: channel %d", path, i)
		}
		info.Channels = append(info.Channels, channelInfo{
			Name:   [3]string{"R", "G", "B"}[i],
			Bytes:  len(b),
			Header: h,
		})
	}
	if pixels := int(c.Width) * int(c.Height); 0 < pixels {
		info.BitsPerPixel = float64(len(data)*8) / float64(pixels)
	}
	return info, nil
}

func infoCommand(args []string) error {
	input, err := parseArgs("info", args, nil, "")
	if err != nil {
		return errors.WithStack(err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.WithStack(err)
	}
	info, err := readInfo(input, data)
	if err != nil {
		return errors.WithStack(err)
	}
	pretty.Println(info)
	return nil
}
