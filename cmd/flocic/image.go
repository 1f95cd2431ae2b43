package main

import (
	"image"
	"image/draw"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/pkg/errors"

	"github.com/octu0/flocic"
)

// toRGB drops alpha and returns the interleaved 8-bit RGB samples of src.
func toRGB(src image.Image) (*flocic.RGB, error) {
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)

	rgb, err := flocic.MergeRGB(
		flocic.ExtractChannel(nrgba.Pix, 4, 0),
		flocic.ExtractChannel(nrgba.Pix, 4, 1),
		flocic.ExtractChannel(nrgba.Pix, 4, 2),
		b.Dx(), b.Dy(),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rgb, nil
}

func toNRGBA(img *flocic.RGB) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, j := 0, 0; i < len(img.Pix); i, j = i+3, j+4 {
		dst.Pix[j+0] = img.Pix[i+0]
		dst.Pix[j+1] = img.Pix[i+1]
		dst.Pix[j+2] = img.Pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

func loadRGB(path string) (*flocic.RGB, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return toRGB(img)
}

func saveImage(img *flocic.RGB, name string) error {
	out, err := os.Create(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer out.Close()

	if err := png.Encode(out, toNRGBA(img)); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
