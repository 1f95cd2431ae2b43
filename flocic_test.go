package flocic

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func makeRGB(width, height int, fn func(x, y int) (uint8, uint8, uint8)) []byte {
	pix := make([]byte, width*height*3)
	for y := 0; y < height; y += 1 {
		for x := 0; x < width; x += 1 {
			off := (y*width + x) * 3
			pix[off], pix[off+1], pix[off+2] = fn(x, y)
		}
	}
	return pix
}

func TestCompressDecompress(t *testing.T) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	tests := []struct {
		name          string
		width, height int
		fn            func(x, y int) (uint8, uint8, uint8)
	}{
		{"1x1", 1, 1, func(x, y int) (uint8, uint8, uint8) { return 1, 2, 3 }},
		{"gradient", 64, 48, func(x, y int) (uint8, uint8, uint8) {
			return uint8((x * 17) ^ (y * 31)), uint8((x * 43) + (y * 13)), uint8((x * 7) ^ (y * 11))
		}},
		{"flat", 30, 20, func(x, y int) (uint8, uint8, uint8) { return 255, 0, 128 }},
		{"worst", 25, 25, func(x, y int) (uint8, uint8, uint8) {
			if (x+y)%2 == 0 {
				return 0, 255, 0
			}
			return 255, 0, 255
		}},
		{"random", 37, 29, func(x, y int) (uint8, uint8, uint8) {
			return uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(tt *testing.T) {
			pix := makeRGB(tc.width, tc.height, tc.fn)
			data, err := Compress(pix, tc.width, tc.height)
			if err != nil {
				tt.Fatalf("%+v", err)
			}
			img, err := Decompress(data)
			if err != nil {
				tt.Fatalf("%+v", err)
			}
			if img.Width != tc.width || img.Height != tc.height {
				tt.Errorf("size %dx%d != %dx%d", img.Width, img.Height, tc.width, tc.height)
			}
			if cmp.Equal(img.Pix, pix) != true {
				tt.Errorf("round trip mismatch")
			}
		})
	}
}

func TestCompressLayout(t *testing.T) {
	width, height := 13, 7
	pix := makeRGB(width, height, func(x, y int) (uint8, uint8, uint8) {
		return uint8(x * y), uint8(x + y), uint8(200 - x)
	})
	data, err := Compress(pix, width, height)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	c, err := Unpack(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c.Width != uint32(width) || c.Height != uint32(height) || c.Version != FormatVersion {
		t.Errorf("header %d %d %d", c.Width, c.Height, c.Version)
	}
	for i, plane := range (&RGB{Pix: pix, Width: width, Height: height}).Split() {
		block, err := CompressChannel(plane, width, height)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if cmp.Equal(c.Blocks()[i], block) != true {
			t.Errorf("channel %d differs from sequential encoding", i)
		}
	}
}

func TestCompressErrors(t *testing.T) {
	t.Run("length", func(tt *testing.T) {
		_, err := Compress(make([]byte, 11), 2, 2)
		if errors.Is(err, ErrInvalidInput) != true {
			tt.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
	t.Run("rgba", func(tt *testing.T) {
		_, err := Compress(make([]byte, 16), 2, 2)
		if errors.Is(err, ErrInvalidInput) != true {
			tt.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
	t.Run("dimensions", func(tt *testing.T) {
		_, err := Compress(nil, 0, 0)
		if errors.Is(err, ErrInvalidDimensions) != true {
			tt.Errorf("expected ErrInvalidDimensions, got %v", err)
		}
	})
}

func TestDecompressErrors(t *testing.T) {
	pix := makeRGB(8, 4, func(x, y int) (uint8, uint8, uint8) { return uint8(x), uint8(y), uint8(x ^ y) })
	data, err := Compress(pix, 8, 4)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	t.Run("height mismatch", func(tt *testing.T) {
		c, err := Unpack(data)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		c.Height = 5
		bad, err := Pack(c)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		if _, err := Decompress(bad); errors.Is(err, ErrCorrupt) != true {
			tt.Errorf("expected ErrCorrupt, got %v", err)
		}
	})
	t.Run("width mismatch", func(tt *testing.T) {
		c, err := Unpack(data)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		c.Width = 9
		bad, err := Pack(c)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		if _, err := Decompress(bad); errors.Is(err, ErrCorrupt) != true {
			tt.Errorf("expected ErrCorrupt, got %v", err)
		}
	})
	t.Run("zero width", func(tt *testing.T) {
		bad := append([]byte{}, data...)
		bad[0], bad[1], bad[2], bad[3] = 0, 0, 0, 0
		if _, err := Decompress(bad); errors.Is(err, ErrInvalidDimensions) != true {
			tt.Errorf("expected ErrInvalidDimensions, got %v", err)
		}
	})
	t.Run("version", func(tt *testing.T) {
		bad := append([]byte{}, data...)
		bad[8] = 0x00
		if _, err := Decompress(bad); errors.Is(err, ErrUnsupportedVersion) != true {
			tt.Errorf("expected ErrUnsupportedVersion, got %v", err)
		}
	})
	t.Run("short block", func(tt *testing.T) {
		c, err := Unpack(data)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		c.G = c.G[:3]
		bad, err := Pack(c)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		if _, err := Decompress(bad); errors.Is(err, ErrTruncated) != true {
			tt.Errorf("expected ErrTruncated, got %v", err)
		}
	})
}

func TestRGB(t *testing.T) {
	t.Run("split merge", func(tt *testing.T) {
		img := &RGB{
			Pix:   []uint8{1, 2, 3, 4, 5, 6},
			Width: 2, Height: 1,
		}
		planes := img.Split()
		expect := [3][]uint8{{1, 4}, {2, 5}, {3, 6}}
		if cmp.Equal(planes, expect) != true {
			tt.Errorf("%v != %v", planes, expect)
		}
		merged, err := MergeRGB(planes[0], planes[1], planes[2], 2, 1)
		if err != nil {
			tt.Fatalf("%+v", err)
		}
		if cmp.Equal(merged, img) != true {
			tt.Errorf("%v != %v", merged, img)
		}
		r, g, b := merged.At(1, 0)
		if r != 4 || g != 5 || b != 6 {
			tt.Errorf("At(1, 0) = %d %d %d", r, g, b)
		}
	})
	t.Run("rgba", func(tt *testing.T) {
		rgba := []uint8{1, 2, 3, 255, 4, 5, 6, 255}
		alpha := ExtractChannel(rgba, 4, 3)
		if cmp.Equal(alpha, []uint8{255, 255}) != true {
			tt.Errorf("%v", alpha)
		}
	})
	t.Run("plane length", func(tt *testing.T) {
		_, err := MergeRGB([]uint8{1}, []uint8{1, 2}, []uint8{1}, 1, 1)
		if errors.Is(err, ErrInvalidInput) != true {
			tt.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
