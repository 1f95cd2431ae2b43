package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/octu0/runlength"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"

	"github.com/octu0/flocic"
)

type benchResult struct {
	Name     string
	Size     int
	Encode   time.Duration
	Decode   time.Duration
	Lossless bool
}

type codecFunc func(img *flocic.RGB) (benchResult, error)

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func benchFLoCIC(img *flocic.RGB) (benchResult, error) {
	t := time.Now()
	out, err := flocic.Compress(img.Pix, img.Width, img.Height)
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	encElapsed := time.Since(t)

	t = time.Now()
	dec, err := flocic.Decompress(out)
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	decElapsed := time.Since(t)

	return benchResult{"flocic", len(out), encElapsed, decElapsed, bytes.Equal(dec.Pix, img.Pix)}, nil
}

// benchRunlength encodes each plane separately so runs follow a single channel.
func benchRunlength(img *flocic.RGB) (benchResult, error) {
	planes := img.Split()
	encoded := make([]*bytes.Buffer, len(planes))

	t := time.Now()
	for i, plane := range planes {
		encoded[i] = bytes.NewBuffer(nil)
		if err := runlength.NewEncoder(encoded[i]).Encode(plane); err != nil {
			return benchResult{}, errors.WithStack(err)
		}
	}
	encElapsed := time.Since(t)

	size := 0
	lossless := true
	t = time.Now()
	for i, buf := range encoded {
		size += buf.Len()
		b, err := runlength.NewDecoder().Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return benchResult{}, errors.WithStack(err)
		}
		lossless = lossless && bytes.Equal(b, planes[i])
	}
	decElapsed := time.Since(t)

	return benchResult{"runlength", size, encElapsed, decElapsed, lossless}, nil
}

func benchZstd(img *flocic.RGB) (benchResult, error) {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)

	t := time.Now()
	out := enc.EncodeAll(img.Pix, nil)
	encElapsed := time.Since(t)

	t = time.Now()
	b, err := dec.DecodeAll(out, nil)
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	decElapsed := time.Since(t)

	return benchResult{"zstd", len(out), encElapsed, decElapsed, bytes.Equal(b, img.Pix)}, nil
}

func benchXz(img *flocic.RGB) (benchResult, error) {
	buf := bytes.NewBuffer(nil)

	t := time.Now()
	w, err := xz.NewWriter(buf)
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	if err := w.Close(); err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	encElapsed := time.Since(t)
	size := buf.Len()

	t = time.Now()
	r, err := xz.NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return benchResult{}, errors.WithStack(err)
	}
	decElapsed := time.Since(t)

	return benchResult{"xz", size, encElapsed, decElapsed, bytes.Equal(b, img.Pix)}, nil
}

func runBench(img *flocic.RGB) ([]benchResult, error) {
	codecs := []codecFunc{benchFLoCIC, benchRunlength, benchZstd, benchXz}
	results := make([]benchResult, 0, len(codecs))
	for _, fn := range codecs {
		res, err := fn(img)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		results = append(results, res)
	}
	return results, nil
}

func printBench(w io.Writer, original int, results []benchResult) {
	fmt.Fprintf(w, "raw %3.2fKB\n", float64(original)/1024.0)
	for _, r := range results {
		fmt.Fprintf(w,
			"%-10s Size=%8.2fKB Ratio=%6.2f%% BPP=%5.2f Enc=%s Dec=%s lossless=%v\n",
			r.Name,
			float64(r.Size)/1024.0,
			(float64(r.Size)/float64(original))*100,
			float64(r.Size*8)/float64(original/3),
			r.Encode,
			r.Decode,
			r.Lossless,
		)
	}
}

func benchCommand(args []string) error {
	input, err := parseArgs("bench", args, nil, "")
	if err != nil {
		return errors.WithStack(err)
	}
	img, err := loadRGB(input)
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Printf("%s %dx%d\n", input, img.Width, img.Height)
	results, err := runBench(img)
	if err != nil {
		return errors.WithStack(err)
	}
	printBench(os.Stdout, len(img.Pix), results)
	return nil
}
