package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/octu0/flocic"
)

const usage = `usage:
  flocic compress   [-o out.flc] <input.png|input.jpg>
  flocic decompress [-o out.png] <input.flc>
  flocic info       <input.flc>
  flocic bench      <input.png|input.jpg>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compress":
		err = compressCommand(os.Args[2:])
	case "decompress":
		err = decompressCommand(os.Args[2:])
	case "info":
		err = infoCommand(os.Args[2:])
	case "bench":
		err = benchCommand(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// parseArgs parses "[-o output] <input>". out is nil for commands without output.
func parseArgs(name string, args []string, out *string, defaultExt string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if out != nil {
		fs.StringVar(out, "o", "", "output path (default: input with "+defaultExt+" extension)")
	}
	if err := fs.Parse(args); err != nil {
		return "", errors.WithStack(err)
	}
	if fs.NArg() != 1 {
		return "", errors.Errorf("%s: expected one input file, got %d", name, fs.NArg())
	}
	input := fs.Arg(0)
	if out != nil && *out == "" {
		*out = replaceExt(input, defaultExt)
	}
	return input, nil
}

func compressCommand(args []string) error {
	output := ""
	input, err := parseArgs("compress", args, &output, ".flc")
	if err != nil {
		return errors.WithStack(err)
	}

	img, err := loadRGB(input)
	if err != nil {
		return errors.WithStack(err)
	}

	t := time.Now()
	out, err := flocic.Compress(img.Pix, img.Width, img.Height)
	if err != nil {
		return errors.WithStack(err)
	}
	elapsed := time.Since(t)

	if err := os.WriteFile(output, out, 0644); err != nil {
		return errors.WithStack(err)
	}

	original := len(img.Pix)
	fmt.Printf(
		"%s (%dx%d) -> %s elapse=%s %3.2fKB -> %3.2fKB compressed %3.2f%%\n",
		input, img.Width, img.Height, output,
		elapsed,
		float64(original)/1024.0,
		float64(len(out))/1024.0,
		(float64(len(out))/float64(original))*100,
	)
	return nil
}

func decompressCommand(args []string) error {
	output := ""
	input, err := parseArgs("decompress", args, &output, ".png")
	if err != nil {
		return errors.WithStack(err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.WithStack(err)
	}

	t := time.Now()
	img, err := flocic.Decompress(data)
	if err != nil {
		return errors.Wrapf(err, "%s", input)
	}
	elapsed := time.Since(t)

	if err := saveImage(img, output); err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s -> %s (%dx%d) elapse=%s\n", input, output, img.Width, img.Height, elapsed)
	return nil
}
