package flocic

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDimensions  = errors.New("invalid dimensions")
	ErrTooLarge           = errors.New("channel too large")
	ErrTruncated          = errors.New("truncated data")
	ErrCorrupt            = errors.New("corrupt data")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrNotMonotonic       = errors.New("cumulative sequence is not monotonic")
)
