package bits

import "errors"

var (
	// ErrEndOfStream indicates a read past the last written bit.
	ErrEndOfStream = errors.New("no bits left in stream")

	// ErrBitCount indicates a bit count outside the supported [0, 32] range.
	ErrBitCount = errors.New("bit count must be between 0 and 32")
)
