package codec

import (
	"errors"

	"github.com/ik5/gospeex/bits"
)

var (
	// ErrClosed indicates use of an encoder or decoder after Close.
	ErrClosed = errors.New("codec session is closed")

	// ErrBadFrameSize indicates a PCM buffer whose length does not
	// match the frame size of the mode.
	ErrBadFrameSize = errors.New("pcm length must match mode frame size")

	// ErrInvalidParameter indicates an out-of-range control value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEndOfStream is returned when a decoder reaches the stream
	// terminator or runs out of bits. It aliases the bits package
	// sentinel so both layers match with errors.Is.
	ErrEndOfStream = bits.ErrEndOfStream
)
