// SPDX-License-Identifier: EPL-2.0

package spx

import "errors"

var (
	// ErrNotSpeexStream means the first packet does not carry the
	// Speex magic.
	ErrNotSpeexStream = errors.New("spx: not a speex stream")

	// ErrBadHeader means the header packet is malformed or its fields
	// are inconsistent.
	ErrBadHeader = errors.New("spx: bad header")

	// ErrUnsupportedVersion means the stream was written by an
	// incompatible bitstream version.
	ErrUnsupportedVersion = errors.New("spx: unsupported version")

	// ErrWriterClosed is returned when writing after Close.
	ErrWriterClosed = errors.New("spx: writer closed")
)
