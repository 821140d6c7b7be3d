// SPDX-License-Identifier: EPL-2.0

package spx

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/gospeex/mode"
)

const (
	headerSize  = 80
	headerMagic = "Speex   "

	// versionID is the stream format version written into every
	// header. Readers reject other values.
	versionID = 1

	// bitstreamVersion is bumped whenever the frame payload layout
	// changes incompatibly.
	bitstreamVersion = 1

	versionString = "gospeex-1.0"
)

// Header is the first packet of a Speex Ogg stream. It fixes the mode
// and packing of every audio packet that follows.
type Header struct {
	Version          string
	Rate             int
	Mode             mode.ID
	BitstreamVersion int
	Channels         int
	Bitrate          int
	FrameSize        int
	VBR              bool
	FramesPerPacket  int
	ExtraHeaders     int
}

// MarshalBinary encodes the header into its 80-byte wire form.
func (h *Header) MarshalBinary() ([]byte, error) {
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadHeader, h.Channels)
	}
	if _, err := mode.Lookup(h.Mode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	buf := make([]byte, headerSize)
	copy(buf[0:8], headerMagic)
	copy(buf[8:28], h.Version)

	le := binary.LittleEndian
	le.PutUint32(buf[28:], versionID)
	le.PutUint32(buf[32:], headerSize)
	le.PutUint32(buf[36:], uint32(h.Rate))
	le.PutUint32(buf[40:], uint32(h.Mode))
	le.PutUint32(buf[44:], uint32(h.BitstreamVersion))
	le.PutUint32(buf[48:], uint32(h.Channels))
	le.PutUint32(buf[52:], uint32(int32(h.Bitrate)))
	le.PutUint32(buf[56:], uint32(h.FrameSize))
	if h.VBR {
		le.PutUint32(buf[60:], 1)
	}
	le.PutUint32(buf[64:], uint32(h.FramesPerPacket))
	le.PutUint32(buf[68:], uint32(h.ExtraHeaders))
	// buf[72:80] is reserved and stays zero.
	return buf, nil
}

// ParseHeader decodes the first packet of a stream.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(data))
	}
	if string(data[0:8]) != headerMagic {
		return nil, ErrNotSpeexStream
	}

	le := binary.LittleEndian
	if le.Uint32(data[28:]) != versionID {
		return nil, fmt.Errorf("%w: version id %d", ErrUnsupportedVersion, le.Uint32(data[28:]))
	}

	id, err := mode.FromInt(int(le.Uint32(data[40:])))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	h := &Header{
		Version:          cString(data[8:28]),
		Rate:             int(le.Uint32(data[36:])),
		Mode:             id,
		BitstreamVersion: int(le.Uint32(data[44:])),
		Channels:         int(le.Uint32(data[48:])),
		Bitrate:          int(int32(le.Uint32(data[52:]))),
		FrameSize:        int(le.Uint32(data[56:])),
		VBR:              le.Uint32(data[60:]) == 1,
		FramesPerPacket:  int(le.Uint32(data[64:])),
		ExtraHeaders:     int(le.Uint32(data[68:])),
	}

	if h.BitstreamVersion != bitstreamVersion {
		return nil, fmt.Errorf("%w: bitstream version %d", ErrUnsupportedVersion, h.BitstreamVersion)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadHeader, h.Channels)
	}
	if h.FrameSize != h.Mode.FrameSize() || h.Rate != h.Mode.SampleRate() {
		return nil, fmt.Errorf("%w: frame size %d at %d Hz does not match mode",
			ErrBadHeader, h.FrameSize, h.Rate)
	}
	if h.FramesPerPacket < 1 {
		h.FramesPerPacket = 1
	}
	return h, nil
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
