// SPDX-License-Identifier: EPL-2.0

package spx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/codec"
	"github.com/ik5/gospeex/stereo"
)

// vendor goes into the comment packet of every stream we write.
const vendor = "gospeex"

// Writer encodes PCM frames into a Speex Ogg stream. It owns the
// encoder session; configure rate control through Encoder before the
// first frame is written.
type Writer struct {
	pw  pageWriter
	enc *codec.Encoder
	st  *stereo.State

	channels        int
	framesPerPacket int

	b       bits.Bits
	pending int    // frames buffered in b
	granule uint64 // mono samples written so far

	mono          []int16
	headerWritten bool
	closed        bool
}

// NewWriter wraps w into a Speex Ogg stream fed by enc. channels is 1
// or 2; stereo input is intensity coded through the mono encoder.
// framesPerPacket groups frames into Ogg packets (minimum 1).
func NewWriter(w io.Writer, enc *codec.Encoder, channels, framesPerPacket int) (*Writer, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadHeader, channels)
	}
	if framesPerPacket < 1 {
		framesPerPacket = 1
	}

	sw := &Writer{
		pw:              pageWriter{w: w, serial: 0x5370},
		enc:             enc,
		channels:        channels,
		framesPerPacket: framesPerPacket,
		mono:            make([]int16, enc.FrameSize()),
	}
	if channels == 2 {
		sw.st = stereo.NewState()
	}
	return sw, nil
}

// WriteFrame encodes one frame. For mono streams pcm holds FrameSize
// samples; for stereo streams it holds 2*FrameSize interleaved
// samples.
func (sw *Writer) WriteFrame(pcm []int16) error {
	if sw.closed {
		return ErrWriterClosed
	}
	if !sw.headerWritten {
		if err := sw.writeHeaders(); err != nil {
			return err
		}
		sw.headerWritten = true
	}

	if sw.channels == 2 {
		if err := sw.st.Encode(pcm, sw.mono, &sw.b); err != nil {
			return err
		}
		pcm = sw.mono
	}
	if err := sw.enc.EncodeTo(pcm, &sw.b); err != nil {
		return err
	}

	sw.pending++
	sw.granule += uint64(sw.enc.FrameSize())
	if sw.pending < sw.framesPerPacket {
		return nil
	}
	return sw.flushPacket(0)
}

// Close flushes buffered frames and terminates the Ogg stream. The
// underlying writer is not closed.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true

	if !sw.headerWritten {
		if err := sw.writeHeaders(); err != nil {
			return err
		}
	}
	if sw.pending > 0 {
		return sw.flushPacket(flagEOS)
	}
	// No buffered audio: an empty end-of-stream page closes the file.
	return sw.pw.writePage(nil, sw.granule, flagEOS)
}

func (sw *Writer) flushPacket(flags byte) error {
	sw.b.InsertTerminator()
	sw.b.PadToByte()

	err := sw.pw.writePage(sw.b.Bytes(), sw.granule, flags)
	sw.b.Reset()
	sw.pending = 0
	return err
}

func (sw *Writer) writeHeaders() error {
	h := &Header{
		Version:          versionString,
		Rate:             sw.enc.Mode().SampleRate(),
		Mode:             sw.enc.Mode(),
		BitstreamVersion: bitstreamVersion,
		Channels:         sw.channels,
		Bitrate:          sw.enc.Bitrate(),
		FrameSize:        sw.enc.FrameSize(),
		VBR:              sw.enc.VBR(),
		FramesPerPacket:  sw.framesPerPacket,
	}
	hdr, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if err := sw.pw.writePage(hdr, 0, flagBOS); err != nil {
		return err
	}
	return sw.pw.writePage(commentPacket(), 0, 0)
}

// commentPacket builds the second stream packet: a vendor string and
// an empty user comment list.
func commentPacket() []byte {
	buf := make([]byte, 8+len(vendor))
	binary.LittleEndian.PutUint32(buf[0:], uint32(len(vendor)))
	copy(buf[4:], vendor)
	// Trailing 4 bytes: zero user comments.
	return buf
}
