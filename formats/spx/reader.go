// SPDX-License-Identifier: EPL-2.0

package spx

import (
	"errors"
	"fmt"
	"io"

	"github.com/jonas747/ogg"

	"github.com/ik5/gospeex/audio"
	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/codec"
	"github.com/ik5/gospeex/stereo"
	"github.com/ik5/gospeex/utils"
)

type source struct {
	pd  *ogg.PacketDecoder
	dec *codec.Decoder
	st  *stereo.State
	hdr *Header

	b       bits.Bits
	mono    []int16
	inter   []int16
	pending []float32
	off     int
}

func (s *source) SampleRate() int { return s.hdr.Rate }
func (s *source) Channels() int   { return s.hdr.Channels }
func (s *source) BufSize() int    { return cap(s.pending) }
func (s *source) Close() error    { return s.dec.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	total := 0
	for total < len(dst) {
		if s.off == len(s.pending) {
			if err := s.fill(); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
		}
		n := copy(dst[total:], s.pending[s.off:])
		s.off += n
		total += n
	}
	return total, nil
}

// fill decodes the next frame into pending, pulling Ogg packets as
// the bit buffer runs dry.
func (s *source) fill() error {
	for {
		err := s.dec.DecodeFrom(&s.b, s.mono)
		if err == nil {
			break
		}
		if !errors.Is(err, codec.ErrEndOfStream) {
			return err
		}

		packet, _, perr := s.pd.Decode()
		if perr != nil {
			if errors.Is(perr, io.EOF) || errors.Is(perr, io.ErrUnexpectedEOF) {
				return io.EOF
			}
			return fmt.Errorf("%w", perr)
		}
		s.b.ReadFrom(packet)
	}

	if s.hdr.Channels == 2 {
		if err := s.st.Decode(s.mono, s.inter); err != nil {
			return err
		}
		utils.Int16SliceToFloat32(s.inter, s.pending)
	} else {
		utils.Int16SliceToFloat32(s.mono, s.pending)
	}
	s.off = 0
	return nil
}

// Decoder opens Speex Ogg streams as audio sources.
type Decoder struct{}

// Decode reads the stream headers and returns a source that yields
// the decoded PCM. Stereo streams come out interleaved.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	pd := ogg.NewPacketDecoder(ogg.NewDecoder(r))

	first, _, err := pd.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	hdr, err := ParseHeader(first)
	if err != nil {
		return nil, err
	}

	// The comment packet is mandatory but carries nothing we need.
	if _, _, err := pd.Decode(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec, err := codec.NewDecoder(hdr.Mode)
	if err != nil {
		return nil, err
	}

	s := &source{
		pd:      pd,
		dec:     dec,
		hdr:     hdr,
		mono:    make([]int16, hdr.FrameSize),
		pending: make([]float32, hdr.FrameSize*hdr.Channels),
	}
	s.off = len(s.pending) // force a fill on first read

	if hdr.Channels == 2 {
		s.st = stereo.NewState()
		s.inter = make([]int16, 2*hdr.FrameSize)
		if err := dec.RegisterInBand(codec.InBandStereo, s.st.Handler()); err != nil {
			return nil, err
		}
	}
	return s, nil
}
