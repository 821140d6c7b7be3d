// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"math"

	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/mode"
	"github.com/ik5/gospeex/utils"
)

// Decoder reconstructs 20ms PCM frames from encoded data. It is not
// safe for concurrent use; run one decoder per stream.
type Decoder struct {
	control

	nb    *bandCoder
	sb    *bandCoder
	sbTop *bandCoder
	hp    *highpass
	noise *noiseGen

	// Fixed submodes for streams with submode encoding disabled, and
	// the last submodes seen, for Bitrate.
	nbSubmode mode.NBSubmode
	sbSubmode mode.SBSubmode

	plcCount int
	inband   map[uint32]InBandHandler

	frame       []float32
	low, high   []float32
	low2, high2 []float32
	in          bits.Bits
	pcm         []int16
}

// InBandHandler receives the payload of an in-band request. nbits is
// the payload width from the in-band size table.
type InBandHandler func(payload uint64, nbits int) error

// NewDecoder creates a decoder session for the given mode.
func NewDecoder(id mode.ID) (*Decoder, error) {
	ctl, err := newControl(id)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		control:   ctl,
		nb:        newBandCoder(),
		hp:        newHighpass(id.SampleRate()),
		noise:     newNoiseGen(),
		nbSubmode: mode.NBQualityMap[8],
		sbSubmode: mode.SBQualityMap[8],
		inband:    make(map[uint32]InBandHandler),
		frame:     make([]float32, id.FrameSize()),
		pcm:       make([]int16, id.FrameSize()),
	}

	switch id {
	case mode.WideBand:
		d.sb = newBandCoder()
		d.low = make([]float32, id.FrameSize()/2)
		d.high = make([]float32, id.FrameSize()/2)
	case mode.UltraWideBand:
		d.sb = newBandCoder()
		d.sbTop = newBandCoder()
		d.low = make([]float32, id.FrameSize()/2)
		d.high = make([]float32, id.FrameSize()/2)
		d.low2 = make([]float32, id.FrameSize()/4)
		d.high2 = make([]float32, id.FrameSize()/4)
	}
	return d, nil
}

// Decode reconstructs the first frame in data and returns FrameSize
// samples. The returned slice is only valid until the next call.
func (d *Decoder) Decode(data []byte) ([]int16, error) {
	d.in.ReadFrom(data)
	if err := d.DecodeFrom(&d.in, d.pcm); err != nil {
		return nil, err
	}
	return d.pcm, nil
}

// DecodeFrom reads one frame from b into out. In-band requests are
// dispatched to registered handlers; unknown ones are skipped. It
// returns ErrEndOfStream at the terminator or when b is exhausted.
// len(out) must equal FrameSize.
func (d *Decoder) DecodeFrom(b *bits.Bits, out []int16) error {
	if err := d.checkOpen(); err != nil {
		return err
	}
	if len(out) != d.FrameSize() {
		return fmt.Errorf("%w: got %d, want %d", ErrBadFrameSize, len(out), d.FrameSize())
	}

	nbSub := d.nbSubmode
	if d.submodeEncoding {
		var err error
		nbSub, err = d.readFrameHeader(b)
		if err != nil {
			return err
		}
	}

	switch d.mode {
	case mode.NarrowBand:
		if err := d.nb.decode(b, d.frame, nbSub.ExcitationBits(), nbSub.GainBits(), d.noise); err != nil {
			return err
		}
	case mode.WideBand:
		if err := d.nb.decode(b, d.low, nbSub.ExcitationBits(), nbSub.GainBits(), d.noise); err != nil {
			return err
		}
		sbSub, err := d.readSBHeader(b)
		if err != nil {
			return err
		}
		if err := d.sb.decode(b, d.high, sbSub.ExcitationBits(), sbSub.GainBits(), d.noise); err != nil {
			return err
		}
		qmfMerge(d.low, d.high, d.frame)
	case mode.UltraWideBand:
		if err := d.nb.decode(b, d.low2, nbSub.ExcitationBits(), nbSub.GainBits(), d.noise); err != nil {
			return err
		}
		sbSub, err := d.readSBHeader(b)
		if err != nil {
			return err
		}
		if err := d.sb.decode(b, d.high2, sbSub.ExcitationBits(), sbSub.GainBits(), d.noise); err != nil {
			return err
		}
		qmfMerge(d.low2, d.high2, d.low)
		topSub, err := d.readSBHeader(b)
		if err != nil {
			return err
		}
		if err := d.sbTop.decode(b, d.high, topSub.ExcitationBits(), topSub.GainBits(), d.noise); err != nil {
			return err
		}
		qmfMerge(d.low, d.high, d.frame)
	}

	d.nbSubmode = nbSub
	d.finishFrame(out)
	d.plcCount = 0
	return nil
}

// readFrameHeader consumes in-band requests until it reaches a frame
// header, then returns the frame's narrowband submode.
func (d *Decoder) readFrameHeader(b *bits.Bits) (mode.NBSubmode, error) {
	for {
		flag, err := b.Unpack(1)
		if err != nil {
			return 0, err
		}
		if flag == 1 {
			if err := d.handleInBand(b); err != nil {
				return 0, err
			}
			continue
		}
		sm, err := b.Unpack(4)
		if err != nil {
			return 0, err
		}
		if sm == bits.TerminatorSubmode {
			return 0, ErrEndOfStream
		}
		nbSub, err := mode.NBSubmodeFromInt(int(sm))
		if err != nil {
			return 0, err
		}
		return nbSub, nil
	}
}

func (d *Decoder) readSBHeader(b *bits.Bits) (mode.SBSubmode, error) {
	if !d.submodeEncoding {
		return d.sbSubmode, nil
	}
	sm, err := b.Unpack(3)
	if err != nil {
		return 0, err
	}
	sbSub, err := mode.SBSubmodeFromInt(int(sm))
	if err != nil {
		return 0, err
	}
	d.sbSubmode = sbSub
	return sbSub, nil
}

func (d *Decoder) handleInBand(b *bits.Bits) error {
	code, err := b.Unpack(4)
	if err != nil {
		return err
	}
	size := InBandSize(int(code))

	var payload uint64
	if size <= 32 {
		v, err := b.Unpack(size)
		if err != nil {
			return err
		}
		payload = uint64(v)
	} else {
		hi, err := b.Unpack(32)
		if err != nil {
			return err
		}
		lo, err := b.Unpack(size - 32)
		if err != nil {
			return err
		}
		payload = uint64(hi)<<uint(size-32) | uint64(lo)
	}

	if h, ok := d.inband[code]; ok {
		return h(payload, size)
	}
	return nil
}

// DecodeLost conceals a lost frame: the last good gain envelope is
// replayed on shaped noise, attenuated further for every consecutive
// loss. PLCTuning controls how fast the decay is.
func (d *Decoder) DecodeLost(out []int16) error {
	if err := d.checkOpen(); err != nil {
		return err
	}
	if len(out) != d.FrameSize() {
		return fmt.Errorf("%w: got %d, want %d", ErrBadFrameSize, len(out), d.FrameSize())
	}

	decay := clampf(0.9-0.005*float32(d.plcTuning), 0.3, 0.9)
	atten := float32(math.Pow(float64(decay), float64(d.plcCount+1)))

	switch d.mode {
	case mode.NarrowBand:
		d.nb.conceal(d.frame, atten, d.noise)
	case mode.WideBand:
		d.nb.conceal(d.low, atten, d.noise)
		d.sb.conceal(d.high, atten, d.noise)
		qmfMerge(d.low, d.high, d.frame)
	case mode.UltraWideBand:
		d.nb.conceal(d.low2, atten, d.noise)
		d.sb.conceal(d.high2, atten, d.noise)
		qmfMerge(d.low2, d.high2, d.low)
		d.sbTop.conceal(d.high, atten, d.noise)
		qmfMerge(d.low, d.high, d.frame)
	}

	d.finishFrame(out)
	d.plcCount++
	return nil
}

func (d *Decoder) finishFrame(out []int16) {
	if d.highpassEnabled {
		d.hp.process(d.frame)
	}
	utils.Float32SliceToInt16(d.frame, out)
}

// RegisterInBand installs a handler for an in-band request code
// (0..15). Codes without a handler are skipped silently.
func (d *Decoder) RegisterInBand(code int, h InBandHandler) error {
	if code < 0 || code > 15 {
		return fmt.Errorf("%w: in-band code %d", ErrInvalidParameter, code)
	}
	d.inband[uint32(code)] = h
	return nil
}

// SetQuality sets the fixed submodes used when the stream carries no
// per-frame submode (submode encoding disabled on the encoder).
func (d *Decoder) SetQuality(q int) error {
	if q < 0 || q > 10 {
		return fmt.Errorf("%w: quality %d", ErrInvalidParameter, q)
	}
	d.nbSubmode = mode.NBQualityMap[q]
	d.sbSubmode = mode.SBQualityMap[q]
	return nil
}

// Bitrate returns the rate implied by the most recently decoded
// submodes.
func (d *Decoder) Bitrate() int {
	return d.mode.BitrateFor(d.nbSubmode, d.sbSubmode)
}

// Reset clears all signal state. Settings and registered in-band
// handlers are kept.
func (d *Decoder) Reset() {
	d.nb.reset()
	if d.sb != nil {
		d.sb.reset()
	}
	if d.sbTop != nil {
		d.sbTop.reset()
	}
	d.hp.reset()
	d.plcCount = 0
}

// Close releases the session. Further calls return ErrClosed.
func (d *Decoder) Close() error {
	d.closed = true
	return nil
}
