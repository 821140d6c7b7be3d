// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"

	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/mode"
	"github.com/ik5/gospeex/utils"
)

// Encoder compresses 20ms PCM frames. It is not safe for concurrent
// use; run one encoder per stream.
type Encoder struct {
	control

	nb    *bandCoder
	sb    *bandCoder
	sbTop *bandCoder
	hp    *highpass

	nbSubmode mode.NBSubmode
	sbSubmode mode.SBSubmode
	quality   int

	vbr           bool
	vbrQuality    float32
	vbrMaxBitrate int
	vad           bool
	abr           int
	abrQuality    float32
	noiseFloor    float32

	frame       []float32
	low, high   []float32
	low2, high2 []float32
	out         bits.Bits
}

// NewEncoder creates an encoder session for the given mode. Defaults
// follow the decoder-compatible baseline: quality 8, constant rate,
// highpass enabled, submode encoding enabled.
func NewEncoder(id mode.ID) (*Encoder, error) {
	ctl, err := newControl(id)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		control:    ctl,
		nb:         newBandCoder(),
		hp:         newHighpass(id.SampleRate()),
		vbrQuality: 8,
		abrQuality: 8,
		noiseFloor: 0.002,
		frame:      make([]float32, id.FrameSize()),
	}
	e.setQualitySubmodes(8)

	switch id {
	case mode.WideBand:
		e.sb = newBandCoder()
		e.low = make([]float32, id.FrameSize()/2)
		e.high = make([]float32, id.FrameSize()/2)
	case mode.UltraWideBand:
		e.sb = newBandCoder()
		e.sbTop = newBandCoder()
		e.low = make([]float32, id.FrameSize()/2)
		e.high = make([]float32, id.FrameSize()/2)
		e.low2 = make([]float32, id.FrameSize()/4)
		e.high2 = make([]float32, id.FrameSize()/4)
	}
	return e, nil
}

// Encode compresses one frame of PCM and returns the encoded bytes,
// zero padded to a byte boundary. len(pcm) must equal FrameSize.
//
// The returned slice is only valid until the next call.
func (e *Encoder) Encode(pcm []int16) ([]byte, error) {
	e.out.Reset()
	if err := e.EncodeTo(pcm, &e.out); err != nil {
		return nil, err
	}
	e.out.PadToByte()
	return e.out.Bytes(), nil
}

// EncodeTo appends one encoded frame to b. Several frames may be
// packed into the same buffer; append a terminator (b.InsertTerminator)
// before transmitting so padding is not misread as a frame.
func (e *Encoder) EncodeTo(pcm []int16, b *bits.Bits) error {
	if err := e.checkOpen(); err != nil {
		return err
	}
	if len(pcm) != e.FrameSize() {
		return fmt.Errorf("%w: got %d, want %d", ErrBadFrameSize, len(pcm), e.FrameSize())
	}

	utils.Int16SliceToFloat32(pcm, e.frame)
	if e.highpassEnabled {
		e.hp.process(e.frame)
	}

	level := rms(e.frame)
	speech := e.updateVAD(level)

	nbSub, sbSub := e.pickSubmodes(level, speech)

	start := b.Len()
	switch e.mode {
	case mode.NarrowBand:
		e.writeNB(b, e.frame, nbSub)
	case mode.WideBand:
		qmfSplit(e.frame, e.low, e.high)
		e.writeNB(b, e.low, nbSub)
		e.writeSB(b, e.sb, e.high, sbSub)
	case mode.UltraWideBand:
		qmfSplit(e.frame, e.low, e.high)
		qmfSplit(e.low, e.low2, e.high2)
		e.writeNB(b, e.low2, nbSub)
		e.writeSB(b, e.sb, e.high2, sbSub)
		e.writeSB(b, e.sbTop, e.high, mode.SBNoQuantize)
	}

	e.updateABR(b.Len() - start)
	return nil
}

func (e *Encoder) writeNB(b *bits.Bits, x []float32, sub mode.NBSubmode) {
	if e.submodeEncoding {
		b.Pack(0, 1)
		b.Pack(uint32(sub), 4)
	}
	e.nb.encode(b, x, sub.ExcitationBits(), sub.GainBits())
}

func (e *Encoder) writeSB(b *bits.Bits, c *bandCoder, x []float32, sub mode.SBSubmode) {
	if e.submodeEncoding {
		b.Pack(uint32(sub), 3)
	}
	c.encode(b, x, sub.ExcitationBits(), sub.GainBits())
}

// updateVAD tracks the noise floor and classifies the frame.
func (e *Encoder) updateVAD(level float32) bool {
	if level < e.noiseFloor {
		e.noiseFloor = 0.9*e.noiseFloor + 0.1*level
	} else {
		e.noiseFloor *= 1.02
	}
	e.noiseFloor = clampf(e.noiseFloor, 1e-5, 0.02)
	return level > 3*e.noiseFloor+0.0005
}

// pickSubmodes decides the per-frame layout from the VAD decision and
// the rate-control settings.
func (e *Encoder) pickSubmodes(level float32, speech bool) (mode.NBSubmode, mode.SBSubmode) {
	if e.vad && !speech {
		return mode.NBVocoderLike, mode.SBNoQuantize
	}

	nbSub, sbSub := e.nbSubmode, e.sbSubmode
	if e.vbr {
		q := e.vbrQuality
		if e.abr > 0 {
			q = e.abrQuality
		}
		qi := int(q + 0.5)

		switch {
		case level < 0.003:
			// Near silence: gains alone carry it.
			return mode.NBVocoderLike, mode.SBNoQuantize
		case level < 0.02:
			qi -= 2
		}
		if qi < 0 {
			qi = 0
		}
		if qi > 10 {
			qi = 10
		}
		nbSub, sbSub = mode.NBQualityMap[qi], mode.SBQualityMap[qi]
	}

	if e.vbrMaxBitrate > 0 {
		nbSub, sbSub = e.capSubmodes(nbSub, sbSub, e.vbrMaxBitrate)
	}
	return nbSub, sbSub
}

// capSubmodes lowers the submode pair until the frame rate fits max.
func (e *Encoder) capSubmodes(nb mode.NBSubmode, sb mode.SBSubmode, max int) (mode.NBSubmode, mode.SBSubmode) {
	for e.mode.BitrateFor(nb, sb) > max {
		if si := rateIndexSB(sb); si > 0 {
			sb = mode.SBRateOrder[si-1]
			continue
		}
		ni := rateIndexNB(nb)
		if ni == 0 {
			break
		}
		nb = mode.NBRateOrder[ni-1]
	}
	return nb, sb
}

func (e *Encoder) updateABR(frameBits int) {
	if e.abr <= 0 {
		return
	}
	actual := frameBits * mode.FramesPerSecond
	drift := float32(actual-e.abr) / float32(e.abr)
	e.abrQuality = clampf(e.abrQuality-0.5*drift, 0, 10)
}

func rateIndexNB(s mode.NBSubmode) int {
	for i, v := range mode.NBRateOrder {
		if v == s {
			return i
		}
	}
	return 0
}

func rateIndexSB(s mode.SBSubmode) int {
	for i, v := range mode.SBRateOrder {
		if v == s {
			return i
		}
	}
	return 0
}

func (e *Encoder) setQualitySubmodes(q int) {
	e.quality = q
	e.nbSubmode = mode.NBQualityMap[q]
	e.sbSubmode = mode.SBQualityMap[q]
}

// SetQuality sets the constant-rate quality (0..10, default 8) by
// selecting the submode pair from the quality maps.
func (e *Encoder) SetQuality(q int) error {
	if q < 0 || q > 10 {
		return fmt.Errorf("%w: quality %d", ErrInvalidParameter, q)
	}
	e.setQualitySubmodes(q)
	return nil
}

// SetBitrate selects the highest submode pair whose rate does not
// exceed bps.
func (e *Encoder) SetBitrate(bps int) error {
	if bps <= 0 {
		return fmt.Errorf("%w: bitrate %d", ErrInvalidParameter, bps)
	}
	nb, sb := mode.NBRateOrder[0], mode.SBRateOrder[0]
	for q := 10; q >= 0; q-- {
		cand, candSB := mode.NBQualityMap[q], mode.SBQualityMap[q]
		if e.mode.BitrateFor(cand, candSB) <= bps {
			nb, sb = cand, candSB
			break
		}
	}
	e.nbSubmode, e.sbSubmode = nb, sb
	return nil
}

// Bitrate returns the rate of the configured constant-rate submodes.
func (e *Encoder) Bitrate() int {
	return e.mode.BitrateFor(e.nbSubmode, e.sbSubmode)
}

// SetVBR enables variable bitrate: the submode is chosen per frame
// from the VBR quality and the frame energy.
func (e *Encoder) SetVBR(enabled bool) { e.vbr = enabled }

// VBR reports whether variable bitrate is enabled.
func (e *Encoder) VBR() bool { return e.vbr }

// SetVBRQuality sets the VBR quality (0..10). Out-of-range values
// are clamped.
func (e *Encoder) SetVBRQuality(q float32) {
	e.vbrQuality = clampf(q, 0, 10)
}

// VBRQuality returns the VBR quality.
func (e *Encoder) VBRQuality() float32 { return e.vbrQuality }

// SetVBRMaxBitrate caps the per-frame rate in VBR mode. Zero removes
// the cap.
func (e *Encoder) SetVBRMaxBitrate(bps int) error {
	if bps < 0 {
		return fmt.Errorf("%w: max bitrate %d", ErrInvalidParameter, bps)
	}
	e.vbrMaxBitrate = bps
	return nil
}

// VBRMaxBitrate returns the VBR bitrate cap (zero means none).
func (e *Encoder) VBRMaxBitrate() int { return e.vbrMaxBitrate }

// SetVAD enables voice activity detection: frames classified as
// non-speech are sent as comfort noise.
func (e *Encoder) SetVAD(enabled bool) { e.vad = enabled }

// VAD reports whether voice activity detection is enabled.
func (e *Encoder) VAD() bool { return e.vad }

// SetABR sets an average bitrate target in bits per second and
// enables VBR. Zero disables ABR.
func (e *Encoder) SetABR(bps int) error {
	if bps < 0 {
		return fmt.Errorf("%w: abr %d", ErrInvalidParameter, bps)
	}
	e.abr = bps
	if bps > 0 {
		e.vbr = true
		e.abrQuality = e.vbrQuality
	}
	return nil
}

// ABR returns the average bitrate target (zero means disabled).
func (e *Encoder) ABR() int { return e.abr }

// Quality returns the constant-rate quality setting.
func (e *Encoder) Quality() int { return e.quality }

// Reset clears all signal state (quantizers, filters, VAD floor) as
// if the session were freshly created. Settings are kept.
func (e *Encoder) Reset() {
	e.nb.reset()
	if e.sb != nil {
		e.sb.reset()
	}
	if e.sbTop != nil {
		e.sbTop.reset()
	}
	e.hp.reset()
	e.noiseFloor = 0.002
	e.abrQuality = e.vbrQuality
}

// Close releases the session. Further calls return ErrClosed.
func (e *Encoder) Close() error {
	e.closed = true
	return nil
}
