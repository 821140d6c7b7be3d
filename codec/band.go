// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/mode"
)

// bandCoder encodes or decodes one band of a frame: a four-subframe
// gain envelope followed by optional quantized excitation. The
// encoder and decoder sides each hold one bandCoder per band so the
// excitation quantizer state persists across frames.
type bandCoder struct {
	quant     excQuant
	lastGains [mode.SubframesPerFrame]float32
}

func newBandCoder() *bandCoder {
	return &bandCoder{quant: newExcQuant()}
}

func (c *bandCoder) reset() {
	c.quant.reset()
	for i := range c.lastGains {
		c.lastGains[i] = 0
	}
}

// encode writes the band payload for x. excBits of zero means gains
// only (vocoder-like or unquantized high band).
func (c *bandCoder) encode(b *bits.Bits, x []float32, excBits, gainBits int) {
	sub := len(x) / mode.SubframesPerFrame
	for s := range mode.SubframesPerFrame {
		seg := x[s*sub : (s+1)*sub]

		idx := quantizeGain(rms(seg), gainBits)
		b.Pack(idx, gainBits)
		if excBits == 0 {
			continue
		}

		gain := dequantizeGain(idx, gainBits)
		for _, v := range seg {
			code, _ := c.quant.quantize(v/gain, excBits)
			b.Pack(code, excBits)
		}
	}
}

// decode fills out with the reconstructed band. Bands without
// excitation are synthesized from noise shaped by the gain envelope.
func (c *bandCoder) decode(b *bits.Bits, out []float32, excBits, gainBits int, noise *noiseGen) error {
	sub := len(out) / mode.SubframesPerFrame
	for s := range mode.SubframesPerFrame {
		idx, err := b.Unpack(gainBits)
		if err != nil {
			return err
		}
		gain := dequantizeGain(idx, gainBits)
		c.lastGains[s] = gain

		seg := out[s*sub : (s+1)*sub]
		if excBits == 0 {
			for i := range seg {
				seg[i] = gain * noise.next()
			}
			continue
		}
		for i := range seg {
			code, err := b.Unpack(excBits)
			if err != nil {
				return err
			}
			seg[i] = gain * c.quant.reconstruct(code, excBits)
		}
	}
	return nil
}

// conceal synthesizes a substitute band from the last good gain
// envelope, attenuated for consecutive losses.
func (c *bandCoder) conceal(out []float32, atten float32, noise *noiseGen) {
	sub := len(out) / mode.SubframesPerFrame
	for s := range mode.SubframesPerFrame {
		gain := c.lastGains[s] * atten
		seg := out[s*sub : (s+1)*sub]
		for i := range seg {
			seg[i] = gain * noise.next()
		}
	}
}
