// SPDX-License-Identifier: EPL-2.0

package codec

import "math"

// qmfSplit halves the band of x into a low and a high band using a
// two-tap quadrature pair. len(x) must be even; low and high must
// each hold len(x)/2 samples. The pair reconstructs exactly under
// qmfMerge.
func qmfSplit(x, low, high []float32) {
	for i := range len(x) / 2 {
		a := x[2*i]
		b := x[2*i+1]
		low[i] = (a + b) * 0.5
		high[i] = (a - b) * 0.5
	}
}

// qmfMerge is the synthesis counterpart of qmfSplit.
func qmfMerge(low, high, out []float32) {
	for i := range low {
		out[2*i] = low[i] + high[i]
		out[2*i+1] = low[i] - high[i]
	}
}

// highpass is a second-order IIR filter removing content below
// roughly 100Hz. Both the encoder input path and the decoder output
// path run one when enabled.
type highpass struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

const highpassCutoff = 100.0

func newHighpass(sampleRate int) *highpass {
	w0 := 2 * math.Pi * highpassCutoff / float64(sampleRate)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * 0.7071)

	a0 := 1 + alpha
	f := &highpass{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
	return f
}

func (f *highpass) reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// process filters x in place.
func (f *highpass) process(x []float32) {
	for i, v := range x {
		in := float64(v)
		out := f.b0*in + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
		f.x2, f.x1 = f.x1, in
		f.y2, f.y1 = f.y1, out
		x[i] = float32(out)
	}
}

// noiseGen produces unit-RMS pseudo noise for comfort noise frames,
// unquantized high bands and loss concealment. Plain LCG; the decoder
// owns the only instance so no seed is transmitted.
type noiseGen struct {
	state uint32
}

func newNoiseGen() *noiseGen {
	return &noiseGen{state: 0x5EED}
}

// sqrt(3) scales a uniform [-1, 1) variable to unit RMS.
const noiseScale = 1.7320508

func (g *noiseGen) next() float32 {
	g.state = g.state*1664525 + 1013904223
	return float32(int32(g.state)) / 2147483648.0 * noiseScale
}

// rms returns the root mean square of x.
func rms(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}
	var acc float64
	for _, v := range x {
		acc += float64(v) * float64(v)
	}
	return float32(math.Sqrt(acc / float64(len(x))))
}
