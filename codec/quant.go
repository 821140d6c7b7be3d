// SPDX-License-Identifier: EPL-2.0

package codec

import "math"

// Excitation quantizer step bounds. The input is gain normalized, so
// values stay within a few units of RMS.
const (
	minStep  = 0.001
	maxStep  = 4.0
	initStep = 0.2
)

// excQuant is the adaptive excitation quantizer. The encoder and the
// decoder each run one per band; both sides apply identical state
// updates so the predictor and step size stay in lock step without
// any side information.
//
// Codes are sign/magnitude: the top bit is the sign (1 = negative),
// the remaining bits the magnitude. The one-bit layout degenerates to
// adaptive delta modulation with run-length step control.
type excQuant struct {
	pred float32
	step float32
	run  int
	last uint32
}

func newExcQuant() excQuant {
	return excQuant{step: initStep}
}

func (q *excQuant) reset() {
	q.pred = 0
	q.step = initStep
	q.run = 0
	q.last = 0
}

// quantize encodes x with n bits (1..4) and returns the code along
// with the reconstruction the decoder will produce for it.
func (q *excQuant) quantize(x float32, n int) (uint32, float32) {
	diff := x - q.pred

	if n == 1 {
		code := uint32(0)
		if diff < 0 {
			code = 1
		}
		return code, q.applyDelta(code)
	}

	maxMag := uint32(1)<<uint(n-1) - 1
	sign := uint32(0)
	if diff < 0 {
		sign = 1
		diff = -diff
	}
	mag := uint32(diff / q.step)
	if mag > maxMag {
		mag = maxMag
	}
	code := sign<<uint(n-1) | mag
	return code, q.apply(sign, mag, maxMag)
}

// reconstruct decodes a code produced by quantize with the same n.
func (q *excQuant) reconstruct(code uint32, n int) float32 {
	if n == 1 {
		return q.applyDelta(code & 1)
	}
	maxMag := uint32(1)<<uint(n-1) - 1
	sign := code >> uint(n-1)
	mag := code & maxMag
	return q.apply(sign, mag, maxMag)
}

// apply performs the shared state update: reconstruct the sample,
// adapt the step size from the magnitude, and advance the predictor.
func (q *excQuant) apply(sign, mag, maxMag uint32) float32 {
	delta := (float32(mag) + 0.5) * q.step
	if sign != 0 {
		delta = -delta
	}
	recon := clampf(q.pred+delta, -4, 4)

	switch {
	case mag == maxMag:
		q.step *= 1.5
	case mag == 0:
		q.step *= 0.85
	default:
		q.step *= 0.98
	}
	q.step = clampf(q.step, minStep, maxStep)

	q.pred = recon * 0.98
	return recon
}

// applyDelta is the one-bit variant: step up after three equal codes
// in a row, decay otherwise.
func (q *excQuant) applyDelta(code uint32) float32 {
	delta := 0.5 * q.step
	if code != 0 {
		delta = -delta
	}
	recon := clampf(q.pred+delta, -4, 4)

	if code == q.last {
		q.run++
	} else {
		q.run = 0
	}
	q.last = code
	if q.run >= 2 {
		q.step *= 1.5
	} else {
		q.step *= 0.9
	}
	q.step = clampf(q.step, minStep, maxStep)

	q.pred = recon * 0.98
	return recon
}

// Gain quantization operates in the log domain over a 96dB range.
const (
	gainRangeDB = 96.0
	gainFloor   = 1e-6
)

// quantizeGain maps an RMS value in (0, 1] to an n-bit index.
func quantizeGain(rms float32, n int) uint32 {
	levels := 1 << uint(n)
	db := 20 * math.Log10(float64(rms)+gainFloor)
	idx := int(math.Round((db + gainRangeDB) / gainRangeDB * float64(levels-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > levels-1 {
		idx = levels - 1
	}
	return uint32(idx)
}

// dequantizeGain inverts quantizeGain.
func dequantizeGain(idx uint32, n int) float32 {
	levels := 1 << uint(n)
	db := -gainRangeDB + gainRangeDB*float64(idx)/float64(levels-1)
	return float32(math.Pow(10, db/20))
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
