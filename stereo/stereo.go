// SPDX-License-Identifier: EPL-2.0

package stereo

import (
	"fmt"
	"math"

	"github.com/ik5/gospeex/bits"
	"github.com/ik5/gospeex/codec"
)

// balanceRangeDB is the largest channel imbalance the 5-bit balance
// index can express. Anything beyond is clamped.
const balanceRangeDB = 25.0

// ratioQuant holds the representable total-to-mid energy ratios. A
// ratio of 1 means the channels are in phase; 2 means they are fully
// uncorrelated.
var ratioQuant = [4]float32{1, 1.26, 1.6, 2}

// State carries the stereo image between frames. Use one per stream
// on each side; it is not safe for concurrent use.
type State struct {
	balance float32 // left/right energy ratio
	ratio   float32 // (left+right) energy over twice the mid energy

	// Smoothed reconstruction gains, so the image does not jump at
	// frame boundaries.
	gLeft, gRight float32
}

// NewState returns a centered stereo state.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset recenters the image as if the stream just started.
func (s *State) Reset() {
	s.balance = 1
	s.ratio = 1
	s.gLeft = 1
	s.gRight = 1
}

// Encode folds one interleaved stereo frame down to mono and appends
// the stereo image as an in-band request to b. mono receives
// len(interleaved)/2 samples and is what the mono encoder should be
// fed next, so the request precedes the frame it describes.
func (s *State) Encode(interleaved []int16, mono []int16, b *bits.Bits) error {
	if len(interleaved) == 0 || len(interleaved)%2 != 0 {
		return fmt.Errorf("%w: interleaved length %d", ErrBadInput, len(interleaved))
	}
	if len(mono) != len(interleaved)/2 {
		return fmt.Errorf("%w: mono length %d, want %d", ErrBadInput, len(mono), len(interleaved)/2)
	}

	var eLeft, eRight, eMid float64
	for i := range mono {
		l := float64(interleaved[2*i])
		r := float64(interleaved[2*i+1])
		m := (l + r) / 2
		mono[i] = int16(m)

		eLeft += l * l
		eRight += r * r
		eMid += m * m
	}

	balance := float32((eLeft + 1) / (eRight + 1))
	ratio := float32((eLeft + eRight + 1) / (2*eMid + 1))

	balIdx, sign := quantizeBalance(balance)
	ratioIdx := quantizeRatio(ratio)

	b.Pack(1, 1)
	b.Pack(codec.InBandStereo, 4)
	b.Pack(balIdx, 5)
	b.Pack(sign, 1)
	b.Pack(ratioIdx, 2)
	return nil
}

// Handler returns the in-band handler that feeds received stereo
// image requests into the state. Register it on the decoder:
//
//	dec.RegisterInBand(codec.InBandStereo, st.Handler())
func (s *State) Handler() codec.InBandHandler {
	return func(payload uint64, nbits int) error {
		if nbits != codec.InBandSize(codec.InBandStereo) {
			return fmt.Errorf("%w: stereo payload %d bits", ErrBadInput, nbits)
		}
		balIdx := uint32(payload>>3) & 0x1f
		sign := uint32(payload>>2) & 1
		ratioIdx := uint32(payload) & 3

		s.balance = dequantizeBalance(balIdx, sign)
		s.ratio = ratioQuant[ratioIdx]
		return nil
	}
}

// Decode expands a decoded mono frame back to interleaved stereo
// using the last received image. len(interleaved) must be 2*len(mono).
func (s *State) Decode(mono []int16, interleaved []int16) error {
	if len(interleaved) != 2*len(mono) {
		return fmt.Errorf("%w: interleaved length %d, want %d", ErrBadInput, len(interleaved), 2*len(mono))
	}

	// Channel gains that restore both the balance and the total
	// energy of the original pair.
	targetL := float32(math.Sqrt(float64(2 * s.ratio * s.balance / (1 + s.balance))))
	targetR := float32(math.Sqrt(float64(2 * s.ratio / (1 + s.balance))))

	s.gLeft = 0.8*s.gLeft + 0.2*targetL
	s.gRight = 0.8*s.gRight + 0.2*targetR

	for i, m := range mono {
		interleaved[2*i] = clamp16(float32(m) * s.gLeft)
		interleaved[2*i+1] = clamp16(float32(m) * s.gRight)
	}
	return nil
}

func quantizeBalance(balance float32) (idx, sign uint32) {
	db := 10 * math.Log10(float64(balance))
	if db < 0 {
		sign = 1
		db = -db
	}
	step := balanceRangeDB / 31
	i := int(db/step + 0.5)
	if i > 31 {
		i = 31
	}
	return uint32(i), sign
}

func dequantizeBalance(idx, sign uint32) float32 {
	step := balanceRangeDB / 31
	db := float64(idx) * step
	if sign == 1 {
		db = -db
	}
	return float32(math.Pow(10, db/10))
}

func quantizeRatio(ratio float32) uint32 {
	best := 0
	for i := 1; i < len(ratioQuant); i++ {
		if abs32(ratioQuant[i]-ratio) < abs32(ratioQuant[best]-ratio) {
			best = i
		}
	}
	return uint32(best)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp16(x float32) int16 {
	switch {
	case x > 32767:
		return 32767
	case x < -32768:
		return -32768
	}
	return int16(x)
}
