// SPDX-License-Identifier: EPL-2.0

package mode

import "fmt"

// NBSubmode selects the narrowband payload layout of a frame. The
// identifiers are the 4-bit values written in the frame header;
// 15 is reserved for the stream terminator.
//
// As wideband and ultra-wideband streams embed a narrowband stream,
// these submodes apply to those modes as well.
type NBSubmode int

const (
	// NBVocoderLike carries only the gain envelope. The decoder
	// synthesizes noise shaped by the gains; used for comfort noise.
	NBVocoderLike NBSubmode = 1
	// NBVeryLow uses 1-bit excitation with a fine gain envelope.
	NBVeryLow NBSubmode = 2
	// NBLow uses 2-bit excitation with a coarse gain envelope.
	NBLow NBSubmode = 3
	// NBMedium uses 2-bit excitation with a fine gain envelope.
	NBMedium NBSubmode = 4
	// NBHigh uses 3-bit excitation with a coarse gain envelope.
	NBHigh NBSubmode = 5
	// NBVeryHigh uses 3-bit excitation with a fine gain envelope.
	NBVeryHigh NBSubmode = 6
	// NBExtremeHigh uses 4-bit excitation.
	NBExtremeHigh NBSubmode = 7
	// NBExtremeLow uses 1-bit excitation with a coarse gain envelope.
	NBExtremeLow NBSubmode = 8
)

// nbLayout maps a submode to its payload parameters.
var nbLayout = map[NBSubmode]struct {
	excBits  int // bits per excitation sample
	gainBits int // bits per subframe gain
}{
	NBVocoderLike: {0, 5},
	NBExtremeLow:  {1, 4},
	NBVeryLow:     {1, 6},
	NBLow:         {2, 4},
	NBMedium:      {2, 6},
	NBHigh:        {3, 4},
	NBVeryHigh:    {3, 6},
	NBExtremeHigh: {4, 6},
}

// NBRateOrder lists the narrowband submodes from lowest to highest
// bitrate. Rate control walks this list.
var NBRateOrder = []NBSubmode{
	NBVocoderLike, NBExtremeLow, NBVeryLow, NBLow,
	NBMedium, NBHigh, NBVeryHigh, NBExtremeHigh,
}

// NBQualityMap maps a quality setting of 0..10 to a submode.
var NBQualityMap = [11]NBSubmode{
	NBVocoderLike, NBExtremeLow, NBVeryLow, NBLow, NBLow,
	NBMedium, NBMedium, NBHigh, NBHigh, NBVeryHigh, NBExtremeHigh,
}

// NBSubmodeFromInt converts a frame header value into an NBSubmode.
func NBSubmodeFromInt(v int) (NBSubmode, error) {
	if _, ok := nbLayout[NBSubmode(v)]; !ok {
		return 0, fmt.Errorf("%w: narrowband submode %d", ErrInvalidSubmode, v)
	}
	return NBSubmode(v), nil
}

// Valid reports whether s names a known narrowband submode.
func (s NBSubmode) Valid() bool {
	_, ok := nbLayout[s]
	return ok
}

// ExcitationBits returns the bits spent per excitation sample.
func (s NBSubmode) ExcitationBits() int { return nbLayout[s].excBits }

// GainBits returns the bits spent per subframe gain.
func (s NBSubmode) GainBits() int { return nbLayout[s].gainBits }

// FrameBits returns the encoded size in bits of one narrowband frame,
// including the 5-bit header.
func (s NBSubmode) FrameBits() int {
	l := nbLayout[s]
	return 5 + SubframesPerFrame*l.gainBits + NarrowBand.FrameSize()*l.excBits
}

// Bitrate returns the bits per second of a fixed-rate narrowband
// stream using this submode.
func (s NBSubmode) Bitrate() int { return s.FrameBits() * FramesPerSecond }

func (s NBSubmode) String() string {
	switch s {
	case NBVocoderLike:
		return "vocoder-like"
	case NBVeryLow:
		return "very-low"
	case NBLow:
		return "low"
	case NBMedium:
		return "medium"
	case NBHigh:
		return "high"
	case NBVeryHigh:
		return "very-high"
	case NBExtremeHigh:
		return "extreme-high"
	case NBExtremeLow:
		return "extreme-low"
	default:
		return fmt.Sprintf("nb-submode(%d)", int(s))
	}
}

// SBSubmode selects the high-band payload layout for wideband and
// ultra-wideband frames. The identifier is the 3-bit value written
// after the embedded lower-band frame.
type SBSubmode int

const (
	// SBNoQuantize carries no excitation for the high band, only the
	// gain envelope. The decoder fills the band with shaped noise.
	// The ultra-wideband top band always uses this submode.
	SBNoQuantize SBSubmode = 1
	// SBQuantizedLow quantizes the high-band excitation at 1 bit per sample.
	SBQuantizedLow SBSubmode = 2
	// SBQuantizedMedium quantizes the high-band excitation at 2 bits per sample.
	SBQuantizedMedium SBSubmode = 3
	// SBQuantizedHigh quantizes the high-band excitation at 3 bits per sample.
	SBQuantizedHigh SBSubmode = 4
)

var sbLayout = map[SBSubmode]struct {
	excBits  int
	gainBits int
}{
	SBNoQuantize:      {0, 5},
	SBQuantizedLow:    {1, 6},
	SBQuantizedMedium: {2, 6},
	SBQuantizedHigh:   {3, 6},
}

// SBRateOrder lists the high-band submodes from lowest to highest rate.
var SBRateOrder = []SBSubmode{
	SBNoQuantize, SBQuantizedLow, SBQuantizedMedium, SBQuantizedHigh,
}

// SBQualityMap maps a quality setting of 0..10 to a high-band submode.
var SBQualityMap = [11]SBSubmode{
	SBNoQuantize, SBNoQuantize, SBNoQuantize, SBNoQuantize,
	SBNoQuantize, SBNoQuantize, SBQuantizedLow, SBQuantizedLow,
	SBQuantizedMedium, SBQuantizedMedium, SBQuantizedHigh,
}

// SBSubmodeFromInt converts a frame header value into an SBSubmode.
func SBSubmodeFromInt(v int) (SBSubmode, error) {
	if _, ok := sbLayout[SBSubmode(v)]; !ok {
		return 0, fmt.Errorf("%w: high-band submode %d", ErrInvalidSubmode, v)
	}
	return SBSubmode(v), nil
}

// Valid reports whether s names a known high-band submode.
func (s SBSubmode) Valid() bool {
	_, ok := sbLayout[s]
	return ok
}

// ExcitationBits returns the bits spent per excitation sample.
func (s SBSubmode) ExcitationBits() int { return sbLayout[s].excBits }

// GainBits returns the bits spent per subframe gain.
func (s SBSubmode) GainBits() int { return sbLayout[s].gainBits }

// BandBits returns the encoded size in bits of a high-band section
// covering bandSize samples, including the 3-bit section header.
func (s SBSubmode) BandBits(bandSize int) int {
	l := sbLayout[s]
	return 3 + SubframesPerFrame*l.gainBits + bandSize*l.excBits
}

func (s SBSubmode) String() string {
	switch s {
	case SBNoQuantize:
		return "no-quantize"
	case SBQuantizedLow:
		return "quantized-low"
	case SBQuantizedMedium:
		return "quantized-medium"
	case SBQuantizedHigh:
		return "quantized-high"
	default:
		return fmt.Sprintf("sb-submode(%d)", int(s))
	}
}
