// SPDX-License-Identifier: EPL-2.0

package mode

import "fmt"

// ID selects one of the three codec modes.
type ID int

const (
	// NarrowBand is the 8kHz mode.
	NarrowBand ID = 0
	// WideBand is the 16kHz mode. It embeds a narrowband stream for
	// the lower half of the spectrum.
	WideBand ID = 1
	// UltraWideBand is the 32kHz mode. It embeds a wideband stream.
	UltraWideBand ID = 2
)

// FromInt converts a wire or header value into an ID.
func FromInt(v int) (ID, error) {
	switch ID(v) {
	case NarrowBand, WideBand, UltraWideBand:
		return ID(v), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, v)
	}
}

func (id ID) String() string {
	switch id {
	case NarrowBand:
		return "narrowband"
	case WideBand:
		return "wideband"
	case UltraWideBand:
		return "ultra-wideband"
	default:
		return fmt.Sprintf("mode(%d)", int(id))
	}
}

// Valid reports whether id names a known mode.
func (id ID) Valid() bool {
	return id == NarrowBand || id == WideBand || id == UltraWideBand
}

// FrameSize returns the number of samples in one 20ms frame.
func (id ID) FrameSize() int {
	switch id {
	case NarrowBand:
		return 160
	case WideBand:
		return 320
	case UltraWideBand:
		return 640
	default:
		return 0
	}
}

// SampleRate returns the nominal sampling rate of the mode in Hz.
func (id ID) SampleRate() int {
	switch id {
	case NarrowBand:
		return 8000
	case WideBand:
		return 16000
	case UltraWideBand:
		return 32000
	default:
		return 0
	}
}

// FramesPerSecond is shared by all modes: every frame covers 20ms.
const FramesPerSecond = 50

// SubframesPerFrame is the gain envelope resolution. Each band of a
// frame carries one quantized gain per subframe.
const SubframesPerFrame = 4

// Mode bundles the static properties of a codec mode.
type Mode struct {
	id ID
}

// Lookup returns the Mode for id.
func Lookup(id ID) (*Mode, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(id))
	}
	return &Mode{id: id}, nil
}

func (m *Mode) ID() ID          { return m.id }
func (m *Mode) FrameSize() int  { return m.id.FrameSize() }
func (m *Mode) SampleRate() int { return m.id.SampleRate() }
func (m *Mode) String() string  { return m.id.String() }

// FrameBits returns the total encoded size in bits of one frame of
// this mode for the given submode pair. sb is ignored for narrowband.
// The ultra-wideband top band always uses SBNoQuantize.
func (id ID) FrameBits(nb NBSubmode, sb SBSubmode) int {
	nbBits := nb.FrameBits()
	switch id {
	case NarrowBand:
		return nbBits
	case WideBand:
		return nbBits + sb.BandBits(id.FrameSize()/2)
	case UltraWideBand:
		wb := nbBits + sb.BandBits(WideBand.FrameSize()/2)
		return wb + SBNoQuantize.BandBits(id.FrameSize()/2)
	default:
		return 0
	}
}

// BitrateFor returns the bitrate in bits per second of a fixed-rate
// stream using the given submode pair.
func (id ID) BitrateFor(nb NBSubmode, sb SBSubmode) int {
	return id.FrameBits(nb, sb) * FramesPerSecond
}
