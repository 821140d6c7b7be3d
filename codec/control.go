// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"

	"github.com/ik5/gospeex/mode"
)

// control holds the settings shared by encoder and decoder sessions.
type control struct {
	mode            mode.ID
	samplingRate    int
	highpassEnabled bool
	submodeEncoding bool
	plcTuning       int
	closed          bool
}

func newControl(id mode.ID) (control, error) {
	if !id.Valid() {
		return control{}, fmt.Errorf("%w: mode %d", ErrInvalidParameter, int(id))
	}
	return control{
		mode:            id,
		samplingRate:    id.SampleRate(),
		highpassEnabled: true,
		submodeEncoding: true,
	}, nil
}

// Mode returns the mode the session was created with.
func (c *control) Mode() mode.ID { return c.mode }

// FrameSize returns the number of samples per frame.
func (c *control) FrameSize() int { return c.mode.FrameSize() }

// Lookahead returns the extra delay in samples introduced by the
// session. The codec operates sample by sample and needs none.
func (c *control) Lookahead() int { return 0 }

// SamplingRate returns the rate used for bitrate computation.
func (c *control) SamplingRate() int { return c.samplingRate }

// SetSamplingRate overrides the rate used for bitrate computation.
// It does not change the frame size.
func (c *control) SetSamplingRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: sampling rate %d", ErrInvalidParameter, rate)
	}
	c.samplingRate = rate
	return nil
}

// Highpass reports whether the highpass filter is enabled.
func (c *control) Highpass() bool { return c.highpassEnabled }

// SetHighpass enables or disables highpass filtering of the input
// (encoder) or output (decoder). Enabled by default.
func (c *control) SetHighpass(enabled bool) { c.highpassEnabled = enabled }

// SubmodeEncoding reports whether each frame carries its submode.
func (c *control) SubmodeEncoding() bool { return c.submodeEncoding }

// SetSubmodeEncoding controls whether the submode is written in each
// frame header. Disabling it removes the per-frame header, in-band
// signalling and the terminator, and breaks interoperability: both
// sides must agree on a fixed submode out of band.
func (c *control) SetSubmodeEncoding(enabled bool) { c.submodeEncoding = enabled }

// PLCTuning returns the expected packet loss percentage.
func (c *control) PLCTuning() int { return c.plcTuning }

// SetPLCTuning sets the expected packet loss percentage (0..100).
// Higher values make loss concealment decay faster.
func (c *control) SetPLCTuning(tuning int) error {
	if tuning < 0 || tuning > 100 {
		return fmt.Errorf("%w: plc tuning %d", ErrInvalidParameter, tuning)
	}
	c.plcTuning = tuning
	return nil
}

func (c *control) checkOpen() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}
