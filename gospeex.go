// SPDX-License-Identifier: EPL-2.0

package gospeex

import (
	"fmt"
	"io"

	"github.com/ik5/gospeex/audio"
	"github.com/ik5/gospeex/codec"
	"github.com/ik5/gospeex/formats/aiff"
	"github.com/ik5/gospeex/formats/mp3"
	"github.com/ik5/gospeex/formats/spx"
	"github.com/ik5/gospeex/formats/vorbis"
	"github.com/ik5/gospeex/formats/wav"
	"github.com/ik5/gospeex/mode"
	"github.com/ik5/gospeex/utils"
)

// EncodeOptions configures the Encode pipeline. The zero value is not
// useful; start from DefaultEncodeOptions.
type EncodeOptions struct {
	// Mode selects narrowband, wideband or ultra-wideband.
	Mode mode.ID

	// Channels in the output stream: 1 or 2. Stereo input is folded
	// to mono unless 2 is requested.
	Channels int

	// Quality sets the constant-rate quality (0..10).
	Quality int

	// VBR enables variable bitrate, steered by VBRQuality.
	VBR        bool
	VBRQuality float32

	// VAD sends non-speech frames as comfort noise.
	VAD bool

	// ABR, when nonzero, targets an average bitrate and implies VBR.
	ABR int

	// FramesPerPacket groups frames into Ogg packets.
	FramesPerPacket int
}

// DefaultEncodeOptions returns narrowband mono at quality 8, one
// frame per packet.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Mode:            mode.NarrowBand,
		Channels:        1,
		Quality:         8,
		VBRQuality:      8,
		FramesPerPacket: 1,
	}
}

// Encode runs the whole pipeline: resamples src to the mode's rate,
// mixes channels as requested, encodes frame by frame and writes an
// Ogg Speex stream to w. The trailing partial frame, if any, is zero
// padded.
func Encode(w io.Writer, src audio.Source, opts EncodeOptions) error {
	enc, err := codec.NewEncoder(opts.Mode)
	if err != nil {
		return err
	}
	defer enc.Close()

	if err := enc.SetQuality(opts.Quality); err != nil {
		return err
	}
	enc.SetVBR(opts.VBR)
	enc.SetVBRQuality(opts.VBRQuality)
	enc.SetVAD(opts.VAD)
	if opts.ABR > 0 {
		if err := enc.SetABR(opts.ABR); err != nil {
			return err
		}
	}

	channels := opts.Channels
	if channels == 0 {
		channels = 1
	}
	if channels != 1 && channels != 2 {
		return fmt.Errorf("%w: %d channels", codec.ErrInvalidParameter, channels)
	}

	rate := opts.Mode.SampleRate()
	var pcm []int16
	if channels == 1 {
		pcm, _, err = ResampleToMono16(src, rate, 4096)
	} else {
		pcm, err = resampleStereo16(src, rate)
	}
	if err != nil {
		return err
	}

	sw, err := spx.NewWriter(w, enc, channels, opts.FramesPerPacket)
	if err != nil {
		return err
	}

	frame := opts.Mode.FrameSize() * channels
	i := 0
	for ; i+frame <= len(pcm); i += frame {
		if err := sw.WriteFrame(pcm[i : i+frame]); err != nil {
			return err
		}
	}
	if i < len(pcm) {
		last := make([]int16, frame)
		copy(last, pcm[i:])
		if err := sw.WriteFrame(last); err != nil {
			return err
		}
	}
	return sw.Close()
}

// Decode opens an Ogg Speex stream as an audio.Source. Stereo streams
// come out interleaved.
func Decode(r io.Reader) (audio.Source, error) {
	return spx.Decoder{}.Decode(r)
}

// resampleStereo16 converts a two-channel source to interleaved int16
// at targetRate.
func resampleStereo16(src audio.Source, targetRate int) ([]int16, error) {
	if src.Channels() != 2 {
		return nil, fmt.Errorf("%w: stereo output needs a 2-channel source, got %d",
			codec.ErrInvalidParameter, src.Channels())
	}

	resampler := audio.NewResampler(src, targetRate)
	var pcm []int16
	buf := make([]float32, 4096)
	for {
		n, err := resampler.ReadSamples(buf)
		for i := range n {
			pcm = append(pcm, utils.Float32ToInt16(buf[i]))
		}
		if err == io.EOF {
			return pcm, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
}

// NewFormatRegistry returns a registry with every bundled decoder
// registered under its usual file extension.
func NewFormatRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("spx", spx.Decoder{})
	return r
}
