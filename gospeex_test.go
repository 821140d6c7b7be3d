// SPDX-License-Identifier: EPL-2.0

package gospeex_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/gospeex"
	"github.com/ik5/gospeex/codec"
	"github.com/ik5/gospeex/internal/audiotest"
	"github.com/ik5/gospeex/mode"
)

func TestEncodeDecode_Roundtrip(t *testing.T) {
	t.Parallel()

	// Half a second of tone at the codec's native rate.
	src := audiotest.NewSineSource(8000, 1, 4000, 440.0)

	var stream bytes.Buffer
	if err := gospeex.Encode(&stream, src, gospeex.DefaultEncodeOptions()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := gospeex.Decode(bytes.NewReader(stream.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer decoded.Close()

	if decoded.SampleRate() != 8000 || decoded.Channels() != 1 {
		t.Errorf("decoded stream = %d Hz / %d ch, want 8000 / 1",
			decoded.SampleRate(), decoded.Channels())
	}

	var total int
	var energy float64
	buf := make([]float32, 1024)
	for {
		n, err := decoded.ReadSamples(buf)
		for _, v := range buf[:n] {
			energy += float64(v) * float64(v)
		}
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	// 4000 input samples fill exactly 25 narrowband frames.
	if total != 4000 {
		t.Errorf("decoded %d samples, want 4000", total)
	}
	if energy == 0 {
		t.Error("decoded stream is silent")
	}
}

func TestEncodeDecode_PartialFrameIsPadded(t *testing.T) {
	t.Parallel()

	// 250 samples: one full frame plus 90 samples of padding.
	src := audiotest.NewSineSource(8000, 1, 250, 440.0)

	var stream bytes.Buffer
	if err := gospeex.Encode(&stream, src, gospeex.DefaultEncodeOptions()); err != nil {
		t.Fatal(err)
	}

	decoded, err := gospeex.Decode(bytes.NewReader(stream.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer decoded.Close()

	total := 0
	buf := make([]float32, 512)
	for {
		n, err := decoded.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if total != 320 {
		t.Errorf("decoded %d samples, want 320 (two frames)", total)
	}
}

func TestEncodeDecode_Stereo(t *testing.T) {
	t.Parallel()

	// Hard left pan: the decoded image must lean the same way.
	src := audiotest.NewPannedSineSource(8000, 1600, 440.0, 0.5, 0.1)

	opts := gospeex.DefaultEncodeOptions()
	opts.Channels = 2

	var stream bytes.Buffer
	if err := gospeex.Encode(&stream, src, opts); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := gospeex.Decode(bytes.NewReader(stream.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer decoded.Close()

	if decoded.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", decoded.Channels())
	}

	var samples []float32
	buf := make([]float32, 1024)
	for {
		n, err := decoded.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	// Skip the first frames while the stereo gains converge from the
	// centered default.
	var left, right float64
	for i := 4 * 320; i+1 < len(samples); i += 2 {
		left += float64(samples[i]) * float64(samples[i])
		right += float64(samples[i+1]) * float64(samples[i+1])
	}
	if left <= 2*right {
		t.Errorf("left energy %g not dominant over right %g", left, right)
	}
}

func TestEncode_StereoNeedsStereoSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 1600, 440.0)

	opts := gospeex.DefaultEncodeOptions()
	opts.Channels = 2

	var stream bytes.Buffer
	err := gospeex.Encode(&stream, src, opts)
	if !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("Encode(mono source, stereo out) error = %v, want ErrInvalidParameter", err)
	}
}

func TestEncode_ValidatesOptions(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 160, 440.0)

	opts := gospeex.DefaultEncodeOptions()
	opts.Quality = 42
	if err := gospeex.Encode(io.Discard, src, opts); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("Encode(quality 42) error = %v, want ErrInvalidParameter", err)
	}

	opts = gospeex.DefaultEncodeOptions()
	opts.Mode = mode.ID(9)
	if err := gospeex.Encode(io.Discard, src, opts); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("Encode(bad mode) error = %v, want ErrInvalidParameter", err)
	}

	opts = gospeex.DefaultEncodeOptions()
	opts.Channels = 5
	if err := gospeex.Encode(io.Discard, src, opts); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("Encode(5 channels) error = %v, want ErrInvalidParameter", err)
	}
}

func TestEncode_ResamplesInput(t *testing.T) {
	t.Parallel()

	// 44.1kHz input must come out at the narrowband rate.
	src := audiotest.NewSweepSource(44100, 1, 44100, 200.0, 1500.0)

	var stream bytes.Buffer
	if err := gospeex.Encode(&stream, src, gospeex.DefaultEncodeOptions()); err != nil {
		t.Fatal(err)
	}

	decoded, err := gospeex.Decode(bytes.NewReader(stream.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer decoded.Close()

	if decoded.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", decoded.SampleRate())
	}
}
