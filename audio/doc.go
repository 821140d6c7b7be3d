// SPDX-License-Identifier: EPL-2.0

// Package audio provides the processing primitives that feed the codec.
//
// This package contains the core building blocks:
//   - Source interface for audio input
//   - Resampler for sample rate conversion
//   - MonoMixer for channel mixing
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders (including the Ogg Speex reader) and processors
// implement this interface, allowing them to be chained together.
//
// # Resampling
//
// The encoder only accepts its mode's native rate (8000, 16000 or
// 32000 Hz), so arbitrary input must pass through the Resampler first.
// It converts using cubic interpolation:
//
//	resampler := audio.NewResampler(source, 8000)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// Resampling works for both upsampling and downsampling. A one-pole
// low-pass filter is applied when downsampling.
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// Mono is the default encoding path; two-channel sources can instead
// be kept as intensity stereo by the encoder pipeline.
//
// # Format Registry
//
// The registry allows decoder lookup by format key:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// The root package ships a registry preloaded with every bundled
// decoder.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// The codec itself works on int16 PCM; the utils package holds the
// conversions between the two representations.
//
// # Error Handling
//
// Audio processing functions return io.EOF when no more data is
// available. Other errors indicate problems with the source or
// processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
