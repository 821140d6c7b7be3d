// SPDX-License-Identifier: EPL-2.0

// Package gospeex is a pure-Go speech codec with a Speex-style
// control surface and an Ogg Speex file layer.
//
// The codec compresses 20ms frames of 16-bit PCM in three modes:
// narrowband (8kHz), wideband (16kHz) and ultra-wideband (32kHz).
// Constant and variable bitrate, voice activity detection, average
// bitrate targeting, packet loss concealment and intensity stereo are
// supported. The bitstream layout is this library's own; it is
// documented in the codec package and is not interoperable with
// libspeex streams.
//
// # Quick Start
//
// Encode any supported audio file to .spx:
//
//	in, _ := os.Open("speech.wav")
//	src, _ := wav.Decoder{}.Decode(in)
//
//	out, _ := os.Create("speech.spx")
//	err := gospeex.Encode(out, src, gospeex.DefaultEncodeOptions())
//
// and back:
//
//	f, _ := os.Open("speech.spx")
//	src, _ := gospeex.Decode(f)
//	pcm16, rate, _ := gospeex.ResampleToMono16(src, 8000, 4096)
//
// # Frame-Level API
//
// The codec and bits packages expose the per-frame sessions directly
// for streaming uses (VoIP, RTP payloads):
//
//	enc, _ := codec.NewEncoder(mode.WideBand)
//	defer enc.Close()
//	data, _ := enc.Encode(frame) // one 20ms frame
//
// # Supported Input Formats
//
// Decoders returning an audio.Source:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//   - Ogg Speex via formats/spx
//
// NewFormatRegistry returns all of them keyed by file extension.
//
// # Audio Pipeline
//
// The audio subpackage carries the processing primitives used to feed
// the encoder: resampling with cubic interpolation, channel mixing,
// and the Source/Decoder interfaces every format implements. Any
// input is resampled to the mode's rate before encoding.
//
// See the codec, stereo and formats/spx subpackages for details.
package gospeex
