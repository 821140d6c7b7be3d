// SPDX-License-Identifier: EPL-2.0

// Package codec implements the speech encoder and decoder sessions.
//
// The codec compresses 20ms frames of 16-bit PCM. Three modes are
// supported (see the mode package): narrowband at 8kHz, wideband at
// 16kHz and ultra-wideband at 32kHz. Wideband and ultra-wideband
// frames are built by splitting the signal into sub-bands and
// encoding the lowest band as a narrowband frame, so a stream always
// embeds a narrowband core.
//
// # Sessions
//
// Encoder and Decoder own all per-stream state. Create one per
// stream, feed frames in order, and Close when done:
//
//	enc, err := codec.NewEncoder(mode.NarrowBand)
//	if err != nil {
//	    // handle error
//	}
//	defer enc.Close()
//
//	frame := make([]int16, enc.FrameSize())
//	data, err := enc.Encode(frame)
//
// Decoding mirrors it:
//
//	dec, _ := codec.NewDecoder(mode.NarrowBand)
//	defer dec.Close()
//	pcm, err := dec.Decode(data)
//
// Both sessions keep adaptive state between frames, so frames must be
// decoded in encode order. Reset clears the state for a new stream.
//
// # Frame Layout
//
// Every frame starts with a 1-bit flag and a 4-bit submode. A zero
// flag introduces audio; submode 15 terminates the stream. A one flag
// introduces an in-band request (4-bit code plus fixed-size payload,
// see InBandSize) that decoders may handle or skip. After the
// narrowband section, wideband frames carry a 3-bit high-band submode
// and its payload; ultra-wideband frames carry two such sections.
//
// The payload of each band is a four-subframe gain envelope plus the
// band excitation, quantized sample by sample with an adaptive
// backward-adaptive quantizer. No side information is needed to keep
// the encoder and decoder quantizers synchronized.
//
// # Rate Control
//
// The constant-rate submode pair is set with SetQuality (0..10) or
// SetBitrate. SetVBR switches to per-frame selection driven by
// SetVBRQuality and the frame energy, optionally capped with
// SetVBRMaxBitrate. SetABR sets an average-rate target that steers
// the VBR quality. SetVAD replaces non-speech frames with
// vocoder-like comfort noise frames.
//
// # Packet Loss
//
// DecodeLost synthesizes a substitute frame from the last good gain
// envelope. Consecutive losses decay toward silence; SetPLCTuning
// sets the expected loss rate and controls how aggressive the decay
// is.
package codec
