// SPDX-License-Identifier: EPL-2.0

// Package spx reads and writes Speex audio in Ogg containers.
//
// A stream starts with an 80-byte header packet fixing the mode,
// sample rate and channel count, followed by a comment packet, then
// audio packets of one or more terminated frames each. Writer packs
// frames produced by a codec.Encoder into pages; Decoder exposes a
// stream as an audio.Source.
//
// Stereo streams carry a mono signal plus intensity side information
// (see the stereo package); a two-channel source is reconstructed
// transparently on read.
package spx
