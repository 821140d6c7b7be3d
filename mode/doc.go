// SPDX-License-Identifier: EPL-2.0

// Package mode defines the static properties of the codec modes.
//
// The codec operates in one of three modes, each covering 20ms frames:
//
//   - NarrowBand: 8kHz, 160 samples per frame
//   - WideBand: 16kHz, 320 samples per frame
//   - UltraWideBand: 32kHz, 640 samples per frame
//
// Wideband frames split the signal into two bands and encode the
// lower one as a narrowband frame; ultra-wideband applies the split
// twice. A narrowband decoder can therefore play the lower band of a
// wideband stream by skipping the high-band sections.
//
// # Submodes
//
// Within a mode, the per-frame payload layout is chosen by a submode.
// Narrowband submodes trade excitation resolution against gain
// envelope resolution; high-band submodes do the same for the upper
// band of wideband and ultra-wideband frames. Submode identifiers are
// written in every frame header (unless submode encoding is disabled
// on the encoder), so the rate may change from frame to frame.
//
// The exact bit cost of each layout is exposed through FrameBits,
// BandBits and Bitrate, and the quality maps translate the familiar
// 0..10 quality scale into submode choices.
//
// # Errors
//
// Conversions from wire values (FromInt, NBSubmodeFromInt,
// SBSubmodeFromInt) validate their input and return ErrInvalidMode or
// ErrInvalidSubmode instead of panicking, since the values may come
// from untrusted streams.
package mode
