// SPDX-License-Identifier: EPL-2.0

// Package stereo codes a stereo pair through the mono codec as an
// intensity-coded image.
//
// The encoder side folds each interleaved frame down to its mid
// channel and transmits the channel balance and a total-energy ratio
// as an in-band request ahead of the frame. The decoder side restores
// an interleaved pair from the decoded mono frame and the last
// received image, smoothing gain changes across frames.
//
// Typical use, per frame:
//
//	st.Encode(interleaved, mono, &b)   // writes the image request
//	enc.EncodeTo(mono, &b)             // then the audio frame
//
// and on the receiving side, after registering st.Handler() for
// codec.InBandStereo:
//
//	dec.DecodeFrom(&b, mono)
//	st.Decode(mono, interleaved)
//
// Decoders that do not register the handler skip the request and play
// the stream as mono.
package stereo
