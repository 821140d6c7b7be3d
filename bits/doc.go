// SPDX-License-Identifier: EPL-2.0

// Package bits implements the bit-level buffer used by the codec.
//
// Encoded frames are not byte aligned: a frame header is five bits,
// submode payloads carry odd-width fields, and several frames can
// share one packet. This package provides the append/consume buffer
// that makes that possible.
//
// # Bit Order
//
// Bits are packed most significant bit first. Packing the value 0b101
// with three bits into an empty buffer produces the byte 0xA0.
//
// # Writing
//
//	var b bits.Bits
//	b.Pack(0, 1)        // wideband flag
//	b.Pack(3, 4)        // submode
//	b.PackSigned(-5, 6) // two's complement field
//	data := b.Bytes()   // zero padded to a byte boundary
//
// # Reading
//
//	b := bits.NewFromBytes(data)
//	flag, err := b.Unpack(1)
//	submode, err := b.Unpack(4)
//
// Reads past the end return ErrEndOfStream rather than padding with
// zeros, so a decoder can tell a truncated packet from trailing
// padding.
//
// # Termination
//
// InsertTerminator appends a zero wideband flag and the reserved
// submode 15. A decoder that encounters the pair stops and reports
// the end of the stream, which allows packets to be padded to byte
// boundaries without producing garbage frames.
package bits
