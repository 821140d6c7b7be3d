// SPDX-License-Identifier: EPL-2.0

package codec

// In-band request codes. A frame whose leading flag bit is one is not
// audio but a 4-bit request code followed by a payload of fixed width.
const (
	// InBandStereo carries the stereo image side information written
	// by the stereo package: a 6-bit balance index and a 2-bit
	// energy-ratio index.
	InBandStereo = 9
)

// inbandSize gives the payload width in bits for each request code.
// Decoders use it to skip requests they do not understand.
var inbandSize = [16]int{1, 1, 4, 4, 4, 4, 4, 4, 8, 8, 16, 16, 32, 32, 64, 64}

// InBandSize returns the payload width in bits of an in-band request
// code. Out-of-range codes return 0.
func InBandSize(code int) int {
	if code < 0 || code > 15 {
		return 0
	}
	return inbandSize[code]
}
