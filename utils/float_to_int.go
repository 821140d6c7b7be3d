package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts a 16-bit PCM sample to a normalized float32 in [-1, 1).
func Int16ToFloat32(x int16) float32 {
	return float32(x) / 32768.0
}

// Int16SliceToFloat32 converts src into dst. Conversion stops at the shorter
// of the two slices. Returns the number of samples converted.
func Int16SliceToFloat32(src []int16, dst []float32) int {
	n := min(len(src), len(dst))
	for i := range n {
		dst[i] = Int16ToFloat32(src[i])
	}
	return n
}

// Float32SliceToInt16 converts src into dst with clamping. Conversion stops
// at the shorter of the two slices. Returns the number of samples converted.
func Float32SliceToInt16(src []float32, dst []int16) int {
	n := min(len(src), len(dst))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
