// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScale returns the magnitude of the most negative signed PCM value at
// the given bit depth (32768 for 16-bit).
func FullScale(bitDepth int) float64 {
	return float64(uint64(1) << (bitDepth - 1))
}

// PCMToFloat scales a signed PCM value into [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / FullScale(bitDepth))
}

// FloatToPCM scales x into the signed PCM range of bitDepth, rounding to the
// nearest value and clamping out-of-range input.
func FloatToPCM(x float32, bitDepth int) int {
	scale := FullScale(bitDepth)
	v := math.Round(float64(x) * scale)
	if v > scale-1 {
		return int(scale - 1)
	}
	if v < -scale {
		return int(-scale)
	}
	return int(v)
}
