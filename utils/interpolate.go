// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at x, the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}

// Crossfade blends from into to over len(dst) samples laid out as interleaved
// frames of the given channel count. The first frame is all from, the last is
// almost all to.
func Crossfade(dst, from, to []float64, channels int) {
	frames := len(dst) / channels
	if frames == 0 {
		return
	}
	step := 1 / float64(frames)
	for f := range frames {
		w := float64(f) * step
		for c := range channels {
			i := f*channels + c
			dst[i] = from[i]*(1-w) + to[i]*w
		}
	}
}
