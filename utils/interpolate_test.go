// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1},
		{"end returns y2", 0, 1, 2, 3, 1, 2},
		{"linear midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"linear quarter", 1, 2, 3, 4, 0.25, 2.25},
		{"constant", 0.7, 0.7, 0.7, 0.7, 0.3, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrossfade(t *testing.T) {
	t.Parallel()

	from := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	to := []float64{0, 0, 0, 0, 0, 0, 0, 0}
	dst := make([]float64, 8)

	Crossfade(dst, from, to, 2)

	want := []float64{1, 1, 0.75, 0.75, 0.5, 0.5, 0.25, 0.25}
	for i := range dst {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	for i := 0; b.Loop(); i++ {
		_ = CubicInterpolate(0.1, 0.2, 0.3, 0.4, float32(i%100)/100)
	}
}
