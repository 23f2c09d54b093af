// SPDX-License-Identifier: EPL-2.0

package audtempo_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ik5/audtempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempoChoices(t *testing.T) {
	choices := audtempo.TempoChoices()
	require.Len(t, choices, 31)

	assert.Equal(t, "0.5", choices[0])
	assert.Equal(t, "0.55", choices[1])
	assert.Equal(t, "0.95", choices[9])
	assert.Equal(t, audtempo.DefaultTempo, choices[audtempo.DefaultTempoIndex])
	assert.Equal(t, "1.05", choices[11])
	assert.Equal(t, "1.5", choices[20])
	assert.Equal(t, "2.0", choices[30])

	seen := make(map[string]bool, len(choices))
	for _, c := range choices {
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestFormatTempo(t *testing.T) {
	tests := map[float64]string{
		1:     "1.0",
		2:     "2.0",
		0.5:   "0.5",
		1.25:  "1.25",
		100:   "100.0",
		0.125: "0.125",
	}
	for v, want := range tests {
		assert.Equal(t, want, audtempo.FormatTempo(v), "%g", v)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, in, tempo, want string
	}{
		{"/cache", "/books/ch01.mp3", "1.25", "/cache/ch01_1.25.wav"},
		{"", "/books/ch01.mp3", "0.5", "/books/ch01_0.5.wav"},
		{"/cache", "/books/part.one.ogg", "1.0", "/cache/part.one_1.0.wav"},
		{"out", "noext", "2.0", filepath.Join("out", "noext_2.0.wav")},
	}
	for _, tt := range tests {
		assert.Equal(t, filepath.FromSlash(tt.want), audtempo.OutputPath(filepath.FromSlash(tt.dir), filepath.FromSlash(tt.in), tt.tempo))
	}
}

func ExampleOutputPath() {
	fmt.Println(audtempo.OutputPath("/tmp/playlist", "/books/chapter1.mp3", audtempo.DefaultTempo))
	// Output: /tmp/playlist/chapter1_1.0.wav
}
