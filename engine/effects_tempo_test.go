// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, src audio.Source, block int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, block*src.Channels())
	for range 1_000_000 {
		n, err := src.ReadSamples(buf)
		require.Zero(t, n%src.Channels(), "partial frame")
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
	}
	t.Fatal("source never reached EOF")
	return nil
}

func startTempo(t *testing.T, up audio.Source, args ...any) audio.Source {
	t.Helper()

	e := &tempoEffect{}
	require.NoError(t, e.Options(args...))
	sig := audio.SignalOf(up)
	src, out, err := e.Start(up, sig, sig)
	require.NoError(t, err)
	assert.Equal(t, sig, out)
	return src
}

func TestTempoOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		factor  float64
		prof    profile
		quick   bool
		invalid bool
	}{
		{name: "factor", args: []any{"1.5"}, factor: 1.5, prof: profileMusic},
		{name: "float arg", args: []any{0.75}, factor: 0.75, prof: profileMusic},
		{name: "speech quick", args: []any{"-q", "-s", "2"}, factor: 2, prof: profileSpeech, quick: true},
		{name: "linear", args: []any{"-l", "0.5"}, factor: 0.5, prof: profileLinear},
		{name: "windows", args: []any{"1.2", "60", "10", "20"}, factor: 1.2, prof: profile{60, 10, 20}},
		{name: "bounds", args: []any{"0.1"}, factor: 0.1, prof: profileMusic},
		{name: "upper bound", args: []any{"100"}, factor: 100, prof: profileMusic},
		{name: "zero", args: []any{"0"}, invalid: true},
		{name: "negative", args: []any{"-1.5"}, invalid: true},
		{name: "not a number", args: []any{"fast"}, invalid: true},
		{name: "empty", args: []any{""}, invalid: true},
		{name: "nan", args: []any{"NaN"}, invalid: true},
		{name: "too fast", args: []any{"101"}, invalid: true},
		{name: "missing", args: nil, invalid: true},
		{name: "only flags", args: []any{"-q"}, invalid: true},
		{name: "unknown flag", args: []any{"-x", "1.5"}, invalid: true},
		{name: "overlap too long", args: []any{"1.5", "20", "5", "15"}, invalid: true},
		{name: "too many", args: []any{"1.5", "1", "2", "3", "4"}, invalid: true},
		{name: "bad type", args: []any{struct{}{}}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &tempoEffect{}
			err := e.Options(tt.args...)
			if tt.invalid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.factor, e.factor)
			assert.Equal(t, tt.prof, e.prof)
			assert.Equal(t, tt.quick, e.quick)
		})
	}
}

func TestTempoUnityIsNoEffect(t *testing.T) {
	e := &tempoEffect{}
	require.NoError(t, e.Options("1.0"))

	sig := audio.Signal{SampleRate: 8000, Channels: 1, BitDepth: 16}
	_, _, err := e.Start(audiotest.NewSilentSource(8000, 1, 10), sig, sig)
	assert.ErrorIs(t, err, ErrNoEffect)
}

func TestStretcherLength(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
		args     []any
	}{
		{"faster", 8000, 1, 8000, []any{"2"}},
		{"slower", 8000, 1, 8000, []any{"0.5"}},
		{"stereo", 16000, 2, 12345, []any{"1.25"}},
		{"speech", 22050, 1, 22050, []any{"-s", "1.5"}},
		{"linear", 8000, 2, 5000, []any{"-l", "0.8"}},
		{"quick", 44100, 2, 44100, []any{"-q", "1.1"}},
		{"extreme", 8000, 1, 8000, []any{"100"}},
		{"very slow", 8000, 1, 2000, []any{"0.1"}},
		{"shorter than a segment", 8000, 1, 100, []any{"1.5"}},
		{"empty", 8000, 1, 0, []any{"1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &tempoEffect{}
			require.NoError(t, e.Options(tt.args...))
			want := int(math.Round(float64(tt.frames) / e.factor))

			up := audiotest.NewSineSource(tt.rate, tt.channels, tt.frames, 440)
			for _, block := range []int{1, 333, 4096} {
				up.Reset()
				got := drain(t, startTempo(t, up, tt.args...), block)
				assert.Equal(t, want, len(got)/tt.channels, "block %d", block)
			}
		})
	}
}

func zeroCrossings(x []float32) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if (x[i-1] < 0) != (x[i] < 0) {
			n++
		}
	}
	return n
}

func TestStretcherKeepsPitch(t *testing.T) {
	const (
		rate   = 16000
		frames = 3 * rate
		freq   = 440.0
	)

	for _, factor := range []string{"0.7", "1.5", "2"} {
		t.Run(factor, func(t *testing.T) {
			src := startTempo(t, audiotest.NewSineSource(rate, 1, frames, freq), factor)
			out := drain(t, src, 1024)

			// skip the edges where the padding and first segment sit
			mid := out[len(out)/10 : len(out)*9/10]
			seconds := float64(len(mid)) / rate
			got := float64(zeroCrossings(mid)) / 2 / seconds

			assert.InDelta(t, freq, got, freq*0.05, "estimated frequency")
		})
	}
}

func TestStretcherSilenceStaysSilent(t *testing.T) {
	src := startTempo(t, audiotest.NewSilentSource(8000, 2, 4000), "1.3")
	for _, v := range drain(t, src, 512) {
		require.Zero(t, v)
	}
}

func TestStretcherInvalidDst(t *testing.T) {
	src := startTempo(t, audiotest.NewSilentSource(8000, 2, 100), "1.5")

	_, err := src.ReadSamples(make([]float32, 3))
	assert.ErrorIs(t, err, audio.ErrInvalidDstSize)
	assert.NoError(t, src.Close())
}

func TestIsFlag(t *testing.T) {
	assert.True(t, isFlag("-q"))
	assert.True(t, isFlag("-m"))
	assert.False(t, isFlag("-1"))
	assert.False(t, isFlag("-0.5"))
	assert.False(t, isFlag("1.5"))
}
