// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestResampler_SameRate(t *testing.T) {
	t.Parallel()

	src := newRampSource(16000, 1, 1000)
	out, err := drain(NewResampler(src, 16000), 256)
	if err != nil {
		t.Fatalf("drain error = %v", err)
	}
	if len(out) != 1000 {
		t.Fatalf("got %d samples, want 1000", len(out))
	}

	for i, v := range out {
		want := float32(i) / 1000
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{"halve", 16000, 8000, 1000, 500},
		{"double", 8000, 16000, 100, 200},
		{"cd to dat", 44100, 48000, 44100, 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(newSineSource(tt.from, 1, tt.frames, 440), tt.to)
			if r.SampleRate() != tt.to {
				t.Errorf("SampleRate() = %d, want %d", r.SampleRate(), tt.to)
			}

			out, err := drain(r, 1024)
			if err != nil {
				t.Fatalf("drain error = %v", err)
			}
			if diff := len(out) - tt.want; diff < -1 || diff > 1 {
				t.Errorf("got %d samples, want %d±1", len(out), tt.want)
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 2, 400, func(_ int, c int) float32 {
		if c == 0 {
			return 0.25
		}
		return -0.25
	})
	r := NewResampler(src, 12000)
	if r.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", r.Channels())
	}

	out, err := drain(r, 64)
	if err != nil {
		t.Fatalf("drain error = %v", err)
	}
	for i := 0; i < len(out); i += 2 {
		if math.Abs(float64(out[i]-0.25)) > 1e-5 || math.Abs(float64(out[i+1]+0.25)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.25, -0.25)", i/2, out[i], out[i+1])
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 1, 0, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 2, 10, 0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 1, 10, 0)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the source")
	}
}
