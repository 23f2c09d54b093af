// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newConstantSource(8000, 1, 100, 0.5))

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Fatalf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Downmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"stereo", 2, 0.5},
		{"quad", 4, 1.5},
		{"5.1", 6, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// channel c carries the value c*1.0, or 0.4/0.6 for stereo
			src := newMockSource(8000, tt.channels, 64, func(_ int, c int) float32 {
				if tt.channels == 2 {
					return 0.4 + 0.2*float32(c)
				}
				return float32(c)
			})
			mixer := NewMonoMixer(src)
			if mixer.Channels() != 1 {
				t.Fatalf("Channels() = %d, want 1", mixer.Channels())
			}

			out, err := drain(mixer, 16)
			if err != nil {
				t.Fatalf("drain error = %v", err)
			}
			if len(out) != 64 {
				t.Fatalf("got %d frames, want 64", len(out))
			}
			for i, v := range out {
				if math.Abs(float64(v-tt.want)) > 1e-5 {
					t.Fatalf("out[%d] = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newConstantSource(8000, 2, 5, 0.1))
	buf := make([]float32, 10)

	n, err := mixer.ReadSamples(buf)
	if n != 5 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v, want 5, io.EOF", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	src := newConstantSource(44100, 2, 1, 0)
	src.bitDepth = 24
	mixer := NewMonoMixer(src)

	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}
	if mixer.BitDepth() != 24 {
		t.Errorf("BitDepth() = %d, want 24", mixer.BitDepth())
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the source")
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newConstantSource(8000, 2, 5, 0.1))
	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}
