// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audtempo/audio"
)

// mockOggReader mimics oggvorbis.Reader: Read counts samples and returns
// whole frames only.
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := min(len(p), len(m.samples)-m.offset)
	n -= n % m.channels
	copy(p, m.samples[m.offset:m.offset+n])
	m.offset += n
	return n, nil
}

func newSource(m *mockOggReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) / float32(n)
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"text":  []byte("This is not Ogg Vorbis data"),
		"empty": {},
		"ogg":   append([]byte("OggS"), make([]byte, 40)...),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotVorbisFile)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 48000, channels: 2})

	want := audio.Signal{SampleRate: 48000, Channels: 2, BitDepth: audio.DefaultBitDepth}
	if got := audio.SignalOf(src); got != want {
		t.Errorf("SignalOf() = %v, want %v", got, want)
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples_CountsSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		total    int
		dst      int
	}{
		{"mono", 1, 100, 32},
		{"stereo", 2, 200, 64},
		{"5.1", 6, 600, 60},
		{"stereo uneven tail", 2, 202, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := ramp(tt.total)
			src := newSource(&mockOggReader{sampleRate: 8000, channels: tt.channels, samples: want})

			var got []float32
			dst := make([]float32, tt.dst)
			for {
				n, err := src.ReadSamples(dst)
				got = append(got, dst[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("read %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOFIsSticky(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 8000, channels: 1, samples: ramp(4)})
	dst := make([]float32, 8)

	if n, err := src.ReadSamples(dst); n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	for range 3 {
		if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
			t.Fatalf("ReadSamples() after end = %d, %v; want 0, EOF", n, err)
		}
	}
}

func TestSource_ReadSamples_InvalidDst(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 8000, channels: 2, samples: ramp(10)})

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want %v", err, audio.ErrInvalidDstSize)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	mock := &mockOggReader{sampleRate: 44100, channels: 2, samples: ramp(44100 * 2)}
	src := newSource(mock)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		mock.offset, src.eof = 0, false
		_, _ = src.ReadSamples(dst)
	}
}
