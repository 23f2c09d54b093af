// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/utils"
)

const (
	// go-mp3 always produces interleaved stereo 16 bit little-endian PCM.
	outChannels = 2
	outBitDepth = 16
	sampleBytes = outBitDepth / 8
	frameBytes  = outChannels * sampleBytes
)

// mp3Reader is the part of gomp3.Decoder used by source.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      int // bytes of an incomplete frame kept at buf[0:carry]
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outChannels }
func (s *source) BitDepth() int   { return outBitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / sampleBytes }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%outChannels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	need := len(dst) * sampleBytes
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.carry:])
	n += s.carry
	if err == io.EOF {
		s.eof = true
	} else if err != nil {
		return 0, fmt.Errorf("mp3: %w", err)
	}

	samples := n / frameBytes * outChannels
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*sampleBytes:]))
		dst[i] = utils.PCMToFloat(int(v), outBitDepth)
	}

	s.carry = copy(s.buf, s.buf[samples*sampleBytes:n])

	if samples == 0 && s.eof {
		return 0, io.EOF
	}
	if s.eof {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	if dec.SampleRate() <= 0 {
		return nil, ErrNotMP3File
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
