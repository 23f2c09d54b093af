// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/utils"
)

// aiffWriter is the part of aiff.Encoder used by sink.
type aiffWriter interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

type sink struct {
	enc    aiffWriter
	sig    audio.Signal
	intBuf *goaudio.IntBuffer
	frames int
}

func (s *sink) WriteSamples(src []float32) (int, error) {
	if len(src)%s.sig.Channels != 0 {
		return 0, audio.ErrPartialFrame
	}
	if len(src) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(src) {
		s.intBuf.Data = make([]int, len(src))
	}
	s.intBuf.Data = s.intBuf.Data[:len(src)]
	for i, x := range src {
		s.intBuf.Data[i] = utils.FloatToPCM(x, s.sig.BitDepth)
	}

	if err := s.enc.Write(s.intBuf); err != nil {
		return 0, fmt.Errorf("aiff: %w", err)
	}
	s.frames += len(src) / s.sig.Channels

	return len(src), nil
}

func (s *sink) Close() error {
	if s.frames == 0 {
		s.intBuf.Data = s.intBuf.Data[:0]
		if err := s.enc.Write(s.intBuf); err != nil {
			return fmt.Errorf("aiff: %w", err)
		}
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("aiff: %w", err)
	}
	return nil
}

// Encoder writes big-endian integer PCM AIFF files.
type Encoder struct{}

func (Encoder) Encode(w io.WriteSeeker, sig audio.Signal) (audio.Sink, error) {
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}
	if !supportedBitDepth(sig.BitDepth) {
		return nil, ErrUnsupportedBitDepth
	}

	return &sink{
		enc: aiff.NewEncoder(w, sig.SampleRate, sig.BitDepth, sig.Channels),
		sig: sig,
		intBuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: sig.Channels,
				SampleRate:  sig.SampleRate,
			},
			Data:           make([]int, 0, 4096),
			SourceBitDepth: sig.BitDepth,
		},
	}, nil
}
