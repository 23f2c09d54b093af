// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats/wav"
)

// WriteWAV encodes everything src produces into a WAV file at path.
func WriteWAV(path string, src audio.Source) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	sink, err := wav.Encoder{}.Encode(f, audio.SignalOf(src))
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]float32, 1024*src.Channels())
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if _, werr := sink.WriteSamples(buf[:n]); werr != nil {
				return fmt.Errorf("%w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return f.Close()
}

// ReadWAV decodes the WAV file at path fully.
func ReadWAV(path string) ([]float32, audio.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, audio.Signal{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		return nil, audio.Signal{}, fmt.Errorf("%w", err)
	}

	var out []float32
	buf := make([]float32, 1024*src.Channels())
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, audio.SignalOf(src), nil
		}
		if err != nil {
			return nil, audio.Signal{}, fmt.Errorf("%w", err)
		}
	}
}
