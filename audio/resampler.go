// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audtempo/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass filter is applied to the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int
	bitDepth int

	// win holds the frames at t-1, t, t+1, t+2 around the read position.
	win    [4][]float32
	base   int     // absolute index of win[1]
	loaded int     // real frames pulled from src so far
	pos    float64 // fractional position between win[1] and win[2]
	primed bool
	eof    bool

	blk    []float32
	blkPos int
	blkLen int

	lowpass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		bitDepth: SignalOf(src).BitDepth,
		blk:      make([]float32, max(4096/channels, 1)*channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BitDepth() int   { return r.bitDepth }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// next copies the following source frame into dst. It returns false once
// the source is exhausted.
func (r *Resampler) next(dst []float32) (bool, error) {
	for r.blkPos+r.channels > r.blkLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.blk)
		r.blkPos, r.blkLen = 0, n-n%r.channels
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("resampler: %w", err)
		}
	}

	copy(dst, r.blk[r.blkPos:r.blkPos+r.channels])
	r.blkPos += r.channels

	if r.lowpass {
		if r.loaded == 0 {
			copy(r.state, dst)
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}
	r.loaded++
	return true, nil
}

func (r *Resampler) prime() (bool, error) {
	ok, err := r.next(r.win[1])
	if !ok || err != nil {
		return false, err
	}
	copy(r.win[0], r.win[1])
	for i := 2; i < 4; i++ {
		ok, err := r.next(r.win[i])
		if err != nil {
			return false, err
		}
		if !ok {
			copy(r.win[i], r.win[i-1])
		}
	}
	r.primed = true
	return true, nil
}

func (r *Resampler) advance() error {
	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.base++

	ok, err := r.next(r.win[3])
	if err != nil {
		return err
	}
	if !ok {
		// hold the last frame past the end of the stream
		copy(r.win[3], r.win[2])
	}
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.eof && r.base >= r.loaded {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
