// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/utils"
	"gonum.org/v1/gonum/floats"
)

const (
	minTempo = 0.1
	maxTempo = 100.0
)

// profile holds the WSOLA window lengths in milliseconds.
type profile struct {
	segment, search, overlap float64
}

var (
	profileMusic  = profile{segment: 82, search: 14.68, overlap: 12}
	profileSpeech = profile{segment: 35, search: 14.68, overlap: 12}
	profileLinear = profile{segment: 20, search: 0, overlap: 8}
)

// tempoEffect changes the tempo without changing the pitch using WSOLA:
// segments are taken from the input at factor times the output hop and
// each one is shifted within the search window to the offset that best
// matches the tail of the previous segment before they are crossfaded.
type tempoEffect struct {
	factor float64
	quick  bool
	prof   profile
}

func (e *tempoEffect) Options(args ...any) error {
	strs, err := stringArgs(args)
	if err != nil {
		return err
	}

	e.quick = false
	e.prof = profileMusic

	i := 0
	for ; i < len(strs) && isFlag(strs[i]); i++ {
		switch strs[i] {
		case "-q":
			e.quick = true
		case "-m":
			e.prof = profileMusic
		case "-s":
			e.prof = profileSpeech
		case "-l":
			e.prof = profileLinear
		default:
			return fmt.Errorf("unknown flag %q", strs[i])
		}
	}

	if i >= len(strs) {
		return errors.New("missing tempo factor")
	}
	factor, err := strconv.ParseFloat(strings.TrimSpace(strs[i]), 64)
	if err != nil || math.IsNaN(factor) || factor < minTempo || factor > maxTempo {
		return fmt.Errorf("tempo factor must be a number in [%g, %g], got %q", minTempo, maxTempo, strs[i])
	}
	e.factor = factor
	i++

	windows := []*float64{&e.prof.segment, &e.prof.search, &e.prof.overlap}
	rest := strs[i:]
	if len(rest) > len(windows) {
		return fmt.Errorf("too many arguments: %q", rest[len(windows):])
	}
	for j, s := range rest {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("window length must be a non-negative number of milliseconds, got %q", s)
		}
		*windows[j] = v
	}
	if e.prof.segment <= 0 || e.prof.overlap <= 0 {
		return errors.New("segment and overlap must be positive")
	}
	if 2*e.prof.overlap > e.prof.segment {
		return fmt.Errorf("overlap %gms exceeds half of segment %gms", e.prof.overlap, e.prof.segment)
	}

	return nil
}

// isFlag tells flags from negative numbers.
func isFlag(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err != nil
}

func (e *tempoEffect) Start(up audio.Source, in, _ audio.Signal) (audio.Source, audio.Signal, error) {
	if e.factor == 0 {
		return nil, in, errors.New("no tempo factor configured")
	}
	if e.factor == 1 {
		return nil, in, ErrNoEffect
	}
	return newStretcher(up, in, e.factor, e.prof, e.quick), in, nil
}

func (e *tempoEffect) Stop() error { return nil }

func msToFrames(ms float64, rate int) int {
	return int(math.Round(ms * float64(rate) / 1000))
}

// stretcher is the audio.Source produced by the tempo effect. All
// positions are absolute frame indexes.
type stretcher struct {
	up       audio.Source
	sig      audio.Signal
	channels int
	factor   float64

	seg, overlap, search, hop, step int

	blk    []float32
	in     []float64 // frames [inBase, inBase+len(in)/channels)
	inBase int
	read   int
	eof    bool

	k        int       // next segment
	tail     []float64 // last overlap frames of the previous segment
	out      []float64 // frames produced but not yet returned
	emitted  int
	released int
	target   int // output length, known once eof is set
}

func newStretcher(up audio.Source, sig audio.Signal, factor float64, p profile, quick bool) *stretcher {
	ch := sig.Channels
	seg := max(msToFrames(p.segment, sig.SampleRate), 2)
	overlap := min(max(msToFrames(p.overlap, sig.SampleRate), 1), seg/2)
	search := msToFrames(p.search, sig.SampleRate)

	step := 1
	if quick {
		step = max(search/16, 1)
	}

	return &stretcher{
		up:       up,
		sig:      sig,
		channels: ch,
		factor:   factor,
		seg:      seg,
		overlap:  overlap,
		search:   search,
		hop:      seg - overlap,
		step:     step,
		blk:      make([]float32, 4096*ch),
		tail:     make([]float64, overlap*ch),
	}
}

func (s *stretcher) SampleRate() int { return s.sig.SampleRate }
func (s *stretcher) Channels() int   { return s.channels }
func (s *stretcher) BitDepth() int   { return s.sig.BitDepth }
func (s *stretcher) BufSize() int    { return len(s.blk) }

// Close does not close the upstream source; its format owns it.
func (s *stretcher) Close() error { return nil }

func (s *stretcher) end() int { return s.inBase + len(s.in)/s.channels }

// pull appends the next upstream block, skipping frames that were already
// dropped from the window.
func (s *stretcher) pull() error {
	n, err := s.up.ReadSamples(s.blk)
	frames := n / s.channels

	skip := min(max(s.inBase-s.read, 0), frames)
	for _, v := range s.blk[skip*s.channels : frames*s.channels] {
		s.in = append(s.in, float64(v))
	}
	s.read += frames

	if err == io.EOF {
		s.eof = true
		s.target = int(math.Round(float64(s.read) / s.factor))
		return nil
	}
	if err != nil {
		return fmt.Errorf("tempo: %w", err)
	}
	return nil
}

// ensure makes frames up to end available, padding with silence past the
// end of the input.
func (s *stretcher) ensure(end int) error {
	for s.end() < end {
		if s.eof {
			s.in = append(s.in, make([]float64, (end-s.end())*s.channels)...)
			return nil
		}
		if err := s.pull(); err != nil {
			return err
		}
	}
	return nil
}

func (s *stretcher) window(start, frames int) []float64 {
	i := (start - s.inBase) * s.channels
	return s.in[i : i+frames*s.channels]
}

// drop discards frames before pos.
func (s *stretcher) drop(pos int) {
	if pos <= s.inBase {
		return
	}
	if pos >= s.end() {
		s.in = s.in[:0]
		s.inBase = pos
		return
	}
	n := copy(s.in, s.in[(pos-s.inBase)*s.channels:])
	s.in = s.in[:n]
	s.inBase = pos
}

func (s *stretcher) nominal(k int) int {
	return int(math.Round(float64(k) * float64(s.hop) * s.factor))
}

// bestOffset returns the shift in [0, search] whose overlap window is the
// closest match for the previous tail.
func (s *stretcher) bestOffset(pos int) int {
	best, bestScore := 0, math.Inf(-1)
	for d := 0; d <= s.search; d += s.step {
		c := s.window(pos+d, s.overlap)
		score := floats.Dot(s.tail, c) / math.Sqrt(floats.Dot(c, c)+1e-12)
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func (s *stretcher) nextSegment() error {
	ch := s.channels
	pos := s.nominal(s.k)

	if err := s.ensure(pos + s.search + s.seg); err != nil {
		return err
	}

	if s.k == 0 {
		w := s.window(pos, s.seg)
		s.out = append(s.out, w[:s.hop*ch]...)
		copy(s.tail, w[s.hop*ch:])
	} else {
		start := pos + s.bestOffset(pos)
		w := s.window(start, s.seg)

		n := len(s.out)
		s.out = append(s.out, make([]float64, s.overlap*ch)...)
		utils.Crossfade(s.out[n:], s.tail, w[:s.overlap*ch], ch)
		s.out = append(s.out, w[s.overlap*ch:s.hop*ch]...)
		copy(s.tail, w[s.hop*ch:])
	}

	s.k++
	s.emitted += s.hop
	s.drop(s.nominal(s.k))
	return nil
}

// ready returns how many produced frames may be returned. Before the end
// of the input is known, output never runs ahead of read/factor.
func (s *stretcher) ready() int {
	limit := s.target
	if !s.eof {
		limit = int(float64(s.read) / s.factor)
	}
	return max(min(s.emitted, limit)-s.released, 0)
}

func (s *stretcher) ReadSamples(dst []float32) (int, error) {
	ch := s.channels
	if len(dst)%ch != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	want := len(dst) / ch
	written := 0
	for written < want {
		if r := s.ready(); r > 0 {
			n := min(r, want-written)
			for i, v := range s.out[:n*ch] {
				dst[written*ch+i] = float32(v)
			}
			s.out = s.out[:copy(s.out, s.out[n*ch:])]
			s.released += n
			written += n
			continue
		}
		if s.eof && s.released >= s.target {
			break
		}
		if err := s.nextSegment(); err != nil {
			return written * ch, err
		}
	}

	if written == 0 && len(dst) > 0 {
		return 0, io.EOF
	}
	return written * ch, nil
}
