// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// DefaultBitDepth is assumed for sources that do not report their precision,
// such as lossy decoders.
const DefaultBitDepth = 16

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Sink consumes interleaved float32 samples in [-1,1] and encodes them.
type Sink interface {
	// WriteSamples encodes src. len(src) must be a multiple of the channel count.
	WriteSamples(src []float32) (n int, err error)
	// Close finalizes the stream (headers, sizes). It does not close the
	// underlying writer.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder constructs a Sink writing the given signal to w.
type Encoder interface {
	Encode(w io.WriteSeeker, sig Signal) (Sink, error)
}

// Signal describes the shape of a PCM stream.
type Signal struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

func (s Signal) String() string {
	return fmt.Sprintf("%dHz %dch %dbit", s.SampleRate, s.Channels, s.BitDepth)
}

// Validate reports whether the signal can describe a real stream.
func (s Signal) Validate() error {
	if s.SampleRate <= 0 || s.Channels <= 0 || s.BitDepth <= 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedSignal, s)
	}
	return nil
}

// SameShape reports whether two signals agree on rate and channel count.
// Bit depth is a storage detail and is ignored.
func (s Signal) SameShape(o Signal) bool {
	return s.SampleRate == o.SampleRate && s.Channels == o.Channels
}

// SignalOf returns the signal produced by src. Sources exposing
// BitDepth() int report their own precision.
func SignalOf(src Source) Signal {
	sig := Signal{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		BitDepth:   DefaultBitDepth,
	}
	if bd, ok := src.(interface{ BitDepth() int }); ok && bd.BitDepth() > 0 {
		sig.BitDepth = bd.BitDepth()
	}
	return sig
}

// Registry for decoders and encoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs   map[string]Decoder
	encoders map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:   make(map[string]Decoder),
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[format] = e
}

func (r *Registry) GetEncoder(format string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[format]
	return e, ok
}

// Formats lists every registered format key, sorted. A key may support
// decoding, encoding or both.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	seen := make(map[string]struct{}, len(r.codecs)+len(r.encoders))
	for k := range r.codecs {
		seen[k] = struct{}{}
	}
	for k := range r.encoders {
		seen[k] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
