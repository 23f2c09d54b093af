// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"sync"

	"github.com/ik5/audtempo/audio"
)

// ErrInjected is returned by codecs wrapped with a failure switch.
var ErrInjected = errors.New("injected failure")

// Tracker counts streams opened and closed through the codecs it wraps.
type Tracker struct {
	mu     sync.Mutex
	opened map[string]int
	closed map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{
		opened: make(map[string]int),
		closed: make(map[string]int),
	}
}

func (t *Tracker) inc(m map[string]int, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m[key]++
}

// Opened returns the number of streams opened under key.
func (t *Tracker) Opened(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened[key]
}

// Closed returns the number of streams closed under key.
func (t *Tracker) Closed(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed[key]
}

// Balanced reports whether every opened stream was closed exactly once.
func (t *Tracker) Balanced() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range t.opened {
		if t.closed[k] != v {
			return false
		}
	}
	for k, v := range t.closed {
		if t.opened[k] != v {
			return false
		}
	}
	return true
}

// Decoder wraps d so that decoded sources are counted under key.
func (t *Tracker) Decoder(key string, d audio.Decoder) audio.Decoder {
	return &trackedDecoder{t: t, key: key, dec: d}
}

// Encoder wraps e so that sinks are counted under key. When fail is
// non-nil and returns true, Encode fails with ErrInjected.
func (t *Tracker) Encoder(key string, e audio.Encoder, fail func() bool) audio.Encoder {
	return &trackedEncoder{t: t, key: key, enc: e, fail: fail}
}

type trackedDecoder struct {
	t   *Tracker
	key string
	dec audio.Decoder
}

func (d *trackedDecoder) Decode(r io.Reader) (audio.Source, error) {
	src, err := d.dec.Decode(r)
	if err != nil {
		return nil, err
	}
	d.t.inc(d.t.opened, d.key)
	return &trackedSource{Source: src, t: d.t, key: d.key}, nil
}

type trackedSource struct {
	audio.Source
	t   *Tracker
	key string
}

func (s *trackedSource) BitDepth() int { return audio.SignalOf(s.Source).BitDepth }

func (s *trackedSource) Close() error {
	s.t.inc(s.t.closed, s.key)
	return s.Source.Close()
}

type trackedEncoder struct {
	t    *Tracker
	key  string
	enc  audio.Encoder
	fail func() bool
}

func (e *trackedEncoder) Encode(w io.WriteSeeker, sig audio.Signal) (audio.Sink, error) {
	if e.fail != nil && e.fail() {
		return nil, ErrInjected
	}
	sink, err := e.enc.Encode(w, sig)
	if err != nil {
		return nil, err
	}
	e.t.inc(e.t.opened, e.key)
	return &trackedSink{Sink: sink, t: e.t, key: e.key}, nil
}

type trackedSink struct {
	audio.Sink
	t   *Tracker
	key string
}

func (s *trackedSink) Close() error {
	s.t.inc(s.t.closed, s.key)
	return s.Sink.Close()
}
