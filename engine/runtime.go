// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync/atomic"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats/aiff"
	"github.com/ik5/audtempo/formats/mp3"
	"github.com/ik5/audtempo/formats/vorbis"
	"github.com/ik5/audtempo/formats/wav"
	"github.com/sirupsen/logrus"
)

// DefaultBufferSize is the number of samples moved per Flow iteration.
const DefaultBufferSize = 8192

// live is set while a Runtime exists in this process.
var live atomic.Bool

// Runtime is the token required to open formats and build chains. At most
// one Runtime is live per process.
type Runtime struct {
	log      logrus.FieldLogger
	registry *audio.Registry
	handlers map[string]*Handler
	bufSize  int
	closed   atomic.Bool
}

// Option configures a Runtime in Init.
type Option func(*Runtime) error

// WithLogger sets the logger used by the runtime and everything it creates.
func WithLogger(l logrus.FieldLogger) Option {
	return func(rt *Runtime) error {
		if l == nil {
			return errors.New("nil logger")
		}
		rt.log = l
		return nil
	}
}

// WithRegistry replaces the codec registry.
func WithRegistry(reg *audio.Registry) Option {
	return func(rt *Runtime) error {
		if reg == nil {
			return errors.New("nil registry")
		}
		rt.registry = reg
		return nil
	}
}

// WithHandler adds an effect, replacing any effect of the same name.
func WithHandler(h *Handler) Option {
	return func(rt *Runtime) error {
		if h == nil || h.Name == "" || h.New == nil {
			return errors.New("handler needs a name and a constructor")
		}
		rt.handlers[h.Name] = h
		return nil
	}
}

// WithoutHandler removes an effect.
func WithoutHandler(name string) Option {
	return func(rt *Runtime) error {
		delete(rt.handlers, name)
		return nil
	}
}

// WithBufferSize sets the Flow block size in samples.
func WithBufferSize(n int) Option {
	return func(rt *Runtime) error {
		if n <= 0 {
			return fmt.Errorf("buffer size must be positive, got %d", n)
		}
		rt.bufSize = n
		return nil
	}
}

// DefaultRegistry returns the codecs available to a runtime when
// WithRegistry is not given: wav and aiff read and write, mp3 and ogg read.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.RegisterEncoder("wav", wav.Encoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.RegisterEncoder("aiff", aiff.Encoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init creates the process runtime. It fails with ErrRuntimeInit while
// another runtime is live; call Quit to release it.
func Init(opts ...Option) (*Runtime, error) {
	if !live.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: a runtime is already live", ErrRuntimeInit)
	}

	rt := &Runtime{
		log:      discardLogger(),
		registry: DefaultRegistry(),
		handlers: builtinHandlers(),
		bufSize:  DefaultBufferSize,
	}
	for _, opt := range opts {
		if err := opt(rt); err != nil {
			live.Store(false)
			return nil, fmt.Errorf("%w: %w", ErrRuntimeInit, err)
		}
	}

	rt.log.WithField("formats", rt.registry.Formats()).Debug("runtime initialized")
	return rt, nil
}

// Quit releases the runtime. Only the first call succeeds.
func (rt *Runtime) Quit() error {
	if !rt.closed.CompareAndSwap(false, true) {
		return ErrRuntimeClosed
	}
	live.Store(false)
	rt.log.Debug("runtime quit")
	return nil
}

func (rt *Runtime) alive() error {
	if rt == nil || rt.closed.Load() {
		return ErrRuntimeClosed
	}
	return nil
}

// Registry returns the codec registry.
func (rt *Runtime) Registry() *audio.Registry { return rt.registry }

// Handlers lists the registered effects sorted by name.
func (rt *Runtime) Handlers() []Handler {
	out := make([]Handler, 0, len(rt.handlers))
	for _, h := range rt.handlers {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
