// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/audtempo/audio"
)

// Flags describe what an effect may do to the chain.
type Flags uint8

const (
	// FlagSource marks an effect that produces samples; it must be first.
	FlagSource Flags = 1 << iota
	// FlagSink marks an effect that consumes samples; it must be last.
	FlagSink
	// FlagRate marks an effect allowed to change the sample rate.
	FlagRate
	// FlagChannels marks an effect allowed to change the channel count.
	FlagChannels
)

func (f Flags) String() string {
	var parts []string
	for _, v := range []struct {
		flag Flags
		name string
	}{
		{FlagSource, "source"},
		{FlagSink, "sink"},
		{FlagRate, "rate"},
		{FlagChannels, "channels"},
	} {
		if f&v.flag != 0 {
			parts = append(parts, v.name)
		}
	}
	return strings.Join(parts, "|")
}

// Effect is one processing unit of a chain.
//
// Start binds the effect to the upstream source (nil for FlagSource
// effects) and the chain's current signal in, with out as the signal the
// caller expects next. It returns the source the next effect pulls from
// and the signal it produces. Returning ErrNoEffect asks the chain to skip
// the effect.
type Effect interface {
	Options(args ...any) error
	Start(up audio.Source, in, out audio.Signal) (audio.Source, audio.Signal, error)
	Stop() error
}

// SinkEffect is implemented by FlagSink effects; Flow writes every block
// to it.
type SinkEffect interface {
	Effect
	WriteSamples(src []float32) (int, error)
}

// Handler registers an effect under a name.
type Handler struct {
	Name  string
	Usage string
	Flags Flags
	New   func() Effect
}

// Stage is an effect instance waiting to be added to a chain.
type Stage struct {
	handler  *Handler
	effect   Effect
	args     []any
	consumed bool
}

// NewEffect creates a stage for the named effect.
func (rt *Runtime) NewEffect(name string) (*Stage, error) {
	if err := rt.alive(); err != nil {
		return nil, err
	}

	h, ok := rt.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	return &Stage{handler: h, effect: h.New()}, nil
}

func (s *Stage) Name() string { return s.handler.Name }
func (s *Stage) Args() []any  { return s.args }

// Options configures the stage. It may be called again to replace the
// arguments until the stage is added to a chain.
func (s *Stage) Options(args ...any) error {
	if s.consumed {
		return ErrStageConsumed
	}
	if err := s.effect.Options(args...); err != nil {
		return fmt.Errorf("%w: %s: %w (usage: %s %s)", ErrInvalidEffectOptions, s.handler.Name, err, s.handler.Name, s.handler.Usage)
	}
	s.args = append(s.args[:0], args...)
	return nil
}

// stringArgs renders scalar arguments as text so effects can parse
// "1.5" and 1.5 the same way.
func stringArgs(args []any) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
		case float32:
			out = append(out, strconv.FormatFloat(float64(v), 'g', -1, 32))
		case int:
			out = append(out, strconv.Itoa(v))
		case fmt.Stringer:
			out = append(out, v.String())
		default:
			return nil, fmt.Errorf("argument %d: unsupported type %T", i, a)
		}
	}
	return out, nil
}

func builtinHandlers() map[string]*Handler {
	hs := []*Handler{
		{
			Name:  "input",
			Usage: "<read format>",
			Flags: FlagSource,
			New:   func() Effect { return &inputEffect{} },
		},
		{
			Name:  "output",
			Usage: "<write format>",
			Flags: FlagSink,
			New:   func() Effect { return &outputEffect{} },
		},
		{
			Name:  "tempo",
			Usage: "[-q] [-m|-s|-l] factor [segment-ms [search-ms [overlap-ms]]]",
			New:   func() Effect { return &tempoEffect{} },
		},
		{
			Name:  "rate",
			Usage: "[sample-rate]",
			Flags: FlagRate,
			New:   func() Effect { return &rateEffect{} },
		},
		{
			Name:  "channels",
			Usage: "[1]",
			Flags: FlagChannels,
			New:   func() Effect { return &channelsEffect{} },
		},
	}

	m := make(map[string]*Handler, len(hs))
	for _, h := range hs {
		m[h.Name] = h
	}
	return m
}
