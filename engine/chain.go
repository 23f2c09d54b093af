// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audtempo/audio"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// maxEmptyReads is how many reads in a row may return no samples and no
// error before Flow gives up.
const maxEmptyReads = 100

// FlowStats summarizes one Flow call.
type FlowStats struct {
	Blocks     int
	SamplesIn  int
	SamplesOut int
	Duration   time.Duration
}

type link struct {
	name   string
	flags  Flags
	effect Effect
}

// Chain is an ordered sequence of started effects: one source, any number
// of transforms and one sink.
type Chain struct {
	rt      *Runtime
	in, out Encoding
	log     logrus.FieldLogger

	links   []link
	counter *countingSource
	tail    audio.Source
	signal  audio.Signal
	sink    SinkEffect

	deleted bool
}

// NewChain creates an empty chain bound to the source and sink encodings.
func (rt *Runtime) NewChain(in, out Encoding) *Chain {
	return &Chain{
		rt:  rt,
		in:  in,
		out: out,
		log: rt.log.WithFields(logrus.Fields{
			"in":  in.Type,
			"out": out.Type,
		}),
	}
}

// Encodings returns the source and sink encodings of the chain.
func (c *Chain) Encodings() (in, out Encoding) { return c.in, c.out }

// Len returns the number of effects running in the chain.
func (c *Chain) Len() int { return len(c.links) }

// Add starts the stage on the chain's current signal *in and appends it.
// out is the signal the caller expects after the stage. On success *in is
// set to the signal the stage produces. The stage is consumed either way.
func (c *Chain) Add(s *Stage, in *audio.Signal, out audio.Signal) error {
	if c.deleted {
		return ErrChainDeleted
	}
	if err := c.rt.alive(); err != nil {
		return err
	}
	if s == nil || s.consumed {
		return ErrStageConsumed
	}
	s.consumed = true

	name, flags := s.handler.Name, s.handler.Flags
	if in == nil {
		return fmt.Errorf("%w: %s: no input signal", ErrEffectChainRejected, name)
	}
	if err := c.accepts(flags); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEffectChainRejected, name, err)
	}

	var sink SinkEffect
	if flags&FlagSink != 0 {
		var ok bool
		if sink, ok = s.effect.(SinkEffect); !ok {
			return fmt.Errorf("%w: %s: sink effect cannot consume samples", ErrEffectChainRejected, name)
		}
	}

	src, produced, err := s.effect.Start(c.tail, *in, out)
	// only transforms may be dropped; a chain always keeps its source and sink
	if errors.Is(err, ErrNoEffect) && flags&(FlagSource|FlagSink) == 0 {
		c.log.WithField("effect", name).Debug("effect has nothing to do, dropped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEffectChainRejected, name, err)
	}

	if err := checkShape(flags, *in, produced); err != nil {
		return multierr.Append(
			fmt.Errorf("%w: %s: %w", ErrEffectChainRejected, name, err),
			s.effect.Stop(),
		)
	}

	switch {
	case flags&FlagSource != 0:
		c.counter = &countingSource{Source: src}
		c.tail = c.counter
	case flags&FlagSink != 0:
		c.sink = sink
	default:
		c.tail = src
	}
	c.signal = produced
	c.links = append(c.links, link{name: name, flags: flags, effect: s.effect})
	*in = produced

	c.log.WithFields(logrus.Fields{
		"effect": name,
		"args":   s.args,
		"signal": produced.String(),
	}).Debug("effect added")

	return nil
}

func (c *Chain) accepts(flags Flags) error {
	switch {
	case c.sink != nil:
		return errors.New("chain already ends in a sink")
	case c.tail == nil && flags&FlagSource == 0:
		return errors.New("first effect must produce samples")
	case c.tail != nil && flags&FlagSource != 0:
		return errors.New("chain already has a source")
	}
	return nil
}

func checkShape(flags Flags, in, produced audio.Signal) error {
	if flags&FlagSource != 0 {
		return produced.Validate()
	}
	if flags&FlagRate == 0 && produced.SampleRate != in.SampleRate {
		return fmt.Errorf("effect may not change the rate from %d to %d", in.SampleRate, produced.SampleRate)
	}
	if flags&FlagChannels == 0 && produced.Channels != in.Channels {
		return fmt.Errorf("effect may not change the channels from %d to %d", in.Channels, produced.Channels)
	}
	return produced.Validate()
}

// Flow pulls blocks from the last transform and writes them to the sink
// until the source is exhausted. Errors stop the flow and are returned
// with the statistics gathered so far.
func (c *Chain) Flow() (stats FlowStats, err error) {
	if c.deleted {
		return stats, ErrChainDeleted
	}
	if err := c.rt.alive(); err != nil {
		return stats, err
	}
	if c.tail == nil || c.sink == nil {
		return stats, fmt.Errorf("%w: chain needs a source and a sink", ErrEffectChainRejected)
	}

	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
		stats.SamplesIn = c.counter.samples
	}()

	ch := c.signal.Channels
	size := max(c.rt.bufSize-c.rt.bufSize%ch, ch)
	buf := make([]float32, size)

	empty := 0
	for {
		n, err := c.tail.ReadSamples(buf)
		if n == 0 && err == nil {
			if empty++; empty >= maxEmptyReads {
				return stats, fmt.Errorf("flow: %w", io.ErrNoProgress)
			}
			continue
		}
		empty = 0
		if n > 0 {
			stats.Blocks++
			w, werr := c.sink.WriteSamples(buf[:n])
			stats.SamplesOut += w
			if werr != nil {
				return stats, fmt.Errorf("flow: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("flow: %w", err)
		}
	}

	c.log.WithFields(logrus.Fields{
		"blocks":      stats.Blocks,
		"samples_in":  c.counter.samples,
		"samples_out": stats.SamplesOut,
	}).Debug("flow finished")

	return stats, nil
}

// Delete stops every effect in the chain. Only the first call succeeds.
func (c *Chain) Delete() error {
	if c.deleted {
		return ErrChainDeleted
	}
	c.deleted = true

	var err error
	for _, l := range c.links {
		if serr := l.effect.Stop(); serr != nil {
			err = multierr.Append(err, fmt.Errorf("stop %s: %w", l.name, serr))
		}
	}
	c.links = nil
	c.tail, c.sink, c.counter = nil, nil, nil

	return err
}

// countingSource counts the samples the source effect produced.
type countingSource struct {
	audio.Source
	samples int
}

func (s *countingSource) BitDepth() int { return audio.SignalOf(s.Source).BitDepth }

func (s *countingSource) ReadSamples(dst []float32) (int, error) {
	n, err := s.Source.ReadSamples(dst)
	s.samples += n
	return n, err
}
