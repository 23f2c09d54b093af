// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ik5/audtempo/audio"
)

// optionalCount parses an optional positive integer argument.
func optionalCount(args []any, what string) (int, error) {
	strs, err := stringArgs(args)
	if err != nil {
		return 0, err
	}
	switch len(strs) {
	case 0:
		return 0, nil
	case 1:
		v, err := strconv.Atoi(strs[0])
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%s must be a positive integer, got %q", what, strs[0])
		}
		return v, nil
	}
	return 0, fmt.Errorf("expected at most one %s, got %d arguments", what, len(strs))
}

// rateEffect resamples to a target rate, the configured one or the rate
// the caller expects next.
type rateEffect struct {
	target int
}

func (e *rateEffect) Options(args ...any) error {
	v, err := optionalCount(args, "sample rate")
	if err != nil {
		return err
	}
	e.target = v
	return nil
}

func (e *rateEffect) Start(up audio.Source, in, out audio.Signal) (audio.Source, audio.Signal, error) {
	target := e.target
	if target == 0 {
		target = out.SampleRate
	}
	if target <= 0 {
		return nil, in, errors.New("no target sample rate")
	}
	if target == in.SampleRate {
		return nil, in, ErrNoEffect
	}

	rs := audio.NewResampler(up, target)
	sig := in
	sig.SampleRate = target
	return rs, sig, nil
}

func (e *rateEffect) Stop() error { return nil }

// channelsEffect down-mixes to mono.
type channelsEffect struct {
	target int
}

func (e *channelsEffect) Options(args ...any) error {
	v, err := optionalCount(args, "channel count")
	if err != nil {
		return err
	}
	if v > 1 {
		return fmt.Errorf("only down-mixing to 1 channel is supported, got %d", v)
	}
	e.target = v
	return nil
}

func (e *channelsEffect) Start(up audio.Source, in, out audio.Signal) (audio.Source, audio.Signal, error) {
	target := e.target
	if target == 0 {
		target = out.Channels
	}
	if target == in.Channels {
		return nil, in, ErrNoEffect
	}
	if target != 1 {
		return nil, in, fmt.Errorf("cannot mix %d channels into %d", in.Channels, target)
	}

	sig := in
	sig.Channels = 1
	return audio.NewMonoMixer(up), sig, nil
}

func (e *channelsEffect) Stop() error { return nil }
