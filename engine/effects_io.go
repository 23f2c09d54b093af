// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"

	"github.com/ik5/audtempo/audio"
)

func formatArg(args []any, mode Mode) (*Format, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected one %s format, got %d arguments", mode, len(args))
	}
	f, ok := args[0].(*Format)
	if !ok || f == nil {
		return nil, fmt.Errorf("expected a %s format, got %T", mode, args[0])
	}
	if f.Mode() != mode {
		return nil, fmt.Errorf("%s is not a %s format", f, mode)
	}
	return f, nil
}

// inputEffect feeds the chain from a read format.
type inputEffect struct {
	format *Format
}

func (e *inputEffect) Options(args ...any) error {
	f, err := formatArg(args, ModeRead)
	if err != nil {
		return err
	}
	e.format = f
	return nil
}

func (e *inputEffect) Start(_ audio.Source, in, _ audio.Signal) (audio.Source, audio.Signal, error) {
	if e.format == nil {
		return nil, in, errors.New("no format configured")
	}
	if e.format.Closed() {
		return nil, in, ErrFormatClosed
	}
	sig := e.format.Signal()
	if !in.SameShape(sig) {
		return nil, in, fmt.Errorf("chain signal %s does not match source %s", in, sig)
	}
	return e.format.source(), sig, nil
}

func (e *inputEffect) Stop() error { return nil }

// outputEffect drains the chain into a write format.
type outputEffect struct {
	format *Format
	sink   audio.Sink
}

func (e *outputEffect) Options(args ...any) error {
	f, err := formatArg(args, ModeWrite)
	if err != nil {
		return err
	}
	e.format = f
	return nil
}

func (e *outputEffect) Start(_ audio.Source, in, _ audio.Signal) (audio.Source, audio.Signal, error) {
	if e.format == nil {
		return nil, in, errors.New("no format configured")
	}
	if e.format.Closed() {
		return nil, in, ErrFormatClosed
	}
	if sig := e.format.Signal(); !in.SameShape(sig) {
		return nil, in, fmt.Errorf("chain signal %s does not match sink %s", in, sig)
	}
	e.sink = e.format.writer()
	return nil, in, nil
}

func (e *outputEffect) WriteSamples(src []float32) (int, error) {
	if e.sink == nil {
		return 0, errors.New("output not started")
	}
	return e.sink.WriteSamples(src)
}

func (e *outputEffect) Stop() error {
	e.sink = nil
	return nil
}
