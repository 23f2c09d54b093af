// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrRuntimeInit is returned by Init when a runtime is already live in
	// this process or an option could not be applied.
	ErrRuntimeInit = errors.New("runtime init failed")

	// ErrRuntimeClosed is returned by every Runtime method after Quit.
	ErrRuntimeClosed = errors.New("runtime closed")

	ErrCannotOpenSource = errors.New("cannot open source")
	ErrCannotOpenSink   = errors.New("cannot open sink")

	ErrUnknownEffect        = errors.New("unknown effect")
	ErrInvalidEffectOptions = errors.New("invalid effect options")
	ErrEffectChainRejected  = errors.New("effect chain rejected")

	ErrFormatClosed  = errors.New("format already closed")
	ErrChainDeleted  = errors.New("chain already deleted")
	ErrStageConsumed = errors.New("stage already added to a chain")

	// ErrNoEffect is returned by Effect.Start when the effect would not
	// change the signal. The chain drops such effects.
	ErrNoEffect = errors.New("effect has nothing to do")
)
