// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedSignal is returned when a signal has a zero or negative
	// rate, channel count or bit depth.
	ErrUnsupportedSignal = errors.New("unsupported signal")

	// ErrPartialFrame is returned by sinks given a sample count that does not
	// cover whole frames.
	ErrPartialFrame = errors.New("sample count must be multiple of channels")
)
