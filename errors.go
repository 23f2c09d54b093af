// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"errors"
	"fmt"

	"github.com/ik5/audtempo/engine"
)

// Kind classifies why a run failed.
type Kind int

const (
	KindRuntimeInit Kind = iota + 1
	KindOpenSource
	KindOpenSink
	KindUnknownEffect
	KindInvalidEffectOptions
	KindEffectChainRejected
	// KindRelease means every step succeeded but releasing a resource,
	// such as committing the output file, did not.
	KindRelease
)

var kindNames = map[Kind]string{
	KindRuntimeInit:          "runtime init failed",
	KindOpenSource:           "cannot open source",
	KindOpenSink:             "cannot open sink",
	KindUnknownEffect:        "unknown effect",
	KindInvalidEffectOptions: "invalid effect options",
	KindEffectChainRejected:  "effect chain rejected",
	KindRelease:              "release failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by Apply. State is the last state the run reached
// before failing.
type Error struct {
	Kind  Kind
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (state %s): %v", e.Kind, e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// effectKind maps a stage or chain error to its kind.
func effectKind(err error) Kind {
	switch {
	case errors.Is(err, engine.ErrUnknownEffect):
		return KindUnknownEffect
	case errors.Is(err, engine.ErrInvalidEffectOptions):
		return KindInvalidEffectOptions
	default:
		return KindEffectChainRejected
	}
}
