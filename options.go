// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"io"

	"github.com/ik5/audtempo/engine"
	"github.com/sirupsen/logrus"
)

type options struct {
	log      logrus.FieldLogger
	metrics  *Metrics
	engine   []engine.Option
	observer func(State)
	flags    []string
}

// Option configures Apply.
type Option func(*options)

// WithLogger sets the logger of the run. The engine logs through it too.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records the run on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithEngineOptions passes options to engine.Init.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) { o.engine = append(o.engine, opts...) }
}

// WithTempoFlags passes flags such as "-s" or "-q" to the tempo effect
// ahead of the tempo value.
func WithTempoFlags(flags ...string) Option {
	return func(o *options) { o.flags = append(o.flags, flags...) }
}

// WithObserver calls fn on every state the run enters.
func WithObserver(fn func(State)) Option {
	return func(o *options) { o.observer = fn }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = l
	}
	return o
}
