// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/engine"
	"github.com/ik5/audtempo/log"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// run carries the bookkeeping of one Apply call.
type run struct {
	opts  *options
	log   logrus.FieldLogger
	state State
}

func (r *run) enter(s State) {
	r.state = s
	r.log.WithField("state", s.String()).Debug("state")
	if r.opts.observer != nil {
		r.opts.observer(s)
	}
}

func (r *run) opened(resource string) {
	if m := r.opts.metrics; m != nil {
		m.Opened.WithLabelValues(resource).Inc()
	}
}

// release closes a resource and records it, whatever close returns.
func (r *run) release(resource string, close func() error) error {
	err := close()
	if m := r.opts.metrics; m != nil {
		m.Released.WithLabelValues(resource).Inc()
	}
	if err != nil {
		r.log.WithError(err).WithField("resource", resource).Warn("release failed")
		return fmt.Errorf("release %s: %w", resource, err)
	}
	return nil
}

// fail moves the run into Failing and returns the tagged error.
func (r *run) fail(kind Kind, err error) error {
	e := &Error{Kind: kind, State: r.state, Err: err}
	if m := r.opts.metrics; m != nil {
		m.StageFailures.WithLabelValues(r.state.String()).Inc()
	}
	r.log.WithError(err).WithFields(logrus.Fields{
		"kind":  kind.String(),
		"state": r.state.String(),
	}).Error("tempo run failed")
	r.enter(Failing)
	return e
}

// finish records cleanup errors on the run result. A cleanup error after a
// fatal one is appended to it; on its own it fails the run with
// KindRelease.
func (r *run) finish(err *error, cleanup error) {
	if cleanup == nil {
		return
	}
	if e, ok := (*err).(*Error); ok {
		e.Err = multierr.Append(e.Err, cleanup)
		return
	}
	*err = r.fail(KindRelease, cleanup)
}

// Apply changes the tempo of inPath and writes the result to outPath with
// the signal of the input. tempo is passed to the tempo effect verbatim.
//
// Every acquired resource is released before Apply returns, in reverse
// order of acquisition. A run that fails before the output is committed
// discards it. Any failure is returned as an *Error.
func Apply(inPath, outPath, tempo string, opts ...Option) (err error) {
	o := newOptions(opts)
	r := &run{
		opts: o,
		log: o.log.WithFields(logrus.Fields{
			"run":   uuid.NewString(),
			"tempo": tempo,
		}),
	}

	var cleanup error
	defer func() {
		r.finish(&err, cleanup)
		result := "success"
		if err != nil {
			result = "failure"
		} else {
			r.enter(TornDown)
		}
		if m := o.metrics; m != nil {
			m.Runs.WithLabelValues(result).Inc()
		}
	}()

	r.enter(Uninitialized)

	rt, err := engine.Init(append([]engine.Option{engine.WithLogger(r.log)}, o.engine...)...)
	if err != nil {
		return r.fail(KindRuntimeInit, err)
	}
	r.opened(ResourceRuntime)
	defer func() { cleanup = multierr.Append(cleanup, r.release(ResourceRuntime, rt.Quit)) }()
	r.enter(RuntimeReady)

	src, err := rt.OpenRead(inPath)
	if err != nil {
		return r.fail(KindOpenSource, err)
	}
	r.opened(ResourceSource)
	defer func() { cleanup = multierr.Append(cleanup, r.release(ResourceSource, src.Close)) }()
	r.enter(SourceOpen)

	signal := src.Signal()
	sink, err := rt.OpenWrite(outPath, signal)
	if err != nil {
		return r.fail(KindOpenSink, err)
	}
	r.opened(ResourceSink)
	defer func() {
		if err != nil || cleanup != nil {
			sink.Discard()
		}
		cleanup = multierr.Append(cleanup, r.release(ResourceSink, sink.Close))
	}()
	r.enter(SinkOpen)

	chain := rt.NewChain(src.Encoding(), sink.Encoding())
	r.opened(ResourceChain)
	defer func() { cleanup = multierr.Append(cleanup, r.release(ResourceChain, chain.Delete)) }()
	r.enter(ChainBuilt)

	tempoArgs := make([]any, 0, len(o.flags)+1)
	for _, f := range o.flags {
		tempoArgs = append(tempoArgs, f)
	}
	tempoArgs = append(tempoArgs, tempo)

	steps := []struct {
		effect string
		args   []any
		state  State
	}{
		{effect: "input", args: []any{src}, state: InputAppended},
		{effect: "tempo", args: tempoArgs, state: TempoAppended},
		{effect: "output", args: []any{sink}, state: OutputAppended},
	}

	for _, step := range steps {
		if err := appendEffect(rt, chain, &signal, sink.Signal(), step.effect, step.args...); err != nil {
			return r.fail(effectKind(err), err)
		}
		r.enter(step.state)
	}

	stats, ferr := chain.Flow()
	if m := o.metrics; m != nil {
		m.FlowDuration.Observe(stats.Duration.Seconds())
	}
	from, to := chain.Encodings()
	fields := logrus.Fields{
		"from":        from.Type,
		"to":          to.Type,
		"blocks":      stats.Blocks,
		"samples_in":  stats.SamplesIn,
		"samples_out": stats.SamplesOut,
		"duration":    stats.Duration,
	}
	if ferr != nil {
		if m := o.metrics; m != nil {
			m.FlowSoftFailures.Inc()
		}
		r.log.WithError(ferr).WithFields(fields).Warn("flow stopped early")
	} else {
		r.log.WithFields(fields).Debug("flow done")
	}
	r.enter(Flowed)

	return nil
}

func appendEffect(rt *engine.Runtime, chain *engine.Chain, in *audio.Signal, out audio.Signal, name string, args ...any) error {
	stage, err := rt.NewEffect(name)
	if err != nil {
		return err
	}
	if err := stage.Options(args...); err != nil {
		return err
	}
	return chain.Add(stage, in, out)
}

// ApplyTempo runs Apply with the process logger and reports the result as
// a status code: 0 on success and -1 on failure.
func ApplyTempo(inPath, outPath, tempo string) int {
	logger := log.GetLogger()
	if err := Apply(inPath, outPath, tempo, WithLogger(logger)); err != nil {
		return -1
	}
	logger.Infof("Tempo done: %s", tempo)
	return 0
}
