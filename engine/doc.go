// SPDX-License-Identifier: EPL-2.0

// Package engine runs named audio effects over decoded files.
//
// # Runtime
//
// Every operation needs the *Runtime token returned by Init. Only one
// runtime may be live in a process; a second Init fails with
// ErrRuntimeInit until the first is released with Quit:
//
//	rt, err := engine.Init(engine.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer rt.Quit()
//
// # Formats
//
// OpenRead detects the container of a file (WAV, AIFF, MP3, Ogg Vorbis) and
// decodes it. OpenWrite creates an encoder for the container named by the
// file extension (WAV or AIFF). Written data goes to a pending file next to
// the target, which Close renames into place. Call Discard before Close to
// throw the output away:
//
//	src, err := rt.OpenRead("in.mp3")
//	sink, err := rt.OpenWrite("out.wav", src.Signal())
//	defer sink.Close()
//
// # Chains
//
// A chain is one source effect, any number of transforms and one sink
// effect. Stages are created by name, configured, then added in order;
// Add keeps track of the signal between stages:
//
//	chain := rt.NewChain(src.Encoding(), sink.Encoding())
//	defer chain.Delete()
//
//	sig := src.Signal()
//	stage, _ := rt.NewEffect("input")
//	stage.Options(src)
//	chain.Add(stage, &sig, src.Signal())
//
//	stage, _ = rt.NewEffect("tempo")
//	stage.Options("1.25")
//	chain.Add(stage, &sig, sig)
//
//	stage, _ = rt.NewEffect("output")
//	stage.Options(sink)
//	chain.Add(stage, &sig, sink.Signal())
//
//	stats, err := chain.Flow()
//
// # Effects
//
//	input     <read format>       source
//	output    <write format>      sink
//	tempo     [-q] [-m|-s|-l] factor [segment-ms [search-ms [overlap-ms]]]
//	rate      [sample-rate]       cubic resampling
//	channels  [1]                 down-mix to mono
//
// tempo keeps the pitch and produces round(frames/factor) frames. The -m,
// -s and -l flags select window lengths for music (the default), speech
// and a search-free linear splice; -q searches with a coarser step.
// Effects that would not change the signal, such as tempo 1, are dropped
// from the chain when added.
package engine
