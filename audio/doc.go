// SPDX-License-Identifier: EPL-2.0

// Package audio provides the codec-neutral building blocks shared by the
// format packages and the effects engine.
//
// # Sources and Sinks
//
// Decoders produce a Source, a pull stream of interleaved float32 samples in
// [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Encoders produce a Sink, which accepts the same sample layout and writes it
// to an io.WriteSeeker in the target container. Closing a Sink finalizes the
// container headers but leaves the underlying writer open; the caller owns it.
//
// # Signal
//
// Signal is the (rate, channels, bit depth) triple describing a stream. It is
// copied by value: the sink of a tempo change is configured with the exact
// Signal of its source.
//
//	sig := audio.SignalOf(src)
//	sink, err := wav.Encoder{}.Encode(file, sig)
//
// # Registry
//
// Registry maps a format key ("wav", "aiff", "mp3", "ogg") to its Decoder and,
// when the format can be written, its Encoder:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.RegisterEncoder("wav", wav.Encoder{})
//
// # Stream Transforms
//
// Resampler changes the sample rate with cubic interpolation and MonoMixer
// folds all channels into one. Both wrap another Source, so they can be stacked:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
package audio
