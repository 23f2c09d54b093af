// SPDX-License-Identifier: EPL-2.0

// Package audtempo changes the tempo of an audio file without changing its
// pitch.
//
// A run opens the input, opens the output with the same signal, builds an
// input → tempo → output chain on the engine package and flows every
// sample through it:
//
//	if err := audtempo.Apply("song.mp3", "song_1.25.wav", "1.25"); err != nil {
//	    var e *audtempo.Error
//	    if errors.As(err, &e) {
//	        fmt.Println(e.Kind, e.State)
//	    }
//	}
//
// Every resource acquired by a run (runtime, source, sink, chain) is
// released on every exit path, in reverse order. A failed run discards its
// output, so the output path is never left half written.
//
// ApplyTempo is the host boundary: it returns 0 on success and -1 on any
// failure.
//
// # Supported Formats
//
// Input is detected from the content: WAV, AIFF, MP3 and Ogg Vorbis. The
// output container is chosen by the extension of the output path and may
// be WAV or AIFF. MP3 and Vorbis inputs are written at 16 bits.
//
// # Tempo
//
// The tempo is a decimal multiplier in [0.1, 100]; "1.5" plays 50% faster
// and the output lasts input/1.5. TempoChoices lists the menu values
// offered by the player, and OutputPath names the converted file.
//
// # Observability
//
// WithLogger routes run logs to a logrus logger, and WithMetrics counts
// runs, failures and resource acquisition on a prometheus registry.
package audtempo
