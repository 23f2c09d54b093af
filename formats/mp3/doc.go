// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// interleaved stereo 16 bit PCM regardless of the channel mode of the
// stream. The source therefore reports two channels and a bit depth of 16.
//
//	file, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// ReadSamples only returns whole frames; dst must hold an even number of
// samples.
//
// Encoding is not supported. A tempo change of an MP3 input is written to
// one of the writable containers instead.
package mp3
