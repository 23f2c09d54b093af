// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding.
//
// This package uses github.com/go-audio/aiff. AIFF stores signed big-endian
// integer PCM, so every common sample size maps cleanly onto the float32
// range used by the audio package.
//
// # Supported Formats
//
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// AIFF-C compressed data is not supported.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, aiff.ErrNotAiffFile)
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory.
//
// # Writing AIFF Files
//
//	out, _ := os.Create("out.aiff")
//	sink, err := aiff.Encoder{}.Encode(out, audio.SignalOf(src))
//	if err != nil {
//	    // Handle error
//	}
//	sink.WriteSamples(buf[:n])
//	sink.Close()
//	out.Close()
//
// The chunk sizes are patched when the sink is closed, so the writer must
// stay open until then.
package aiff
