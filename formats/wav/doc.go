// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// It uses github.com/go-audio/wav for the RIFF container handling and
// converts between integer PCM and the float32 samples used by the audio
// package.
//
// # Supported Formats
//
// Reading and writing:
//   - Integer PCM at 16, 24 and 32 bits
//   - WAVE_FORMAT_EXTENSIBLE headers carrying integer PCM (read only)
//   - Any channel count and sample rate
//
// 8-bit WAV stores unsigned samples and is rejected with
// ErrUnsupportedBitDepth, as is IEEE float data (ErrOnlyPCMSupported).
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The decoded source reports its bit depth, so audio.SignalOf(src) returns
// the exact signal of the file.
//
// # Writing WAV Files
//
// Encoder writes to any io.WriteSeeker. The header sizes are patched when the
// sink is closed:
//
//	out, _ := os.Create("out.wav")
//	sink, err := wav.Encoder{}.Encode(out, audio.SignalOf(src))
//	if err != nil {
//	    // Handle error
//	}
//	sink.WriteSamples(buf[:n])
//	sink.Close()
//	out.Close()
//
// Closing a sink that received no samples still produces a valid, empty
// WAV file.
package wav
