// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes straight
// to float samples, so the source has no native bit depth; it reports
// audio.DefaultBitDepth, which is what a sink built from its signal will use.
//
//	file, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotVorbisFile)
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are interleaved [L0, R0, L1, R1, ...] and len(dst) must be a
// multiple of the channel count.
//
// Encoding is not supported.
package vorbis
