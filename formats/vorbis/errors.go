// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbisFile is returned when the input has no readable Vorbis
// identification header.
var ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")
