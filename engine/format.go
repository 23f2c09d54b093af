// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/ik5/audtempo/audio"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Mode tells whether a Format is read or written.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

// Encoding is the container type and stored precision of a Format.
type Encoding struct {
	Type     string
	BitDepth int
}

// Format is one open audio stream bound to a path. Read formats own a
// decoded source and its file; write formats own an encoder sink and a
// pending file that only replaces Path when the format is closed without
// being discarded.
type Format struct {
	path     string
	mode     Mode
	signal   audio.Signal
	encoding Encoding
	log      logrus.FieldLogger

	file *os.File
	src  audio.Source

	pending   *renameio.PendingFile
	sink      audio.Sink
	discarded bool

	closed bool
}

func (f *Format) Path() string         { return f.path }
func (f *Format) Mode() Mode           { return f.mode }
func (f *Format) Signal() audio.Signal { return f.signal }
func (f *Format) Encoding() Encoding   { return f.encoding }
func (f *Format) Closed() bool         { return f.closed }
func (f *Format) String() string       { return f.mode.String() + ":" + f.path }
func (f *Format) source() audio.Source { return f.src }
func (f *Format) writer() audio.Sink   { return f.sink }

var extensions = map[string]string{
	".wav":  "wav",
	".wave": "wav",
	".aif":  "aiff",
	".aiff": "aiff",
	".aifc": "aiff",
	".mp3":  "mp3",
	".ogg":  "ogg",
	".oga":  "ogg",
}

func typeFromExt(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// sniff identifies a container from its first bytes.
func sniff(head []byte) string {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return "wav"
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return "aiff"
	case len(head) >= 4 && bytes.Equal(head[:4], []byte("OggS")):
		return "ogg"
	case len(head) >= 3 && bytes.Equal(head[:3], []byte("ID3")):
		return "mp3"
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return "mp3"
	}
	return ""
}

// OpenRead opens path for decoding. The container is detected from the
// content, then from the extension.
func (rt *Runtime) OpenRead(path string) (*Format, error) {
	if err := rt.alive(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenSource, err)
	}

	f, err := rt.decode(path, file)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("%w: %s: %w", ErrCannotOpenSource, path, err), file.Close())
	}

	rt.log.WithFields(logrus.Fields{
		"path":   path,
		"type":   f.encoding.Type,
		"signal": f.signal.String(),
	}).Debug("source opened")

	return f, nil
}

func (rt *Runtime) decode(path string, file *os.File) (*Format, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	typ := sniff(head[:n])
	if typ == "" {
		typ = typeFromExt(path)
	}
	dec, ok := rt.registry.Get(typ)
	if !ok {
		return nil, fmt.Errorf("unrecognized format %q", filepath.Ext(path))
	}

	src, err := dec.Decode(file)
	if err != nil {
		return nil, err
	}

	sig := audio.SignalOf(src)
	if err := sig.Validate(); err != nil {
		return nil, multierr.Append(err, src.Close())
	}

	return &Format{
		path:     path,
		mode:     ModeRead,
		signal:   sig,
		encoding: Encoding{Type: typ, BitDepth: sig.BitDepth},
		log:      rt.log,
		file:     file,
		src:      src,
	}, nil
}

// OpenWrite opens path for encoding sig. The encoder is chosen by the
// extension of path. Nothing appears at path until the format is closed.
func (rt *Runtime) OpenWrite(path string, sig audio.Signal) (*Format, error) {
	if err := rt.alive(); err != nil {
		return nil, err
	}

	typ := typeFromExt(path)
	enc, ok := rt.registry.GetEncoder(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s: no encoder for %q", ErrCannotOpenSink, path, filepath.Ext(path))
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotOpenSink, err)
	}

	sink, err := enc.Encode(pending, sig)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("%w: %s: %w", ErrCannotOpenSink, path, err), pending.Cleanup())
	}

	rt.log.WithFields(logrus.Fields{
		"path":   path,
		"type":   typ,
		"signal": sig.String(),
	}).Debug("sink opened")

	return &Format{
		path:     path,
		mode:     ModeWrite,
		signal:   sig,
		encoding: Encoding{Type: typ, BitDepth: sig.BitDepth},
		log:      rt.log,
		pending:  pending,
		sink:     sink,
	}, nil
}

// Discard marks a write format so Close removes the pending file instead
// of committing it. It has no effect on read formats.
func (f *Format) Discard() {
	if f.mode == ModeWrite {
		f.discarded = true
	}
}

// Close releases the codec and the file. A write format is committed to
// its path unless it was discarded or finalizing the stream failed.
func (f *Format) Close() error {
	if f.closed {
		return ErrFormatClosed
	}
	f.closed = true

	var err error
	switch f.mode {
	case ModeRead:
		err = multierr.Append(f.src.Close(), f.file.Close())
	case ModeWrite:
		err = f.sink.Close()
		if err != nil || f.discarded {
			err = multierr.Append(err, f.pending.Cleanup())
		} else {
			err = f.pending.CloseAtomicallyReplace()
		}
	}

	f.log.WithFields(logrus.Fields{
		"path":      f.path,
		"mode":      f.mode.String(),
		"discarded": f.discarded,
	}).Debug("format closed")

	if err != nil {
		return fmt.Errorf("close %s: %w", f, err)
	}
	return nil
}
