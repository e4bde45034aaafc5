package midi

import (
	"io"
	"os"

	"github.com/jsphweid/midiroll/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type options struct {
	strict bool
}

type Option func(*options)

// Strict fails decoding on status bytes that are neither meta, sysex nor
// channel messages. By default they are skipped with a warning.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Decode reads the header and every track of an SMF stream. newReceiver is
// called once per track, in file order, before the track is decoded.
func Decode(r io.Reader, newReceiver func(track int) Receiver, opts ...Option) (model.FileHeader, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := NewCursor(r)
	h, err := ReadFileHeader(c)
	if err != nil {
		return model.FileHeader{}, errors.Wrap(err, "reading file header")
	}

	for i := 0; i < int(h.Tracks); i++ {
		if _, err := ReadTrack(c, newReceiver(i), o.strict); err != nil {
			return model.FileHeader{}, errors.Wrapf(err, "reading track %d of %d", i+1, h.Tracks)
		}
		log.WithFields(log.Fields{"track": i, "offset": c.Offset()}).Debug("decoded track")
	}
	return h, nil
}

// Collect decodes a stream and rebuilds its notes. Notes are in the order
// they ended, track after track.
func Collect(r io.Reader, opts ...Option) (model.FileHeader, []model.Note, error) {
	var notes []model.Note
	emit := func(n model.Note) {
		notes = append(notes, n)
	}
	h, err := Decode(r, func(int) Receiver {
		return NewNoteCollector(emit)
	}, opts...)
	if err != nil {
		return model.FileHeader{}, nil, err
	}
	return h, notes, nil
}

func ReadNotes(r io.Reader, opts ...Option) ([]model.Note, error) {
	_, notes, err := Collect(r, opts...)
	return notes, err
}

func ReadMidiFile(path string, opts ...Option) (model.FileHeader, []model.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.FileHeader{}, nil, errors.Wrap(err, "reading midi file")
	}
	defer f.Close()

	h, notes, err := Collect(f, opts...)
	if err != nil {
		return model.FileHeader{}, nil, errors.Wrapf(err, "parsing midi file %s", path)
	}
	return h, notes, nil
}
