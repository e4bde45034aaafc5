// Package sample cuts a short excerpt out of a MIDI file: the first note
// events after a tick offset, with every other event kept so instruments and
// tempo still apply.
package sample

import (
	"bytes"
	"math"
	"os"

	"github.com/jsphweid/midiroll/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

// Create keeps at most maxNoteEvents note on/off events per track starting at
// ticksOffset, so the excerpt starts at tick 0. Other events before the offset
// are kept at tick 0.
func Create(mf *smf.SMF, ticksOffset uint64, maxNoteEvents int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		var numNoteOnOff int
		last := ticksOffset
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			if isEndOfTrack(evt.Message) {
				break
			}

			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)
			if absTicks < ticksOffset {
				if isNote {
					continue
				}
				evt.Delta = 0
			} else {
				evt.Delta = uint32(util.Min(absTicks-last, math.MaxUint32))
				last = absTicks
			}
			newTrack = append(newTrack, evt)

			if isNote {
				numNoteOnOff += 1
				if numNoteOnOff >= maxNoteEvents {
					break
				}
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}

// parse turns the panics smf.ReadFrom raises on some malformed files into
// errors. https://github.com/gomidi/midi/issues/20
func parse(dat []byte) (mf *smf.SMF, err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case string:
			mf, err = nil, errors.New(r)
		case error:
			mf, err = nil, r
		default:
			panic(r)
		}
	}()
	return smf.ReadFrom(bytes.NewReader(dat))
}

// CreateFile reads in, cuts an excerpt and writes it to out.
func CreateFile(in, out string, ticksOffset uint64, maxNoteEvents int) error {
	dat, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "error reading midi file")
	}
	mf, err := parse(dat)
	if err != nil {
		return errors.Wrap(err, "error parsing midi file")
	}

	var buf bytes.Buffer
	if _, err := Create(mf, ticksOffset, maxNoteEvents).WriteTo(&buf); err != nil {
		return errors.Wrap(err, "error writing excerpt")
	}
	return errors.Wrap(os.WriteFile(out, buf.Bytes(), 0666), "error writing excerpt")
}
