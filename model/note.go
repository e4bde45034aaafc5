package model

import "fmt"

// Channel is a MIDI channel, 0-15. Values outside that range are a
// programming error and are not checked.
type Channel uint8

// NoteNumber is a MIDI pitch, 0-127.
type NoteNumber uint8

// Instrument is a program number, 0-127.
type Instrument uint8

// Time is an absolute tick count since the start of a track.
type Time uint64

// Duration is a tick count.
type Duration uint64

func (t Time) Add(d Duration) Time {
	return Time(uint64(t) + uint64(d))
}

// Sub returns the ticks elapsed between u and t. u must not be after t.
func (t Time) Sub(u Time) Duration {
	return Duration(uint64(t) - uint64(u))
}

func (d Duration) Add(e Duration) Duration {
	return Duration(uint64(d) + uint64(e))
}

type Note struct {
	NoteNumber NoteNumber `json:"note_number"`
	Start      Time       `json:"start"`
	Duration   Duration   `json:"duration"`
	Velocity   uint8      `json:"velocity"`
	Instrument Instrument `json:"instrument"`
}

func (n Note) End() Time {
	return n.Start.Add(n.Duration)
}

func (n Note) String() string {
	return fmt.Sprintf("Note(number=%d,start=%d,duration=%d,velocity=%d,instrument=%d)",
		n.NoteNumber, n.Start, n.Duration, n.Velocity, n.Instrument)
}

// IndexedNote is a note tagged with the number of the file it came from.
type IndexedNote struct {
	FileNum uint32
	Note    Note
}

type FileNumToMidiPath = map[uint32]string
