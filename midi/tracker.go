package midi

import (
	"github.com/jsphweid/midiroll/model"
	log "github.com/sirupsen/logrus"
)

const numChannels = 16

type openNote struct {
	open     bool
	start    model.Time
	velocity uint8
}

// ChannelTracker rebuilds the notes of one channel of one track. It must see
// every event of the track, whatever its channel, to keep its clock in step.
type ChannelTracker struct {
	channel    model.Channel
	now        model.Time
	instrument model.Instrument
	notes      [128]openNote
	emit       func(model.Note)
}

func NewChannelTracker(channel model.Channel, emit func(model.Note)) *ChannelTracker {
	return &ChannelTracker{channel: channel, emit: emit}
}

func (t *ChannelTracker) Now() model.Time {
	return t.now
}

func (t *ChannelTracker) Instrument() model.Instrument {
	return t.instrument
}

func (t *ChannelTracker) Receive(delta model.Duration, e Event) {
	t.now = t.now.Add(delta)

	switch e := e.(type) {
	case NoteOnEvent:
		if e.Velocity == 0 {
			t.noteOff(e.Channel, e.Note)
			return
		}
		t.noteOn(e.Channel, e.Note, e.Velocity)
	case NoteOffEvent:
		t.noteOff(e.Channel, e.Note)
	case ProgramChangeEvent:
		if e.Channel == t.channel {
			t.instrument = e.Program
		}
	}
}

func (t *ChannelTracker) noteOn(channel model.Channel, note model.NoteNumber, velocity uint8) {
	if channel != t.channel || int(note) >= len(t.notes) {
		return
	}
	if t.notes[note].open {
		t.close(note)
	}
	t.notes[note] = openNote{open: true, start: t.now, velocity: velocity}
}

func (t *ChannelTracker) noteOff(channel model.Channel, note model.NoteNumber) {
	if channel != t.channel || int(note) >= len(t.notes) {
		return
	}
	if !t.notes[note].open {
		log.WithFields(log.Fields{
			"channel": channel,
			"note":    note,
			"time":    t.now,
		}).Debug("note off for unpressed note")
		return
	}
	t.close(note)
}

func (t *ChannelTracker) close(note model.NoteNumber) {
	n := t.notes[note]
	t.emit(model.Note{
		NoteNumber: note,
		Start:      n.start,
		Duration:   t.now.Sub(n.start),
		Velocity:   n.velocity,
		Instrument: t.instrument,
	})
	t.notes[note] = openNote{}
}

// NoteCollector broadcasts every event of a track to one tracker per
// channel. All trackers share the same sink.
type NoteCollector struct {
	trackers [numChannels]ChannelTracker
}

func NewNoteCollector(emit func(model.Note)) *NoteCollector {
	c := &NoteCollector{}
	for i := range c.trackers {
		c.trackers[i] = ChannelTracker{channel: model.Channel(i), emit: emit}
	}
	return c
}

func (c *NoteCollector) Receive(delta model.Duration, e Event) {
	for i := range c.trackers {
		c.trackers[i].Receive(delta, e)
	}
}
