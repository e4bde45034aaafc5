package midi

import (
	"testing"

	"github.com/jsphweid/midiroll/model"
	"github.com/stretchr/testify/assert"
)

type step struct {
	delta model.Duration
	event Event
}

func collect(steps ...step) []model.Note {
	var notes []model.Note
	c := NewNoteCollector(func(n model.Note) {
		notes = append(notes, n)
	})
	for _, s := range steps {
		c.Receive(s.delta, s.event)
	}
	return notes
}

func TestTrackerPairsNoteOnAndOff(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{480, NoteOffEvent{Channel: 0, Note: 60}},
	)
	assert.Equal(t, []model.Note{{NoteNumber: 60, Start: 0, Duration: 480, Velocity: 100, Instrument: 0}}, notes)
}

func TestZeroVelocityNoteOnIsNoteOff(t *testing.T) {
	withOff := collect(
		step{10, NoteOnEvent{Channel: 3, Note: 64, Velocity: 90}},
		step{120, NoteOffEvent{Channel: 3, Note: 64, Velocity: 0}},
	)
	withOn := collect(
		step{10, NoteOnEvent{Channel: 3, Note: 64, Velocity: 90}},
		step{120, NoteOnEvent{Channel: 3, Note: 64, Velocity: 0}},
	)
	assert.Equal(t, withOff, withOn)
	assert.Equal(t, []model.Note{{NoteNumber: 64, Start: 10, Duration: 120, Velocity: 90}}, withOn)
}

func TestConsecutiveNoteOnClosesOpenNote(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{100, NoteOnEvent{Channel: 0, Note: 60, Velocity: 50}},
		step{200, NoteOffEvent{Channel: 0, Note: 60}},
	)
	assert.Equal(t, []model.Note{
		{NoteNumber: 60, Start: 0, Duration: 100, Velocity: 100},
		{NoteNumber: 60, Start: 100, Duration: 200, Velocity: 50},
	}, notes)
}

func TestConsecutiveNoteOnAtSameTick(t *testing.T) {
	notes := collect(
		step{40, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{10, NoteOffEvent{Channel: 0, Note: 60}},
	)
	assert.Equal(t, []model.Note{
		{NoteNumber: 60, Start: 40, Duration: 0, Velocity: 100},
		{NoteNumber: 60, Start: 40, Duration: 10, Velocity: 100},
	}, notes)
}

func TestNoteOffWithoutNoteOnIsDropped(t *testing.T) {
	notes := collect(
		step{0, NoteOffEvent{Channel: 0, Note: 60}},
		step{10, NoteOnEvent{Channel: 0, Note: 62, Velocity: 0}},
	)
	assert.Empty(t, notes)
}

func TestEveryEventAdvancesTime(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{10, MetaEvent{Type: 0x51, Data: []byte{0x07, 0xA1, 0x20}}},
		step{10, SysExEvent{Status: 0xF0, Data: []byte{0xF7}}},
		step{10, ControlChangeEvent{Channel: 9, Controller: 64, Value: 127}},
		step{10, PolyPressureEvent{Channel: 0, Note: 60, Pressure: 3}},
		step{10, ChannelPressureEvent{Channel: 4, Pressure: 3}},
		step{10, PitchWheelEvent{Channel: 0, Value: 0x2000}},
		step{10, NoteOnEvent{Channel: 5, Note: 30, Velocity: 1}},
		step{10, NoteOffEvent{Channel: 0, Note: 60}},
	)
	assert.Equal(t, []model.Note{{NoteNumber: 60, Start: 0, Duration: 80, Velocity: 100}}, notes)
}

func TestProgramChangeOnlyAffectsItsChannel(t *testing.T) {
	notes := collect(
		step{0, ProgramChangeEvent{Channel: 1, Program: 40}},
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{0, NoteOnEvent{Channel: 1, Note: 60, Velocity: 100}},
		step{10, NoteOffEvent{Channel: 0, Note: 60}},
		step{10, NoteOffEvent{Channel: 1, Note: 60}},
	)
	assert.Equal(t, []model.Note{
		{NoteNumber: 60, Start: 0, Duration: 10, Velocity: 100, Instrument: 0},
		{NoteNumber: 60, Start: 0, Duration: 20, Velocity: 100, Instrument: 40},
	}, notes)
}

func TestInstrumentIsTakenAtNoteEnd(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 2, Note: 48, Velocity: 70}},
		step{5, ProgramChangeEvent{Channel: 2, Program: 12}},
		step{5, NoteOffEvent{Channel: 2, Note: 48}},
	)
	assert.Equal(t, model.Instrument(12), notes[0].Instrument)
}

func TestNotesAreEmittedInCompletionOrder(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 0, Note: 60, Velocity: 100}},
		step{0, NoteOnEvent{Channel: 1, Note: 67, Velocity: 100}},
		step{10, NoteOffEvent{Channel: 1, Note: 67}},
		step{10, NoteOffEvent{Channel: 0, Note: 60}},
	)
	assert.Equal(t, []model.NoteNumber{67, 60}, []model.NoteNumber{notes[0].NoteNumber, notes[1].NoteNumber})
}

func TestOutOfRangeNoteNumbersAreIgnored(t *testing.T) {
	notes := collect(
		step{0, NoteOnEvent{Channel: 0, Note: 200, Velocity: 100}},
		step{10, NoteOffEvent{Channel: 0, Note: 200}},
	)
	assert.Empty(t, notes)
}

func TestChannelTracker(t *testing.T) {
	var notes []model.Note
	tr := NewChannelTracker(7, func(n model.Note) { notes = append(notes, n) })

	tr.Receive(5, NoteOnEvent{Channel: 6, Note: 60, Velocity: 10})
	tr.Receive(5, ProgramChangeEvent{Channel: 6, Program: 3})
	tr.Receive(5, NoteOffEvent{Channel: 6, Note: 60})

	assert.Empty(t, notes)
	assert.Equal(t, model.Time(15), tr.Now())
	assert.Equal(t, model.Instrument(0), tr.Instrument())
}
