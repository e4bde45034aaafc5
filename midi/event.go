package midi

import "github.com/jsphweid/midiroll/model"

// Kind identifies the type of a decoded track event.
type Kind uint8

const (
	KindMeta Kind = iota
	KindSysEx
	KindNoteOff
	KindNoteOn
	KindPolyPressure
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchWheel
)

var kindNames = [...]string{
	KindMeta:            "meta",
	KindSysEx:           "sysex",
	KindNoteOff:         "note-off",
	KindNoteOn:          "note-on",
	KindPolyPressure:    "poly-pressure",
	KindControlChange:   "control-change",
	KindProgramChange:   "program-change",
	KindChannelPressure: "channel-pressure",
	KindPitchWheel:      "pitch-wheel",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one decoded track event. The concrete types below are the only
// implementations.
type Event interface {
	Kind() Kind
}

const MetaEndOfTrack = 0x2F

type MetaEvent struct {
	Type uint8
	Data []byte
}

type SysExEvent struct {
	// 0xF0 or 0xF7
	Status uint8
	Data   []byte
}

type NoteOffEvent struct {
	Channel  model.Channel
	Note     model.NoteNumber
	Velocity uint8
}

type NoteOnEvent struct {
	Channel  model.Channel
	Note     model.NoteNumber
	Velocity uint8
}

type PolyPressureEvent struct {
	Channel  model.Channel
	Note     model.NoteNumber
	Pressure uint8
}

type ControlChangeEvent struct {
	Channel    model.Channel
	Controller uint8
	Value      uint8
}

type ProgramChangeEvent struct {
	Channel model.Channel
	Program model.Instrument
}

type ChannelPressureEvent struct {
	Channel  model.Channel
	Pressure uint8
}

// PitchWheelEvent carries the 14 bit wheel position, 0x2000 being centered.
type PitchWheelEvent struct {
	Channel model.Channel
	Value   uint16
}

func (MetaEvent) Kind() Kind            { return KindMeta }
func (SysExEvent) Kind() Kind           { return KindSysEx }
func (NoteOffEvent) Kind() Kind         { return KindNoteOff }
func (NoteOnEvent) Kind() Kind          { return KindNoteOn }
func (PolyPressureEvent) Kind() Kind    { return KindPolyPressure }
func (ControlChangeEvent) Kind() Kind   { return KindControlChange }
func (ProgramChangeEvent) Kind() Kind   { return KindProgramChange }
func (ChannelPressureEvent) Kind() Kind { return KindChannelPressure }
func (PitchWheelEvent) Kind() Kind      { return KindPitchWheel }

// A Receiver is handed every decoded event of a track together with the
// delta time that preceded it.
type Receiver interface {
	Receive(delta model.Duration, e Event)
}

type ReceiverFunc func(delta model.Duration, e Event)

func (f ReceiverFunc) Receive(delta model.Duration, e Event) {
	f(delta, e)
}
