package midi

import (
	"fmt"

	"github.com/jsphweid/midiroll/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	statusMeta        = 0xFF
	statusSysEx       = 0xF0
	statusSysExEscape = 0xF7

	noteOff         = 0x8
	noteOn          = 0x9
	polyPressure    = 0xA
	controlChange   = 0xB
	programChange   = 0xC
	channelPressure = 0xD
)

type trackState uint8

const (
	awaitingEvent trackState = iota
	done
)

func isRunningStatus(b byte) bool {
	return b < 0x80
}

func isChannelMessage(b byte) bool {
	return b >= 0x80 && b <= 0xEF
}

// TrackDecoder decodes the event stream of one MTrk chunk.
type TrackDecoder struct {
	// Strict makes unrecognized status bytes an error instead of skipping
	// them.
	Strict bool

	c       *Cursor
	running byte
	state   trackState
}

func NewTrackDecoder(c *Cursor) *TrackDecoder {
	return &TrackDecoder{c: c}
}

func (d *TrackDecoder) Done() bool {
	return d.state == done
}

// Run decodes events until the end of track meta event, handing each one to
// recv.
func (d *TrackDecoder) Run(recv Receiver) error {
	for d.state == awaitingEvent {
		delta, e, err := d.next()
		if err != nil {
			return err
		}
		if e != nil {
			recv.Receive(delta, e)
		}
	}
	return nil
}

// next decodes a single delta time and event. A nil event means the status
// byte was not recognized and nothing past it was consumed.
func (d *TrackDecoder) next() (model.Duration, Event, error) {
	start := d.c.Offset()
	v, err := ReadVLQ(d.c)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "delta time at offset %d", start)
	}
	delta := model.Duration(v)

	status, err := d.c.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	if isRunningStatus(status) {
		if d.running == 0 {
			return 0, nil, errors.Wrapf(ErrNoRunningStatus, "byte 0x%02X at offset %d", status, d.c.Offset()-1)
		}
		if err := d.c.UnreadByte(); err != nil {
			return 0, nil, err
		}
		status = d.running
	} else {
		d.running = status
	}

	var e Event
	switch {
	case status == statusMeta:
		meta, err := d.readMeta()
		if err != nil {
			return 0, nil, err
		}
		if meta.Type == MetaEndOfTrack {
			d.state = done
		}
		e = meta
	case status == statusSysEx || status == statusSysExEscape:
		e, err = d.readSysEx(status)
	case isChannelMessage(status):
		e, err = d.readChannelMessage(status)
	default:
		if d.Strict {
			return 0, nil, errors.Wrapf(ErrUnknownStatus, "byte 0x%02X at offset %d", status, d.c.Offset()-1)
		}
		log.WithFields(log.Fields{
			"status": fmt.Sprintf("0x%02X", status),
			"offset": d.c.Offset() - 1,
		}).Warn("skipping unrecognized status byte")
		return delta, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return delta, e, nil
}

func (d *TrackDecoder) readPayload() ([]byte, error) {
	start := d.c.Offset()
	n, err := ReadVLQ(d.c)
	if err != nil {
		return nil, errors.Wrapf(err, "payload length at offset %d", start)
	}
	return d.c.ReadN(n)
}

func (d *TrackDecoder) readMeta() (MetaEvent, error) {
	typ, err := d.c.ReadByte()
	if err != nil {
		return MetaEvent{}, err
	}
	data, err := d.readPayload()
	if err != nil {
		return MetaEvent{}, err
	}
	return MetaEvent{Type: typ, Data: data}, nil
}

func (d *TrackDecoder) readSysEx(status byte) (Event, error) {
	data, err := d.readPayload()
	if err != nil {
		return nil, err
	}
	return SysExEvent{Status: status, Data: data}, nil
}

func (d *TrackDecoder) readChannelMessage(status byte) (Event, error) {
	ch := model.Channel(status & 0x0F)
	typ := status >> 4

	size := uint64(2)
	if typ == programChange || typ == channelPressure {
		size = 1
	}
	data, err := d.c.ReadN(size)
	if err != nil {
		return nil, err
	}

	switch typ {
	case noteOff:
		return NoteOffEvent{Channel: ch, Note: model.NoteNumber(data[0]), Velocity: data[1]}, nil
	case noteOn:
		return NoteOnEvent{Channel: ch, Note: model.NoteNumber(data[0]), Velocity: data[1]}, nil
	case polyPressure:
		return PolyPressureEvent{Channel: ch, Note: model.NoteNumber(data[0]), Pressure: data[1]}, nil
	case controlChange:
		return ControlChangeEvent{Channel: ch, Controller: data[0], Value: data[1]}, nil
	case programChange:
		return ProgramChangeEvent{Channel: ch, Program: model.Instrument(data[0])}, nil
	case channelPressure:
		return ChannelPressureEvent{Channel: ch, Pressure: data[0]}, nil
	default: // 0xE
		return PitchWheelEvent{Channel: ch, Value: uint16(data[0]) | uint16(data[1])<<7}, nil
	}
}

// ReadTrack reads one MTrk chunk and decodes its events into recv. Chunks with
// any other id are skipped whole. The track ends at its end of track event;
// bytes left in the chunk after it are skipped. A declared length shorter
// than the events is ignored.
func ReadTrack(c *Cursor, recv Receiver, strict bool) (model.ChunkHeader, error) {
	for {
		start := c.Offset()
		h, err := ReadChunkHeader(c)
		if err != nil {
			return model.ChunkHeader{}, err
		}
		if h.Name() != TrackChunkID {
			log.WithFields(log.Fields{
				"chunk":  h.Name(),
				"offset": start,
				"length": h.Length,
			}).Warn("skipping unknown chunk")
			if err := c.Skip(uint64(h.Length)); err != nil {
				return model.ChunkHeader{}, err
			}
			continue
		}

		body := c.Offset()
		d := NewTrackDecoder(c)
		d.Strict = strict
		if err := d.Run(recv); err != nil {
			return model.ChunkHeader{}, err
		}
		if rest := int64(h.Length) - (c.Offset() - body); rest > 0 {
			log.WithFields(log.Fields{
				"offset": c.Offset(),
				"length": rest,
			}).Debug("skipping bytes after end of track")
			if err := c.Skip(uint64(rest)); err != nil {
				return model.ChunkHeader{}, err
			}
		}
		return h, nil
	}
}
