package midi

import (
	"encoding/binary"

	"github.com/jsphweid/midiroll/model"
)

func encodeVLQ(v uint64) []byte {
	out := []byte{byte(v & sevenBitMask)}
	for v >>= 7; v > 0; v >>= 7 {
		out = append([]byte{byte(v&sevenBitMask) | continuationBit}, out...)
	}
	return out
}

func chunk(id string, body []byte) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(body)))
	out := append([]byte(id), length[:]...)
	return append(out, body...)
}

func headerBytes(format, tracks, division uint16) []byte {
	body := make([]byte, 6)
	binary.BigEndian.PutUint16(body[0:], format)
	binary.BigEndian.PutUint16(body[2:], tracks)
	binary.BigEndian.PutUint16(body[4:], division)
	return chunk(HeaderChunkID, body)
}

// smfBytes builds a format 1 file at 480 ticks per quarter note.
func smfBytes(tracks ...[]byte) []byte {
	out := headerBytes(1, uint16(len(tracks)), 480)
	for _, tr := range tracks {
		out = append(out, chunk(TrackChunkID, tr)...)
	}
	return out
}

// ev builds a delta time followed by raw event bytes.
func ev(delta uint64, data ...byte) []byte {
	return append(encodeVLQ(delta), data...)
}

func track(events ...[]byte) []byte {
	var out []byte
	for _, e := range events {
		out = append(out, e...)
	}
	return out
}

var endOfTrack = ev(0, 0xFF, 0x2F, 0x00)

type received struct {
	delta model.Duration
	event Event
}

type recorder struct {
	events []received
}

func (r *recorder) Receive(delta model.Duration, e Event) {
	r.events = append(r.events, received{delta, e})
}
