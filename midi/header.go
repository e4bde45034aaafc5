package midi

import (
	"encoding/binary"

	"github.com/jsphweid/midiroll/model"
	"github.com/pkg/errors"
)

const (
	HeaderChunkID = "MThd"
	TrackChunkID  = "MTrk"

	headerDataSize = 6
)

func readRaw(c *Cursor, v any, op string) error {
	if err := binary.Read(c, binary.LittleEndian, v); err != nil {
		return c.wrap(err, op, uint64(binary.Size(v)))
	}
	return nil
}

// ReadChunkHeader reads an 8 byte chunk id and length.
func ReadChunkHeader(c *Cursor) (model.ChunkHeader, error) {
	var h model.ChunkHeader
	if err := readRaw(c, &h, "chunk header"); err != nil {
		return model.ChunkHeader{}, err
	}
	h.Length = Swap32(h.Length)
	return h, nil
}

// ReadFileHeader reads the MThd chunk. Header data beyond the three standard
// fields is skipped.
func ReadFileHeader(c *Cursor) (model.FileHeader, error) {
	start := c.Offset()
	var h model.FileHeader
	if err := readRaw(c, &h, "file header"); err != nil {
		return model.FileHeader{}, err
	}
	h.Chunk.Length = Swap32(h.Chunk.Length)
	h.Format = Swap16(h.Format)
	h.Tracks = Swap16(h.Tracks)
	h.Division = Swap16(h.Division)

	if h.Chunk.Name() != HeaderChunkID {
		return model.FileHeader{}, errors.Wrapf(ErrNotMidi, "found chunk %q at offset %d", h.Chunk.Name(), start)
	}
	if h.Chunk.Length < headerDataSize {
		return model.FileHeader{}, errors.Wrapf(ErrBadHeader, "header length %d at offset %d", h.Chunk.Length, start)
	}
	if extra := h.Chunk.Length - headerDataSize; extra > 0 {
		if err := c.Skip(uint64(extra)); err != nil {
			return model.FileHeader{}, err
		}
	}
	return h, nil
}
