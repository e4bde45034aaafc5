package model

type ChunkHeader struct {
	ID     [4]byte
	Length uint32
}

func (c ChunkHeader) Name() string {
	return string(c.ID[:])
}

// FileHeader is the MThd chunk. Division is ticks per quarter note unless its
// top bit is set.
type FileHeader struct {
	Chunk    ChunkHeader `json:"-"`
	Format   uint16      `json:"format"`
	Tracks   uint16      `json:"tracks"`
	Division uint16      `json:"division"`
}
