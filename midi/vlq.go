package midi

import (
	"io"

	"github.com/pkg/errors"
)

const (
	continuationBit = 0x80
	sevenBitMask    = 0x7F

	// MaxVLQBytes bounds the number of groups read for one quantity.
	MaxVLQBytes = 10
)

// ReadVLQ consumes a variable length quantity: 7 bits per byte, most
// significant group first, every byte but the last with its top bit set.
func ReadVLQ(r io.ByteReader) (uint64, error) {
	var value uint64
	for i := 0; i < MaxVLQBytes; i++ {
		b, err := r.ReadByte()
		if err == io.EOF {
			return 0, errors.Wrap(ErrTruncated, "variable-length quantity")
		}
		if err != nil {
			return 0, err
		}
		if value>>(64-7) != 0 {
			return 0, ErrVLQOverflow
		}
		value = value<<7 | uint64(b&sevenBitMask)
		if b&continuationBit == 0 {
			return value, nil
		}
	}
	return 0, errors.Wrapf(ErrVLQOverflow, "more than %d bytes", MaxVLQBytes)
}
