package midi

import "math/bits"

// SMF fields are big-endian. Headers are read verbatim in little-endian host
// order and then swapped, without detecting the host byte order.

func Swap16(n uint16) uint16 {
	return bits.ReverseBytes16(n)
}

func Swap32(n uint32) uint32 {
	return bits.ReverseBytes32(n)
}

func Swap64(n uint64) uint64 {
	return bits.ReverseBytes64(n)
}
