package midi

import "github.com/pkg/errors"

var (
	// ErrTruncated is returned when the stream ends before a read completes.
	ErrTruncated = errors.New("midi: truncated stream")
	// ErrVLQOverflow is returned for variable-length quantities that do not
	// fit in 64 bits.
	ErrVLQOverflow = errors.New("midi: variable-length quantity overflows 64 bits")
	ErrNotMidi     = errors.New("midi: missing MThd header")
	ErrBadHeader   = errors.New("midi: malformed header chunk")
	// ErrUnknownStatus is only returned by strict decoding.
	ErrUnknownStatus   = errors.New("midi: unrecognized status byte")
	ErrNoRunningStatus = errors.New("midi: data byte without running status")
)
