package midi

import (
	"bufio"
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Cursor is a single pass reader over an SMF byte stream. It keeps track of
// the byte offset for diagnostics and can push back the last byte read.
type Cursor struct {
	r      *bufio.Reader
	offset int64
}

func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: bufio.NewReader(r)}
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int64 {
	return c.offset
}

func (c *Cursor) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.offset += int64(n)
	return n, err
}

func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, c.wrap(err, "read byte", 1)
	}
	c.offset++
	return b, nil
}

// UnreadByte pushes back the byte returned by the last ReadByte.
func (c *Cursor) UnreadByte() error {
	if err := c.r.UnreadByte(); err != nil {
		return errors.Wrapf(err, "unread byte at offset %d", c.offset)
	}
	c.offset--
	return nil
}

// ReadN reads exactly n bytes into a freshly allocated slice. The slice grows
// as data arrives, so a bogus length fails with ErrTruncated instead of a huge
// allocation.
func (c *Cursor) ReadN(n uint64) ([]byte, error) {
	if n > math.MaxInt64 {
		return nil, errors.Wrapf(ErrTruncated, "read %d bytes at offset %d", n, c.offset)
	}
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, c.r, int64(n))
	if err != nil {
		err = c.wrap(err, "read payload", n)
	}
	c.offset += got
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Skip discards n bytes.
func (c *Cursor) Skip(n uint64) error {
	if n > math.MaxInt64 {
		return errors.Wrapf(ErrTruncated, "skip %d bytes at offset %d", n, c.offset)
	}
	got, err := io.CopyN(io.Discard, c.r, int64(n))
	if err != nil {
		err = c.wrap(err, "skip", n)
	}
	c.offset += got
	return err
}

func (c *Cursor) wrap(err error, op string, want uint64) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncated, "%s: wanted %d bytes at offset %d", op, want, c.offset)
	}
	return errors.Wrapf(err, "%s at offset %d", op, c.offset)
}
