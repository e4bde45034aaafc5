package midi

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorUnreadByte(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{0x3C, 0x64}))

	b, err := c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x3C), b)
	assert.Equal(t, int64(1), c.Offset())

	require.NoError(t, c.UnreadByte())
	assert.Equal(t, int64(0), c.Offset())

	data, err := c.ReadN(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3C, 0x64}, data)
	assert.Equal(t, int64(2), c.Offset())
}

func TestCursorReadNTruncated(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3}))
	_, err := c.ReadN(4)
	assert.True(t, errors.Is(err, ErrTruncated))

	// a huge length fails on the data, not on allocation
	c = NewCursor(bytes.NewReader([]byte{1, 2, 3}))
	_, err = c.ReadN(1 << 40)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestCursorReadByteAtEnd(t *testing.T) {
	c := NewCursor(bytes.NewReader(nil))
	_, err := c.ReadByte()
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.Contains(t, err.Error(), "offset 0")
}

func TestCursorSkip(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3, 4}))
	require.NoError(t, c.Skip(3))
	b, err := c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(4), b)
	assert.True(t, errors.Is(c.Skip(1), ErrTruncated))
}
