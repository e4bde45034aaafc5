package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeArithmetic(t *testing.T) {
	assert := assert.New(t)

	start := Time(480)
	end := start.Add(Duration(960))
	assert.Equal(Time(1440), end)
	assert.Equal(Duration(960), end.Sub(start))
	assert.Equal(Duration(0), start.Sub(start))
	assert.Equal(start, start.Add(0))

	assert.Equal(Duration(1500), Duration(1000).Add(Duration(500)))
	assert.Equal(end, start.Add(Duration(480).Add(Duration(480))))
}

func TestNoteEnd(t *testing.T) {
	n := Note{NoteNumber: 60, Start: 100, Duration: 50, Velocity: 90, Instrument: 3}
	assert.Equal(t, Time(150), n.End())
	assert.Equal(t, "Note(number=60,start=100,duration=50,velocity=90,instrument=3)", n.String())
}
