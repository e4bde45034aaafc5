// Package layout derives the numbers a piano roll renderer needs from a note
// collection: the pitch range and the tick at which the last note ends.
package layout

import (
	"sort"

	"github.com/jsphweid/midiroll/model"
	"github.com/jsphweid/midiroll/util"
)

// Summarize returns the zero Summary for an empty collection.
func Summarize(notes []model.Note) model.Summary {
	if len(notes) == 0 {
		return model.Summary{}
	}
	s := model.Summary{
		Count:   len(notes),
		Lowest:  notes[0].NoteNumber,
		Highest: notes[0].NoteNumber,
	}
	for _, n := range notes {
		s.Lowest = util.Min(s.Lowest, n.NoteNumber)
		s.Highest = util.Max(s.Highest, n.NoteNumber)
		s.End = util.Max(s.End, n.End())
	}
	return s
}

func Lowest(notes []model.Note) model.NoteNumber {
	return Summarize(notes).Lowest
}

func Highest(notes []model.Note) model.NoteNumber {
	return Summarize(notes).Highest
}

// End is the maximum of start + duration.
func End(notes []model.Note) model.Time {
	return Summarize(notes).End
}

// Height is the number of pitch rows spanned, 0 for no notes.
func Height(s model.Summary) int {
	if s.Count == 0 {
		return 0
	}
	return int(s.Highest) - int(s.Lowest) + 1
}

// SortByStart orders notes by start, then pitch, keeping completion order for
// ties.
func SortByStart(notes []model.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].NoteNumber < notes[j].NoteNumber
	})
}

// ByInstrument groups notes by program number.
func ByInstrument(notes []model.Note) map[model.Instrument][]model.Note {
	res := make(map[model.Instrument][]model.Note)
	for _, n := range notes {
		res[n.Instrument] = append(res[n.Instrument], n)
	}
	return res
}
