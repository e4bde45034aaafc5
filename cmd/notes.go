package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jsphweid/midiroll/layout"
	"github.com/jsphweid/midiroll/midi"
	"github.com/jsphweid/midiroll/model"
	"github.com/jsphweid/midiroll/util"
	"github.com/spf13/cobra"
)

var (
	notesJSON   bool
	notesSorted bool
)

func init() {
	notesCmd.Flags().BoolVar(&notesJSON, "json", false, "print notes and summary as JSON")
	notesCmd.Flags().BoolVar(&notesSorted, "sort", false, "order notes by start instead of completion")
	rootCmd.AddCommand(notesCmd)
}

var notesCmd = &cobra.Command{
	Use:   "notes <file>",
	Short: "Prints the notes of a midi file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printNotes(cmd.OutOrStdout(), args[0])
	},
}

func printNotes(w io.Writer, path string) error {
	h, notes, err := midi.ReadMidiFile(path, decodeOptions()...)
	if err != nil {
		return err
	}
	if notesSorted {
		layout.SortByStart(notes)
	}
	summary := layout.Summarize(notes)

	if notesJSON {
		if notes == nil {
			notes = []model.Note{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model.NotesResponse{Header: h, Notes: notes, Summary: summary})
	}

	for _, n := range notes {
		fmt.Fprintln(w, n)
	}
	fmt.Fprintf(w, "notes: %v, range: %v-%v (%v rows), end: %v ticks, division: %v\n",
		summary.Count, summary.Lowest, summary.Highest, layout.Height(summary), summary.End, h.Division)
	printInstruments(w, notes)
	return nil
}

// printInstruments prints one summary line per program number in use.
func printInstruments(w io.Writer, notes []model.Note) {
	groups := layout.ByInstrument(notes)
	instruments := util.GetKeys(groups)
	sort.Slice(instruments, func(i, j int) bool { return instruments[i] < instruments[j] })
	for _, inst := range instruments {
		s := layout.Summarize(groups[inst])
		fmt.Fprintf(w, "instrument %v: %v notes, range: %v-%v\n", inst, s.Count, s.Lowest, s.Highest)
	}
}
