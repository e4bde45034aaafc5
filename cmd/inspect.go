package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/midiroll/midi"
	"github.com/jsphweid/midiroll/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Prints the header and event counts of a midi file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

type trackStats struct {
	events map[midi.Kind]int
	ticks  model.Time
}

func (s *trackStats) Receive(delta model.Duration, e midi.Event) {
	s.events[e.Kind()]++
	s.ticks = s.ticks.Add(delta)
}

func inspectFile(path string) (model.FileHeader, []*trackStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.FileHeader{}, nil, errors.Wrap(err, "could not open midi file")
	}
	defer f.Close()

	var stats []*trackStats
	h, err := midi.Decode(f, func(int) midi.Receiver {
		s := &trackStats{events: make(map[midi.Kind]int)}
		stats = append(stats, s)
		return s
	}, decodeOptions()...)
	if err != nil {
		return model.FileHeader{}, nil, err
	}
	return h, stats, nil
}

func inspect(w io.Writer, path string) error {
	h, stats, err := inspectFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "format: %v, tracks: %v, division: %v\n", h.Format, h.Tracks, h.Division)
	for i, s := range stats {
		fmt.Fprintf(w, "track %v: %v ticks\n", i, s.ticks)
		for k := midi.KindMeta; k <= midi.KindPitchWheel; k++ {
			if n := s.events[k]; n > 0 {
				fmt.Fprintf(w, "  %-16v %v\n", k, n)
			}
		}
	}
	return nil
}
