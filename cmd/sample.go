package cmd

import (
	"strconv"

	"github.com/jsphweid/midiroll/sample"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample <in> <out> <tick offset> [max note events]",
	Short: "Writes a short excerpt of a midi file",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return err
		}
		maxEvents := 10
		if len(args) == 4 {
			if maxEvents, err = strconv.Atoi(args[3]); err != nil {
				return err
			}
		}
		return sample.CreateFile(args[0], args[1], offset, maxEvents)
	},
}
