package cmd

import (
	"github.com/jsphweid/midiroll/midi"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	strict  bool
)

var rootCmd = &cobra.Command{
	Use:   "midiroll",
	Short: "Turns MIDI files into piano roll notes",
	Long: `midiroll decodes Standard MIDI Files into notes (pitch, start, duration,
velocity, instrument) and indexes, inspects or serves them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on unrecognized status bytes instead of skipping them")
}

func decodeOptions() []midi.Option {
	if strict {
		return []midi.Option{midi.Strict()}
	}
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
