package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/midiroll/bucket"
	"github.com/jsphweid/midiroll/constants"
	"github.com/jsphweid/midiroll/model"
	"github.com/jsphweid/midiroll/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reports on the note buckets in INDEX_PATH",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := analyzeBuckets()
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

type bucketsReport struct {
	numFiles   int
	numBuckets int
	numBytes   int64
	notesPer   map[string]int64
}

func analyzeBuckets() (bucketsReport, error) {
	report := bucketsReport{notesPer: make(map[string]int64)}

	fileNumMap, err := util.ReadBinary[model.FileNumToMidiPath](filepath.Join(constants.GetIndexDir(), constants.FileNumMapName))
	if err != nil {
		return report, err
	}
	report.numFiles = len(fileNumMap)

	paths, err := bucket.List()
	if err != nil {
		return report, err
	}
	for _, path := range paths {
		stats, err := os.Stat(path)
		if err != nil {
			return report, errors.Wrap(err, "could not get bucket stats")
		}
		report.numBuckets += 1
		report.numBytes += stats.Size()
		report.notesPer[filepath.Base(path)] = stats.Size() / constants.NoteRecordSize
	}
	return report, nil
}

func printReport(w io.Writer, r bucketsReport) {
	keys := util.GetKeys(r.notesPer)
	counts := make([]int64, 0, len(keys))
	for _, k := range keys {
		counts = append(counts, r.notesPer[k])
	}

	fmt.Fprintf(w, "files: %v\n", r.numFiles)
	fmt.Fprintf(w, "buckets: %v\n", r.numBuckets)
	fmt.Fprintf(w, "bytes: %v\n", r.numBytes)
	fmt.Fprintf(w, "notes: %v\n", util.Sum(counts))
}
