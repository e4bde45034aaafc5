package cmd

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/midiroll/bucket"
	"github.com/jsphweid/midiroll/constants"
	"github.com/jsphweid/midiroll/db"
	"github.com/jsphweid/midiroll/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [max files]",
	Short: "Decodes every midi file under MEDIA_PATH into note buckets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			maxNum = arg1
		}

		return Index(maxNum)
	},
}

func Index(maxNum int) error {
	logger := log.WithField("run", uuid.New().String())
	dir := constants.GetIndexDir()
	if err := util.EnsureOutputDir(dir); err != nil {
		return err
	}
	// buckets are appended to, so a previous run's would be doubled up
	if err := bucket.DeleteAll(); err != nil {
		return err
	}

	paths, err := util.GatherAllMidiPaths(constants.GetMediaDir(), maxNum)
	if err != nil {
		return err
	}
	fileNumMap := bucket.CreateFileNumMap(paths)

	var store bucket.SummaryStore
	if constants.GetDynamoEndpoint() != "" {
		s, err := db.Connect()
		if err != nil {
			return err
		}
		store = s
	}

	debounced := debounce.New(250 * time.Millisecond)
	progress := func(done, total int) {
		debounced(func() {
			logger.Infof("processed %v of %v midi files", done, total)
		})
	}

	summaries := bucket.ProcessAllMidiFiles(fileNumMap, store, progress)
	logger.WithFields(log.Fields{
		"found":   len(paths),
		"indexed": len(summaries),
	}).Info("finished indexing")

	return util.CreateBinary(filepath.Join(dir, constants.FileNumMapName), fileNumMap)
}
