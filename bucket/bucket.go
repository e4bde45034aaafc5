// Package bucket stores decoded notes in one file per pitch under the index
// dir. Each file is a flat sequence of fixed-size records.
package bucket

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/jsphweid/midiroll/constants"
	"github.com/jsphweid/midiroll/layout"
	"github.com/jsphweid/midiroll/midi"
	"github.com/jsphweid/midiroll/model"
	"github.com/jsphweid/midiroll/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var bucketName = regexp.MustCompile(`^\d\d\d\.dat$`)

// SummaryStore receives the layout summary of every indexed file.
type SummaryStore interface {
	PutSummary(path string, s model.Summary) error
}

func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

func Serialize(n model.IndexedNote) [constants.NoteRecordSize]byte {
	var buf [constants.NoteRecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], n.FileNum)
	buf[4] = uint8(n.Note.NoteNumber)
	binary.LittleEndian.PutUint64(buf[5:13], uint64(n.Note.Start))
	binary.LittleEndian.PutUint64(buf[13:21], uint64(n.Note.Duration))
	buf[21] = n.Note.Velocity
	buf[22] = uint8(n.Note.Instrument)
	return buf
}

func Deserialize(buf []byte) model.IndexedNote {
	return model.IndexedNote{
		FileNum: binary.LittleEndian.Uint32(buf[0:4]),
		Note: model.Note{
			NoteNumber: model.NoteNumber(buf[4]),
			Start:      model.Time(binary.LittleEndian.Uint64(buf[5:13])),
			Duration:   model.Duration(binary.LittleEndian.Uint64(buf[13:21])),
			Velocity:   buf[21],
			Instrument: model.Instrument(buf[22]),
		},
	}
}

func Path(note model.NoteNumber) string {
	return filepath.Join(constants.GetIndexDir(), fmt.Sprintf("%03d.dat", note))
}

// Put appends notes to the bucket of their pitch.
func Put(notes []model.IndexedNote) error {
	byPitch := make(map[model.NoteNumber][]model.IndexedNote)
	for _, n := range notes {
		byPitch[n.Note.NoteNumber] = append(byPitch[n.Note.NoteNumber], n)
	}

	for pitch, group := range byPitch {
		if err := appendToBucket(Path(pitch), group); err != nil {
			return err
		}
	}
	return nil
}

func appendToBucket(path string, notes []model.IndexedNote) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return errors.Wrap(err, "could not open bucket")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, n := range notes {
		rec := Serialize(n)
		if _, err := w.Write(rec[:]); err != nil {
			return errors.Wrap(err, "could not write note to bucket")
		}
	}
	return w.Flush()
}

// ProcessMidiFile decodes one file, buckets its notes and hands its summary
// to store when store is not nil.
func ProcessMidiFile(fileNum uint32, path string, store SummaryStore) (model.Summary, error) {
	_, notes, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.Summary{}, err
	}

	indexed := make([]model.IndexedNote, len(notes))
	for i, n := range notes {
		indexed[i] = model.IndexedNote{FileNum: fileNum, Note: n}
	}
	if err := Put(indexed); err != nil {
		return model.Summary{}, err
	}

	summary := layout.Summarize(notes)
	if store != nil {
		if err := store.PutSummary(path, summary); err != nil {
			return summary, errors.Wrap(err, "could not store summary")
		}
	}
	return summary, nil
}

// ProcessAllMidiFiles indexes every file of m in file number order. Files that
// fail to decode are skipped. progress is called after each file.
func ProcessAllMidiFiles(m model.FileNumToMidiPath, store SummaryStore, progress func(done, total int)) map[string]model.Summary {
	keys := util.GetKeys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	res := make(map[string]model.Summary)
	for i, num := range keys {
		summary, err := ProcessMidiFile(num, m[num], store)
		if err != nil {
			log.WithError(err).WithField("path", m[num]).Warn("skipping midi file")
		} else {
			res[m[num]] = summary
		}
		if progress != nil {
			progress(i+1, len(keys))
		}
	}
	return res
}

// List returns the bucket files in the index dir, sorted by pitch.
func List() ([]string, error) {
	dir := constants.GetIndexDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "could not read index dir")
	}

	var res []string
	for _, e := range entries {
		if bucketName.MatchString(e.Name()) {
			res = append(res, filepath.Join(dir, e.Name()))
		}
	}
	return res, nil
}

func DeleteAll() error {
	paths, err := List()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			return errors.Wrap(err, "could not delete bucket")
		}
	}
	return nil
}

func ReadNotes(path string) ([]model.IndexedNote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open bucket")
	}
	defer f.Close()

	var res []model.IndexedNote
	r := bufio.NewReader(f)
	buf := make([]byte, constants.NoteRecordSize)
	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "could not read note from %s", path)
		}
		res = append(res, Deserialize(buf))
	}
	return res, nil
}
