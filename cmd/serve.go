package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midiroll/constants"
	"github.com/jsphweid/midiroll/db"
	"github.com/jsphweid/midiroll/layout"
	"github.com/jsphweid/midiroll/midi"
	"github.com/jsphweid/midiroll/model"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves an HTTP API that decodes uploaded midi files",
	RunE: func(cmd *cobra.Command, args []string) error {
		var summaries SummaryReader
		if constants.GetDynamoEndpoint() != "" {
			s, err := db.Connect()
			if err != nil {
				return err
			}
			summaries = s
		}
		addr := constants.GetServeAddr()
		log.WithFields(log.Fields{"addr": addr, "summaries": summaries != nil}).Info("serving")
		return http.ListenAndServe(addr, NewRouter(summaries))
	},
}

// SummaryReader is the read side of the summary table written by index.
type SummaryReader interface {
	GetSummaries(paths []string) (map[string]model.Summary, error)
}

// NewRouter builds the API. summaries may be nil, in which case
// /summaries answers 503.
func NewRouter(summaries SummaryReader) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/notes", HandleNotes).Methods("POST")
	router.HandleFunc("/summaries", handleSummaries(summaries)).Methods("GET")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

// handleSummaries looks up the stored summaries of the indexed files named
// by the repeated path query parameter. Unknown paths are left out.
func handleSummaries(summaries SummaryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		if summaries == nil {
			writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{RequestId: id, Error: "summary storage is not configured"})
			return
		}
		paths := r.URL.Query()["path"]
		if len(paths) == 0 || len(paths) > constants.MaxBatchGet {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				RequestId: id,
				Error:     fmt.Sprintf("expected between 1 and %d path parameters", constants.MaxBatchGet),
			})
			return
		}

		res, err := summaries.GetSummaries(paths)
		if err != nil {
			log.WithError(err).WithField("request_id", id).Warn("could not fetch summaries")
			writeJSON(w, http.StatusBadGateway, model.ErrorResponse{RequestId: id, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, model.SummariesResponse{RequestId: id, Summaries: res})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("could not write response")
	}
}

// HandleNotes decodes the midi file in the request body. ?strict=true fails
// on unrecognized status bytes and ?sort=start orders notes by start.
func HandleNotes(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	logger := log.WithField("request_id", id)

	body, err := io.ReadAll(io.LimitReader(r.Body, constants.MaxUploadSize+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{RequestId: id, Error: "could not read body: " + err.Error()})
		return
	}
	if len(body) > constants.MaxUploadSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.ErrorResponse{RequestId: id, Error: "midi file too large"})
		return
	}

	var opts []midi.Option
	if r.URL.Query().Get("strict") == "true" {
		opts = append(opts, midi.Strict())
	}
	h, notes, err := midi.Collect(bytes.NewReader(body), opts...)
	if err != nil {
		logger.WithError(err).Info("could not decode upload")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{RequestId: id, Error: err.Error()})
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	if r.URL.Query().Get("sort") == "start" {
		layout.SortByStart(notes)
	}

	logger.WithFields(log.Fields{"bytes": len(body), "notes": len(notes)}).Debug("decoded upload")
	writeJSON(w, http.StatusOK, model.NotesResponse{
		RequestId: id,
		Header:    h,
		Notes:     notes,
		Summary:   layout.Summarize(notes),
	})
}
