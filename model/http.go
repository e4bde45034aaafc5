package model

type Summary struct {
	Count   int        `json:"count"`
	Lowest  NoteNumber `json:"lowest"`
	Highest NoteNumber `json:"highest"`
	End     Time       `json:"end"`
}

type NotesResponse struct {
	RequestId string     `json:"request_id"`
	Header    FileHeader `json:"header"`
	Notes     []Note     `json:"notes"`
	Summary   Summary    `json:"summary"`
}

type ErrorResponse struct {
	RequestId string `json:"request_id,omitempty"`
	Error     string `json:"detail"`
}

type SummariesResponse struct {
	RequestId string             `json:"request_id"`
	Summaries map[string]Summary `json:"summaries"`
}
