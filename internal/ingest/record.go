// Package ingest turns an uploaded spreadsheet or a pasted block of delimited text into
// group records and writes them to storage one at a time, tallying partial success.
package ingest

import (
	"errors"
	"io"
	"strings"
	"time"
)

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldLink        = "link"
	FieldCategoryID  = "category_id"

	// GroupsTable is the storage table every valid record is inserted into.
	GroupsTable = "groups"

	// ReasonMissingFields is the failure reason for records lacking a required value.
	ReasonMissingFields = "missing required fields"

	// DismissAfter is how long a caller may keep a clean result on screen before closing it.
	DismissAfter = 2 * time.Second
)

// RequiredFields lists the columns a record needs before it is written.
var RequiredFields = []string{FieldName, FieldDescription, FieldLink, FieldCategoryID}

var (
	ErrMissingInput   = errors.New("missing input: upload a file or paste csv data")
	ErrNoDataRows     = errors.New("input has a header row but no data rows")
	ErrUnreadableFile = errors.New("uploaded file could not be read as a spreadsheet")
)

// Record maps a header name to the trimmed cell value of one input row.
type Record map[string]string

// Get returns the trimmed value for field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Columns projects the record onto the group columns written to storage.
func (r Record) Columns() Record {
	out := make(Record, len(RequiredFields))
	for _, f := range RequiredFields {
		out[f] = r.Get(f)
	}
	return out
}

// Input carries the two optional sources of one upload attempt.
// When both are set the file is used.
type Input struct {
	File      io.Reader
	FileName  string
	Text      string
	Delimiter rune
}

func (in Input) hasFile() bool {
	return in.File != nil
}

func (in Input) hasText() bool {
	return strings.TrimSpace(in.Text) != ""
}

// Phase is the lifecycle stage of a batch.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDecoding Phase = "decoding"
	PhaseWriting  Phase = "writing"
	PhaseDone     Phase = "done"
)

// Progress is the running tally of a batch.
type Progress struct {
	Phase     Phase `json:"phase"`
	Total     int   `json:"total"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
}

// Failure describes one record that was not written. Row is 1-based over data rows.
type Failure struct {
	Row    int    `json:"row"`
	Record Record `json:"record"`
	Reason string `json:"error"`
}

// Result is the outcome of a finished batch.
type Result struct {
	Progress
	Failures []Failure `json:"failures"`
}

// Clean reports whether every record was written.
func (r Result) Clean() bool {
	return r.Failed == 0
}
