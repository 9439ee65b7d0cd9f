package domain

import "time"

// OutcomeStatus represents how processing one resource ended.
type OutcomeStatus string

// Possible outcome status values
const (
	OutcomeParsed OutcomeStatus = "parsed"
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome records what happened to a single resource during one run: which
// worker handled it, whether it parsed, how long fetch+parse took, and either
// a preview of the parsed table or the failure text. Exactly one Outcome
// exists per manifest entry per run.
type Outcome struct {
	Resource Resource      `json:"resource"`
	WorkerID int           `json:"worker_id"`
	Status   OutcomeStatus `json:"status"`
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Duration time.Duration `json:"duration"`
	Preview  string        `json:"preview,omitempty"`
	Err      string        `json:"error,omitempty"`
}

// NewParsedOutcome builds the success record for a resource, including a
// preview of the first row's first previewCols columns.
func NewParsedOutcome(res Resource, workerID int, frame *Frame, previewCols int, d time.Duration) Outcome {
	return Outcome{
		Resource: res,
		WorkerID: workerID,
		Status:   OutcomeParsed,
		Rows:     frame.NumRows(),
		Columns:  frame.NumCols(),
		Duration: d,
		Preview:  frame.Preview(previewCols),
	}
}

// NewFailedOutcome builds the failure record for a resource. The error is
// stored as text because outcomes outlive the run that produced them only as
// log material, never as values to branch on.
func NewFailedOutcome(res Resource, workerID int, err error, d time.Duration) Outcome {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Outcome{
		Resource: res,
		WorkerID: workerID,
		Status:   OutcomeFailed,
		Duration: d,
		Err:      msg,
	}
}

// Failed reports whether the resource ended in failure.
func (o Outcome) Failed() bool {
	return o.Status == OutcomeFailed
}
