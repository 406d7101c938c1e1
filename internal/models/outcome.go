package models

// OutcomeStatus classifies how one record was handled. The status is
// carried structurally so the front-end never has to parse message text.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome is the result of processing one uploaded row or one deleted
// event. Row is 1-based and zero for outcomes not tied to a row.
type Outcome struct {
	Row     int           `json:"row,omitempty"`
	Status  OutcomeStatus `json:"status"`
	Message string        `json:"message"`
}

// ImportSummary is the create-path report returned to the operator.
type ImportSummary struct {
	Total    int       `json:"total"`
	Created  int       `json:"created"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
	Warnings []string  `json:"warnings,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
}

// Tally updates the counters for one classified outcome.
func (s *ImportSummary) Tally(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusSuccess:
		s.Created++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// PurgeSummary is the delete-path report. Note carries informational
// messages such as "no employees at the selected location".
type PurgeSummary struct {
	LocationID string    `json:"locationId"`
	Employees  int       `json:"employees"`
	Matched    int       `json:"matched"`
	Deleted    int       `json:"deleted"`
	Failed     int       `json:"failed"`
	Note       string    `json:"note,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}
