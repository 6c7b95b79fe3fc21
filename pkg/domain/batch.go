package domain

import "time"

// BatchEntry is the per-URL outcome of a batch run
type BatchEntry struct {
	URL     string         `json:"url"`
	Title   string         `json:"title"`
	Summary *SummaryResult `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// BatchReport aggregates a batch run. SuccessCount + FailCount always equals TotalProcessed.
type BatchReport struct {
	Results        []BatchEntry `json:"results"`
	TotalProcessed int          `json:"totalProcessed"`
	SuccessCount   int          `json:"successCount"`
	FailCount      int          `json:"failCount"`
}

// AddSuccess records a summarized article
func (r *BatchReport) AddSuccess(url, title string, summary SummaryResult) {
	r.Results = append(r.Results, BatchEntry{URL: url, Title: title, Summary: &summary})
	r.TotalProcessed++
	r.SuccessCount++
}

// AddFailure records a failed article
func (r *BatchReport) AddFailure(url, title, reason string) {
	r.Results = append(r.Results, BatchEntry{URL: url, Title: title, Error: reason})
	r.TotalProcessed++
	r.FailCount++
}

// TaskStatus is the state of a task log entry
type TaskStatus string

const (
	TaskRunning TaskStatus = "running"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

// TaskLog records a single batch run
type TaskLog struct {
	ID         int64
	Kind       string
	Status     TaskStatus
	Total      int
	Success    int
	Failed     int
	Message    string
	StartedAt  time.Time
	FinishedAt *time.Time
}
