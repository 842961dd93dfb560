package models

import "time"

// LastRunLayout is the minute-precision local timestamp stored in last_run.
const LastRunLayout = "2006-01-02 15:04"

// UnknownSubmitter is used for records persisted without a submitter.
const UnknownSubmitter = "Unknown"

// Task represents a single automation tracked by autotrack.
type Task struct {
	ID        int        `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Status    TaskStatus `json:"status" yaml:"status"`
	Submitter string     `json:"submitter" yaml:"submitter"`
	Priority  Priority   `json:"priority" yaml:"priority"`
	LastRun   string     `json:"last_run" yaml:"last_run"`
	Notes     string     `json:"notes" yaml:"notes"`
}

// FormatLastRun renders t the way last_run is stored.
func FormatLastRun(t time.Time) string {
	return t.Local().Format(LastRunLayout)
}

// Counters is the aggregate shown in the metrics row. Pending is not reported.
type Counters struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Running   int `json:"running"`
	Failed    int `json:"failed"`
}
