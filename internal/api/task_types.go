package api

import "autotrack/internal/models"

// TaskCreateRequest defines the payload for creating a task.
type TaskCreateRequest struct {
	Name      string `json:"name"`
	Submitter string `json:"submitter,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// TaskStatusRequest defines the payload for changing a task's status.
type TaskStatusRequest struct {
	Status string `json:"status"`
}

// TaskStatusResponse reports the task after a status change request.
// Changed is false when the requested status equals the current one.
type TaskStatusResponse struct {
	Task    models.Task `json:"task"`
	Changed bool        `json:"changed"`
}

// TaskDeleteResponse reports whether a task was removed.
type TaskDeleteResponse struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

// InfoResponse is the response from GET /v1/info.
type InfoResponse struct {
	Title        string          `json:"title"`
	Backend      string          `json:"backend"`
	DataPath     string          `json:"data_path,omitempty"`
	ShowPriority bool            `json:"show_priority"`
	Counters     models.Counters `json:"counters"`
	Roster       []string        `json:"roster"`
	Statuses     []string        `json:"statuses"`
	Priorities   []string        `json:"priorities"`
}

// ExportResponse mirrors the tasks.json document.
type ExportResponse struct {
	Tasks  []models.Task `json:"tasks" yaml:"tasks"`
	NextID int          `json:"next_id" yaml:"next_id"`
}
