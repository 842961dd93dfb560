package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"autotrack/internal/models"
)

// DefaultJSONFileName is the data file used when no path is configured.
const DefaultJSONFileName = "tasks.json"

// JSONFile persists the store as a single pretty-printed JSON document.
// Every save rewrites the file in place.
type JSONFile struct {
	path string
}

// NewJSONFile returns a persister backed by path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string {
	return f.path
}

// taskRecord mirrors models.Task on disk. Submitter and priority are optional
// because records written before the priority field existed omit them.
type taskRecord struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Submitter *string `json:"submitter,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	LastRun   string  `json:"last_run"`
	Notes     string  `json:"notes"`
}

type document struct {
	Tasks  []taskRecord `json:"tasks"`
	NextID *int         `json:"next_id"`
}

// Load reads the document. A missing file yields an empty state.
func (f *JSONFile) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{Tasks: []models.Task{}, NextID: 1}, nil
		}
		return State{}, err
	}
	state, err := UnmarshalState(data)
	if err != nil {
		return State{}, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return state, nil
}

// Save overwrites the document with state.
func (f *JSONFile) Save(_ context.Context, state State) error {
	data, err := MarshalState(state)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}

// MarshalState renders state in the tasks.json format.
func MarshalState(state State) ([]byte, error) {
	tasks := state.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	payload := struct {
		Tasks  []models.Task `json:"tasks"`
		NextID int          `json:"next_id"`
	}{Tasks: tasks, NextID: state.NextID}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// UnmarshalState parses a tasks.json document, filling defaults for fields
// missing from older records.
func UnmarshalState(data []byte) (State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, err
	}

	state := State{Tasks: make([]models.Task, 0, len(doc.Tasks)), NextID: 1}
	if doc.NextID != nil {
		state.NextID = *doc.NextID
	}
	for _, record := range doc.Tasks {
		task, err := record.toTask()
		if err != nil {
			return State{}, err
		}
		state.Tasks = append(state.Tasks, task)
	}
	return normalizeState(state)
}

func (r taskRecord) toTask() (models.Task, error) {
	status, err := models.ParseTaskStatus(r.Status)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %d: %w", r.ID, err)
	}

	priority := models.DefaultPriority
	if r.Priority != nil {
		priority, err = models.ParsePriority(*r.Priority)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %d: %w", r.ID, err)
		}
	}

	submitter := models.UnknownSubmitter
	if r.Submitter != nil {
		submitter = *r.Submitter
	}

	return models.Task{
		ID:        r.ID,
		Name:      r.Name,
		Status:    status,
		Submitter: submitter,
		Priority:  priority,
		LastRun:   r.LastRun,
		Notes:     r.Notes,
	}, nil
}
