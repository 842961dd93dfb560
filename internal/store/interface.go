package store

import (
	"context"

	"autotrack/internal/models"
)

// TaskStore abstracts the task collection used by the server.
type TaskStore interface {
	Create(ctx context.Context, input NewTask) (models.Task, error)
	Get(ctx context.Context, id int) (models.Task, error)
	List(ctx context.Context, filter ListFilter) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id int, status models.TaskStatus) (models.Task, bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	Counters(ctx context.Context) (models.Counters, error)
	Snapshot(ctx context.Context) (State, error)
}

// Persister mirrors the full store state to durable storage.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

var (
	_ TaskStore = (*Store)(nil)
	_ Persister = (*JSONFile)(nil)
	_ Persister = (*SQLite)(nil)
)
