package server

import (
	"context"
	"errors"
	"fmt"

	"autotrack/internal/api"
	"autotrack/internal/models"
	"autotrack/internal/store"
)

const (
	opCreate = "create"
	opStatus = "status"
	opDelete = "delete"
)

// TaskService centralizes task validation, error mapping and metrics for
// both the page and the JSON API.
type TaskService struct {
	store   store.TaskStore
	metrics *Metrics
}

// NewTaskService constructs a TaskService.
func NewTaskService(store store.TaskStore, metrics *Metrics) *TaskService {
	return &TaskService{store: store, metrics: metrics}
}

// Create validates req and appends a new pending task.
func (s *TaskService) Create(ctx context.Context, req api.TaskCreateRequest) (models.Task, error) {
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.store.Create(ctx, store.NewTask{
		Name:      req.Name,
		Submitter: req.Submitter,
		Priority:  priority,
		Notes:     req.Notes,
	})
	s.metrics.Mutation(opCreate, err == nil, err)
	if err != nil {
		return models.Task{}, mapStoreError(err)
	}
	s.refresh(ctx)
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id int) (models.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Task{}, mapStoreError(err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, filter store.ListFilter) ([]models.Task, error) {
	tasks, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return tasks, nil
}

// UpdateStatus sets the status of task id. Changed is false when the task
// already had that status.
func (s *TaskService) UpdateStatus(ctx context.Context, id int, rawStatus string) (api.TaskStatusResponse, error) {
	status, err := normalizeStatus(rawStatus)
	if err != nil {
		return api.TaskStatusResponse{}, err
	}

	task, changed, err := s.store.UpdateStatus(ctx, id, status)
	s.metrics.Mutation(opStatus, changed, err)
	if err != nil {
		return api.TaskStatusResponse{}, mapStoreError(err)
	}
	if changed {
		s.refresh(ctx)
	}
	return api.TaskStatusResponse{Task: task, Changed: changed}, nil
}

// Delete removes task id. A missing id is not an error.
func (s *TaskService) Delete(ctx context.Context, id int) (api.TaskDeleteResponse, error) {
	deleted, err := s.store.Delete(ctx, id)
	s.metrics.Mutation(opDelete, deleted, err)
	if err != nil {
		return api.TaskDeleteResponse{}, mapStoreError(err)
	}
	if deleted {
		s.refresh(ctx)
	}
	return api.TaskDeleteResponse{ID: id, Deleted: deleted}, nil
}

func (s *TaskService) Counters(ctx context.Context) (models.Counters, error) {
	counters, err := s.store.Counters(ctx)
	if err != nil {
		return models.Counters{}, mapStoreError(err)
	}
	return counters, nil
}

// Export returns the full store state in the persisted document shape.
func (s *TaskService) Export(ctx context.Context) (api.ExportResponse, error) {
	state, err := s.store.Snapshot(ctx)
	if err != nil {
		return api.ExportResponse{}, mapStoreError(err)
	}
	tasks := state.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	return api.ExportResponse{Tasks: tasks, NextID: state.NextID}, nil
}

// RefreshGauges recomputes the per-status gauges from the store.
func (s *TaskService) RefreshGauges(ctx context.Context) error {
	counters, err := s.store.Counters(ctx)
	if err != nil {
		return fmt.Errorf("read counters: %w", err)
	}
	s.metrics.SetCounters(counters)
	return nil
}

func (s *TaskService) refresh(ctx context.Context) {
	if counters, err := s.store.Counters(ctx); err == nil {
		s.metrics.SetCounters(counters)
	}
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound(err)
	case errors.Is(err, store.ErrNameRequired):
		return badRequestCode(err, ErrCodeMissingRequired)
	case errors.Is(err, store.ErrInvalidStatus):
		return badRequestCode(err, ErrCodeInvalidStatus)
	case errors.Is(err, store.ErrInvalidPriority):
		return badRequestCode(err, ErrCodeInvalidPriority)
	default:
		return storeFailure(err)
	}
}
