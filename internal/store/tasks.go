package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"autotrack/internal/models"
)

// NewTask carries the caller-supplied fields of a task.
type NewTask struct {
	Name      string
	Submitter string
	Priority  models.Priority
	Notes     string
}

// ListFilter selects tasks. Dimensions are ANDed; values within a dimension
// are ORed. An empty dimension matches every task.
type ListFilter struct {
	Statuses   []models.TaskStatus
	Priorities []models.Priority
	Submitters []string
}

// Matches reports whether task passes every filter dimension.
func (f ListFilter) Matches(task models.Task) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, task.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, task.Priority) {
		return false
	}
	if len(f.Submitters) > 0 && !slices.Contains(f.Submitters, task.Submitter) {
		return false
	}
	return true
}

// Create appends a pending task and persists the store. The name is stored
// as entered; a whitespace-only name is rejected.
func (s *Store) Create(ctx context.Context, input NewTask) (models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Task{}, ErrNameRequired
	}
	priority := input.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !models.IsValidPriority(priority) {
		return models.Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:        s.nextID,
		Name:      input.Name,
		Status:    models.DefaultStatus,
		Submitter: input.Submitter,
		Priority:  priority,
		LastRun:   models.FormatLastRun(s.now()),
		Notes:     input.Notes,
	}
	s.nextID++
	s.tasks = append(s.tasks, task)

	if err := s.save(ctx); err != nil {
		return task, err
	}
	return task, nil
}

// Get returns a task by id.
func (s *Store) Get(_ context.Context, id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[idx], nil
}

// List returns the tasks matching filter in insertion order.
func (s *Store) List(_ context.Context, filter ListFilter) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.Matches(task) {
			out = append(out, task)
		}
	}
	return out, nil
}

// UpdateStatus sets a new status and refreshes last_run. Setting the current
// status again is a no-op that reports changed=false and skips persistence.
func (s *Store) UpdateStatus(ctx context.Context, id int, status models.TaskStatus) (models.Task, bool, error) {
	if !models.IsValidTaskStatus(status) {
		return models.Task{}, false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, false, ErrNotFound
	}
	task := &s.tasks[idx]
	if task.Status == status {
		return *task, false, nil
	}

	task.Status = status
	task.LastRun = models.FormatLastRun(s.now())
	updated := *task

	if err := s.save(ctx); err != nil {
		return updated, true, err
	}
	return updated, true, nil
}

// Delete removes the task with id. A missing id is not an error.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)

	if err := s.save(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Counters counts the collection by status.
func (s *Store) Counters(_ context.Context) (models.Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counters := models.Counters{Total: len(s.tasks)}
	for _, task := range s.tasks {
		switch task.Status {
		case models.StatusCompleted:
			counters.Completed++
		case models.StatusRunning:
			counters.Running++
		case models.StatusFailed:
			counters.Failed++
		}
	}
	return counters, nil
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot(_ context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{Tasks: slices.Clone(s.tasks), NextID: s.nextID}, nil
}
