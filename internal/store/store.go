package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"autotrack/internal/models"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrNameRequired    = errors.New("task name is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// State is the full persisted view of a store.
type State struct {
	Tasks  []models.Task `json:"tasks"`
	NextID int          `json:"next_id"`
}

// Store holds the ordered task collection and the next-id counter.
// All operations take a single mutex; one store is shared by every session.
type Store struct {
	mu        sync.Mutex
	tasks     []models.Task
	nextID    int
	persister Persister
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for last_run.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemory returns an empty store that is never persisted.
func NewMemory(opts ...Option) *Store {
	s := &Store{nextID: 1, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads state from persister and returns a store that saves back to it
// after every mutation. Load failures are returned as-is.
func Open(ctx context.Context, persister Persister, opts ...Option) (*Store, error) {
	if persister == nil {
		return nil, fmt.Errorf("persister is required")
	}
	state, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	state, err = normalizeState(state)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s := NewMemory(opts...)
	s.tasks = state.Tasks
	s.nextID = state.NextID
	s.persister = persister
	return s, nil
}

// Seed appends tasks as if they had been created, without persisting.
// It is used to preload demo data into an in-memory store.
func (s *Store) Seed(tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := State{Tasks: append(slices.Clone(s.tasks), tasks...), NextID: s.nextID}
	normalized, err := normalizeState(merged)
	if err != nil {
		return err
	}
	s.tasks = normalized.Tasks
	s.nextID = normalized.NextID
	return nil
}

// Close releases the persister when it holds resources.
func (s *Store) Close() error {
	if s == nil || s.persister == nil {
		return nil
	}
	if closer, ok := s.persister.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Persistent reports whether mutations are mirrored to storage.
func (s *Store) Persistent() bool {
	return s != nil && s.persister != nil
}

// save must be called with s.mu held.
func (s *Store) save(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	state := State{Tasks: slices.Clone(s.tasks), NextID: s.nextID}
	if err := s.persister.Save(ctx, state); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// normalizeState validates loaded records and repairs next_id so ids are never reused.
func normalizeState(state State) (State, error) {
	seen := make(map[int]struct{}, len(state.Tasks))
	maxID := 0
	tasks := make([]models.Task, 0, len(state.Tasks))
	for _, task := range state.Tasks {
		if task.ID <= 0 {
			return State{}, fmt.Errorf("task id must be positive, got %d", task.ID)
		}
		if _, ok := seen[task.ID]; ok {
			return State{}, fmt.Errorf("duplicate task id %d", task.ID)
		}
		seen[task.ID] = struct{}{}
		if !models.IsValidTaskStatus(task.Status) {
			return State{}, fmt.Errorf("task %d: %w: %q", task.ID, ErrInvalidStatus, task.Status)
		}
		if task.Priority == "" {
			task.Priority = models.DefaultPriority
		}
		if !models.IsValidPriority(task.Priority) {
			return State{}, fmt.Errorf("task %d: %w: %q", task.ID, ErrInvalidPriority, task.Priority)
		}
		maxID = max(maxID, task.ID)
		tasks = append(tasks, task)
	}

	nextID := state.NextID
	if nextID < 1 {
		nextID = 1
	}
	if nextID <= maxID {
		nextID = maxID + 1
	}
	return State{Tasks: tasks, NextID: nextID}, nil
}
