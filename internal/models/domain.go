package models

import (
	"fmt"
	"strings"
)

// TaskStatus defines allowed lifecycle states for tasks.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Priority defines allowed task priorities.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

const (
	DefaultStatus   = StatusPending
	DefaultPriority = PriorityMedium
)

// Statuses lists every status in display order.
var Statuses = []TaskStatus{
	StatusPending,
	StatusRunning,
	StatusCompleted,
	StatusFailed,
}

// Priorities lists every priority in display order.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

var validTaskStatuses = map[TaskStatus]struct{}{
	StatusPending:   {},
	StatusRunning:   {},
	StatusCompleted: {},
	StatusFailed:    {},
}

// priorities are matched case-insensitively but stored capitalized.
var prioritiesByLower = map[string]Priority{
	"low":      PriorityLow,
	"medium":   PriorityMedium,
	"high":     PriorityHigh,
	"critical": PriorityCritical,
}

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

// IsValidPriority reports whether priority is one of the stored, capitalized values.
func IsValidPriority(priority Priority) bool {
	canonical, ok := prioritiesByLower[strings.ToLower(string(priority))]
	return ok && canonical == priority
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidTaskStatus(value) {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return value, nil
}

// ParsePriority normalizes raw into a Priority. Blank input yields the default.
func ParsePriority(raw string) (Priority, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultPriority, nil
	}
	priority, ok := prioritiesByLower[strings.ToLower(value)]
	if !ok {
		return "", fmt.Errorf("invalid priority: %s", value)
	}
	return priority, nil
}

func StatusStrings() []string {
	out := make([]string, 0, len(Statuses))
	for _, value := range Statuses {
		out = append(out, string(value))
	}
	return out
}

func PriorityStrings() []string {
	out := make([]string, 0, len(Priorities))
	for _, value := range Priorities {
		out = append(out, string(value))
	}
	return out
}
