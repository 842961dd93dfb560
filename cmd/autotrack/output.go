package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"autotrack/internal/format"
	"autotrack/internal/models"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

var stdout io.Writer = os.Stdout

var statusMarkers = map[models.TaskStatus]string{
	models.StatusPending:   "○",
	models.StatusRunning:   "◐",
	models.StatusCompleted: "●",
	models.StatusFailed:    "✕",
}

func writeJSON(payload any) error {
	return outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeTaskList(tasks []models.Task) error {
	if len(tasks) == 0 {
		return writePlain("No tasks found.\n")
	}
	for _, task := range tasks {
		if err := writePlain("%s\n", formatTaskLine(task)); err != nil {
			return err
		}
	}
	return nil
}

func writeTaskDetail(task models.Task) error {
	lines := []string{
		fmt.Sprintf("id: %d", task.ID),
		fmt.Sprintf("name: %s", task.Name),
		fmt.Sprintf("status: %s", task.Status),
		fmt.Sprintf("priority: %s", task.Priority),
		fmt.Sprintf("submitter: %s", task.Submitter),
		fmt.Sprintf("last_run: %s", task.LastRun),
	}
	if task.Notes != "" {
		lines = append(lines, fmt.Sprintf("notes: %s", task.Notes))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeCounters(c models.Counters) error {
	return writePlain("total: %d\ncompleted: %d\nrunning: %d\nfailed: %d\n",
		c.Total, c.Completed, c.Running, c.Failed)
}

func formatTaskLine(task models.Task) string {
	marker, ok := statusMarkers[task.Status]
	if !ok {
		marker = "?"
	}
	return fmt.Sprintf("%s %d [%s] [%s] %s - %s (%s)",
		marker, task.ID, task.Status, task.Priority, task.Name, task.Submitter, task.LastRun)
}
