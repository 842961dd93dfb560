package server

import (
	"fmt"
	"strconv"
	"strings"

	"autotrack/internal/models"
)

func parseTaskID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, badRequestCode(fmt.Errorf("invalid id"), ErrCodeInvalidID)
	}
	return id, nil
}

func normalizeStatus(value string) (models.TaskStatus, error) {
	status, err := models.ParseTaskStatus(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidStatus)
	}
	return status, nil
}

// normalizePriority maps a blank value to the default priority.
func normalizePriority(value string) (models.Priority, error) {
	priority, err := models.ParsePriority(value)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidPriority)
	}
	return priority, nil
}
