package main

import (
	"context"
	"errors"
	"net"

	"autotrack/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if api.IsNotFound(err) {
			lines = append(lines, "hint: list task ids with: autotrack list")
		}
		switch apiErr.Code {
		case "invalid_argument":
			lines = append(lines, "hint: statuses are pending, running, completed, failed; priorities are Low, Medium, High, Critical.")
		case "":
			lines = append(lines, "hint: verify "+apiURLEnvKey+" points to an autotrack server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase AUTOTRACK_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure an autotrack server is running at "+apiURLEnvKey+".",
			"hint: start local server manually with: autotrack srv",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
