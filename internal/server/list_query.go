package server

import (
	"net/url"
	"strings"

	"autotrack/internal/store"
)

// parseListFilter reads status, priority and submitter from query values.
// Status and priority may be repeated or comma-separated. Submitter names
// are free text and may contain commas, so each submitter value is taken
// literally.
func parseListFilter(query url.Values) (store.ListFilter, error) {
	var filter store.ListFilter

	for _, raw := range queryList(query, "status") {
		status, err := normalizeStatus(raw)
		if err != nil {
			return store.ListFilter{}, err
		}
		filter.Statuses = appendUnique(filter.Statuses, status)
	}

	for _, raw := range queryList(query, "priority") {
		priority, err := normalizePriority(raw)
		if err != nil {
			return store.ListFilter{}, err
		}
		filter.Priorities = appendUnique(filter.Priorities, priority)
	}

	for _, raw := range query["submitter"] {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		filter.Submitters = appendUnique(filter.Submitters, raw)
	}

	return filter, nil
}

// encodeListFilter is the inverse of parseListFilter, using repeated keys.
func encodeListFilter(filter store.ListFilter) url.Values {
	values := url.Values{}
	for _, status := range filter.Statuses {
		values.Add("status", string(status))
	}
	for _, priority := range filter.Priorities {
		values.Add("priority", string(priority))
	}
	for _, submitter := range filter.Submitters {
		values.Add("submitter", submitter)
	}
	return values
}

func queryList(query url.Values, key string) []string {
	var out []string
	for _, value := range query[key] {
		out = append(out, splitCSV(value)...)
	}
	return out
}

func appendUnique[T ~string](values []T, value T) []T {
	value = T(strings.TrimSpace(string(value)))
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
