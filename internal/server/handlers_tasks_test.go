package server

import (
	"net/http"
	"slices"
	"strings"
	"testing"

	"autotrack/internal/api"
	"autotrack/internal/models"
)

func TestCreateTask(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/tasks", api.TaskCreateRequest{
		Name:      "Nightly backup",
		Submitter: "Ada Lovelace",
		Priority:  "high",
		Notes:     "runs at 2am",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	task := decodeBody[models.Task](t, w)
	if task.ID != 1 || task.Name != "Nightly backup" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Status != models.StatusPending || task.Priority != models.PriorityHigh {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if task.LastRun == "" {
		t.Fatal("expected last_run to be set")
	}
}

func TestCreateTaskUnknownFieldsAreIgnored(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/tasks", map[string]any{
		"name":           "Forward compatible",
		"future_setting": map[string]any{"nested": true},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if task := decodeBody[models.Task](t, w); task.Priority != models.PriorityMedium {
		t.Fatalf("expected default priority, got %q", task.Priority)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "blank name", body: `{"name":"   "}`, wantCode: ErrCodeMissingRequired},
		{name: "invalid priority", body: `{"name":"x","priority":"urgent"}`, wantCode: ErrCodeInvalidPriority},
		{name: "malformed json", body: `{"name":`, wantCode: ErrCodeInvalidJSON},
		{name: "wrong type", body: `{"name":5}`, wantCode: ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			w := doRaw(t, srv, http.MethodPost, "/v1/tasks", tt.body)
			requireErrorCode(t, w, http.StatusBadRequest, tt.wantCode)

			if names := listTaskNames(t, srv, ""); len(names) != 0 {
				t.Fatalf("expected no tasks after rejected create, got %v", names)
			}
		})
	}
}

func TestCreateTaskBlankNameKeepsNextID(t *testing.T) {
	srv := newTestServer(t)

	requireErrorCode(t, doRaw(t, srv, http.MethodPost, "/v1/tasks", `{"name":""}`), http.StatusBadRequest, ErrCodeMissingRequired)

	w := doJSON(t, srv, http.MethodPost, "/v1/tasks", api.TaskCreateRequest{Name: "first"})
	if task := decodeBody[models.Task](t, w); task.ID != 1 {
		t.Fatalf("expected id 1 after rejected create, got %d", task.ID)
	}
}

func TestGetTask(t *testing.T) {
	srv := newTestServer(t)
	seeded := seedTask(t, srv, "Deploy", "Grace Hopper", models.PriorityLow, "")

	w := doJSON(t, srv, http.MethodGet, "/v1/tasks/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := decodeBody[models.Task](t, w); got != seeded {
		t.Fatalf("expected %+v, got %+v", seeded, got)
	}

	requireErrorCode(t, doJSON(t, srv, http.MethodGet, "/v1/tasks/42", nil), http.StatusNotFound, ErrCodeTaskNotFound)
	requireErrorCode(t, doJSON(t, srv, http.MethodGet, "/v1/tasks/abc", nil), http.StatusBadRequest, ErrCodeInvalidID)
	requireErrorCode(t, doJSON(t, srv, http.MethodGet, "/v1/tasks/0", nil), http.StatusBadRequest, ErrCodeInvalidID)
}

func TestListTasksFilters(t *testing.T) {
	srv := newTestServer(t)
	seedTask(t, srv, "a", "Ada Lovelace", models.PriorityLow, models.StatusRunning)
	seedTask(t, srv, "b", "Grace Hopper", models.PriorityHigh, models.StatusFailed)
	seedTask(t, srv, "c", "Ada Lovelace", models.PriorityHigh, models.StatusCompleted)
	seedTask(t, srv, "d", "Grace Hopper", models.PriorityCritical, "")
	seedTask(t, srv, "e", "Karaj, Ilda", models.PriorityLow, "")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "no filter", query: "", want: []string{"a", "b", "c", "d", "e"}},
		{name: "single status", query: "?status=running", want: []string{"a"}},
		{name: "csv statuses", query: "?status=running,failed", want: []string{"a", "b"}},
		{name: "repeated statuses", query: "?status=failed&status=pending", want: []string{"b", "d", "e"}},
		{name: "status is case-insensitive", query: "?status=COMPLETED", want: []string{"c"}},
		{name: "priority", query: "?priority=high", want: []string{"b", "c"}},
		{name: "submitter", query: "?submitter=Grace+Hopper", want: []string{"b", "d"}},
		{name: "dimensions are anded", query: "?submitter=Ada+Lovelace&priority=High", want: []string{"c"}},
		{name: "no match", query: "?status=pending&submitter=Ada+Lovelace", want: []string{}},
		{name: "submitter containing comma", query: "?submitter=Karaj%2C+Ilda", want: []string{"e"}},
		{name: "repeated submitters", query: "?submitter=Karaj%2C+Ilda&submitter=Grace+Hopper", want: []string{"b", "d", "e"}},
		{name: "submitter is not split", query: "?submitter=Karaj", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listTaskNames(t, srv, tt.query)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestListTasksEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/tasks", nil)
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestListTasksInvalidQuery(t *testing.T) {
	srv := newTestServer(t)

	requireErrorCode(t, doJSON(t, srv, http.MethodGet, "/v1/tasks?status=done", nil), http.StatusBadRequest, ErrCodeInvalidStatus)
	requireErrorCode(t, doJSON(t, srv, http.MethodGet, "/v1/tasks?priority=urgent", nil), http.StatusBadRequest, ErrCodeInvalidPriority)
}

func TestUpdateStatus(t *testing.T) {
	srv := newTestServer(t)
	seedTask(t, srv, "Deploy", "Ada Lovelace", "", "")

	w := doJSON(t, srv, http.MethodPatch, "/v1/tasks/1/status", api.TaskStatusRequest{Status: "running"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody[api.TaskStatusResponse](t, w)
	if !resp.Changed || resp.Task.Status != models.StatusRunning {
		t.Fatalf("unexpected response: %+v", resp)
	}

	w = doJSON(t, srv, http.MethodPatch, "/v1/tasks/1/status", api.TaskStatusRequest{Status: "running"})
	resp = decodeBody[api.TaskStatusResponse](t, w)
	if resp.Changed {
		t.Fatalf("expected unchanged response for same status: %+v", resp)
	}

	requireErrorCode(t,
		doJSON(t, srv, http.MethodPatch, "/v1/tasks/1/status", api.TaskStatusRequest{Status: "paused"}),
		http.StatusBadRequest, ErrCodeInvalidStatus)
	requireErrorCode(t,
		doJSON(t, srv, http.MethodPatch, "/v1/tasks/9/status", api.TaskStatusRequest{Status: "failed"}),
		http.StatusNotFound, ErrCodeTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t)
	seedTask(t, srv, "Deploy", "Ada Lovelace", "", "")

	w := doJSON(t, srv, http.MethodDelete, "/v1/tasks/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if resp := decodeBody[api.TaskDeleteResponse](t, w); !resp.Deleted || resp.ID != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	w = doJSON(t, srv, http.MethodDelete, "/v1/tasks/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing id, got %d (%s)", w.Code, w.Body.String())
	}
	if resp := decodeBody[api.TaskDeleteResponse](t, w); resp.Deleted {
		t.Fatalf("expected deleted=false for missing id: %+v", resp)
	}
}
