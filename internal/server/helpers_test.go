package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autotrack/internal/api"
	"autotrack/internal/models"
	"autotrack/internal/store"
)

var testRoster = []string{"Ada Lovelace", "Grace Hopper"}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithOptions(t, Options{
		Title:        "Automation Tracker",
		ShowPriority: true,
		Roster:       testRoster,
		Backend:      "memory",
	})
}

func newTestServerWithOptions(t *testing.T, opts Options) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("127.0.0.1:0", store.NewMemory(), opts, logger)
}

func seedTask(t *testing.T, srv *Server, name, submitter string, priority models.Priority, status models.TaskStatus) models.Task {
	t.Helper()
	ctx := context.Background()
	task, err := srv.store.Create(ctx, store.NewTask{Name: name, Submitter: submitter, Priority: priority})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	if status != "" && status != task.Status {
		task, _, err = srv.store.UpdateStatus(ctx, task.ID, status)
		if err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}
	return task
}

func doJSON(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d (%s)", status, w.Code, w.Body.String())
	}
	errResp := decodeBody[api.ErrorResponse](t, w)
	if errResp.ErrorCode != code {
		t.Fatalf("expected error_code %d, got %d (%s)", code, errResp.ErrorCode, errResp.Error)
	}
}

func listTaskNames(t *testing.T, srv *Server, query string) []string {
	t.Helper()
	w := doJSON(t, srv, http.MethodGet, "/v1/tasks"+query, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	tasks := decodeBody[[]models.Task](t, w)
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	return names
}

func doRaw(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func seedLookup(t *testing.T, srv *Server, id int) models.Task {
	t.Helper()
	task, err := srv.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get task %d: %v", id, err)
	}
	return task
}
