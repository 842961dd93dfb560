package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Page.
	mux.HandleFunc("GET /{$}", s.handleUIIndex)
	mux.HandleFunc("POST /tasks", s.handleUICreate)
	mux.HandleFunc("POST /tasks/{id}/status", s.handleUIStatus)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleUIDelete)
	mux.Handle("GET /ui/", s.uiAssetHandler())

	// Health check, info and metrics.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)
	mux.HandleFunc("GET /v1/roster", s.handleRoster)
	mux.Handle("GET /metrics", s.metricsHandler())

	// Tasks collection.
	mux.HandleFunc("POST /v1/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /v1/tasks", s.handleListTasks)

	// Single task.
	mux.HandleFunc("GET /v1/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PATCH /v1/tasks/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.handleDeleteTask)

	// Export.
	mux.HandleFunc("GET /v1/export", s.handleExport)

	return s.withRequestLogging(mux)
}
