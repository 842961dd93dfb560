package server

import (
	"net/http"

	"autotrack/internal/api"
	"autotrack/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	counters, err := s.service.Counters(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := api.InfoResponse{
		Title:        s.opts.Title,
		Backend:      s.opts.Backend,
		DataPath:     s.opts.DataPath,
		ShowPriority: s.opts.ShowPriority,
		Counters:     counters,
		Roster:       s.roster(),
		Statuses:     models.StatusStrings(),
		Priorities:   models.PriorityStrings(),
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.roster())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="tasks.json"`)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) roster() []string {
	if s.opts.Roster == nil {
		return []string{}
	}
	return s.opts.Roster
}
