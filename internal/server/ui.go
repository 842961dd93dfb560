package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"autotrack/internal/api"
	"autotrack/internal/models"
	"autotrack/internal/store"
)

const (
	maxFormBody        = 64 << 10
	nameRequiredNotice = "Please enter a task name"
)

//go:embed uiassets/index.html.tmpl uiassets/static/*
var uiFS embed.FS

var pageTemplate = template.Must(template.New("index.html.tmpl").ParseFS(uiFS, "uiassets/index.html.tmpl"))

type pageData struct {
	Title        string
	ShowPriority bool
	Persistent   bool
	DataPath     string
	Counters     models.Counters
	Roster       []string
	Statuses     []string
	Priorities   []string
	Tasks        []taskView
	Filter       filterView
	CreateAction template.URL
	Error        string
	Form         formValues
}

type taskView struct {
	models.Task
	StatusAction template.URL
	DeleteAction template.URL
}

type filterView struct {
	Statuses   map[string]bool
	Priorities map[string]bool
	Submitters map[string]bool
	Active     bool
}

type formValues struct {
	Name      string
	Submitter string
	Priority  string
	Notes     string
	Open      bool
}

func (s *Server) uiAssetHandler() http.Handler {
	static, err := fs.Sub(uiFS, "uiassets/static")
	if err != nil {
		return http.NotFoundHandler()
	}

	fileServer := http.StripPrefix("/ui/", http.FileServerFS(static))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

func (s *Server) handleUIIndex(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		s.renderPage(w, r, http.StatusBadRequest, store.ListFilter{}, err.Error(), formValues{})
		return
	}
	s.renderPage(w, r, http.StatusOK, filter, "", formValues{})
}

func (s *Server) handleUICreate(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormReq(w, r) {
		return
	}
	filter := s.pageFilter(r)

	form := formValues{
		Name:      r.PostFormValue("name"),
		Submitter: r.PostFormValue("submitter"),
		Priority:  r.PostFormValue("priority"),
		Notes:     r.PostFormValue("notes"),
		Open:      true,
	}
	req := api.TaskCreateRequest{Name: form.Name, Submitter: form.Submitter, Notes: form.Notes}
	if s.opts.ShowPriority {
		req.Priority = form.Priority
	}

	if _, err := s.service.Create(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, store.ErrNameRequired):
			s.renderPage(w, r, http.StatusUnprocessableEntity, filter, nameRequiredNotice, form)
		case httpStatusFromError(err) < http.StatusInternalServerError:
			s.renderPage(w, r, httpStatusFromError(err), filter, err.Error(), form)
		default:
			s.writeUIFailure(w, r, err)
		}
		return
	}

	s.redirectHome(w, r, filter)
}

func (s *Server) handleUIStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pageTaskID(w, r)
	if !ok {
		return
	}
	if !s.parseFormReq(w, r) {
		return
	}
	filter := s.pageFilter(r)

	if _, err := s.service.UpdateStatus(r.Context(), id, r.PostFormValue("status")); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Stale page; the task is already gone.
		case httpStatusFromError(err) < http.StatusInternalServerError:
			s.renderPage(w, r, httpStatusFromError(err), filter, err.Error(), formValues{})
			return
		default:
			s.writeUIFailure(w, r, err)
			return
		}
	}

	s.redirectHome(w, r, filter)
}

func (s *Server) handleUIDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pageTaskID(w, r)
	if !ok {
		return
	}
	filter := s.pageFilter(r)

	if _, err := s.service.Delete(r.Context(), id); err != nil {
		s.writeUIFailure(w, r, err)
		return
	}

	s.redirectHome(w, r, filter)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, filter store.ListFilter, message string, form formValues) {
	data, err := s.buildPage(r, filter)
	if err != nil {
		s.writeUIFailure(w, r, err)
		return
	}
	data.Error = message
	data.Form = form
	if data.Form.Submitter == "" && len(data.Roster) > 0 {
		data.Form.Submitter = data.Roster[0]
	}
	if data.Form.Priority == "" {
		data.Form.Priority = string(models.DefaultPriority)
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.writeUIFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) buildPage(r *http.Request, filter store.ListFilter) (pageData, error) {
	counters, err := s.service.Counters(r.Context())
	if err != nil {
		return pageData{}, err
	}
	tasks, err := s.service.List(r.Context(), filter)
	if err != nil {
		return pageData{}, err
	}

	query := encodeListFilter(filter).Encode()
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		base := "/tasks/" + strconv.Itoa(task.ID)
		views = append(views, taskView{
			Task:         task,
			StatusAction: withQuery(base+"/status", query),
			DeleteAction: withQuery(base+"/delete", query),
		})
	}

	return pageData{
		Title:        s.opts.Title,
		ShowPriority: s.opts.ShowPriority,
		Persistent:   s.opts.DataPath != "",
		DataPath:     s.opts.DataPath,
		Counters:     counters,
		Roster:       s.roster(),
		Statuses:     models.StatusStrings(),
		Priorities:   models.PriorityStrings(),
		Tasks:        views,
		Filter:       newFilterView(filter),
		CreateAction: withQuery("/tasks", query),
	}, nil
}

func newFilterView(filter store.ListFilter) filterView {
	view := filterView{
		Statuses:   map[string]bool{},
		Priorities: map[string]bool{},
		Submitters: map[string]bool{},
	}
	for _, status := range filter.Statuses {
		view.Statuses[string(status)] = true
	}
	for _, priority := range filter.Priorities {
		view.Priorities[string(priority)] = true
	}
	for _, submitter := range filter.Submitters {
		view.Submitters[submitter] = true
	}
	view.Active = len(filter.Statuses)+len(filter.Priorities)+len(filter.Submitters) > 0
	return view
}

// pageFilter reads the filter carried on a form's action URL. Invalid values
// fall back to no filter.
func (s *Server) pageFilter(r *http.Request) store.ListFilter {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		s.log().Debug("ignoring invalid page filter", "error", err, "request_id", requestID(r))
		return store.ListFilter{}
	}
	return filter
}

func (s *Server) pageTaskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := parseTaskID(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) parseFormReq(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, filter store.ListFilter) {
	http.Redirect(w, r, string(withQuery("/", encodeListFilter(filter).Encode())), http.StatusSeeOther)
}

func (s *Server) writeUIFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.log().Error("page request failed", "error", err, "method", r.Method, "path", r.URL.Path, "request_id", requestID(r))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func withQuery(path, query string) template.URL {
	if query == "" {
		return template.URL(path)
	}
	return template.URL(path + "?" + query)
}
