package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"autotrack/internal/api"
)

const defaultJSONMaxBody = 1 << 20 // 1 MiB

// apiError carries the HTTP status and error codes for a failed request.
type apiError struct {
	status  int
	code    string
	errCode int
	err     error
}

func (e apiError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

// statusCodes maps a bare HTTP status to the string and numeric codes used
// when an error carries none of its own.
var statusCodes = map[int]struct {
	code    string
	errCode int
}{
	http.StatusBadRequest:          {"invalid_argument", ErrCodeInvalidArgument},
	http.StatusNotFound:            {"not_found", ErrCodeTaskNotFound},
	http.StatusInternalServerError: {"internal", ErrCodeInternal},
}

func newAPIError(status, errCode int, err error) error {
	var existing apiError
	if errors.As(err, &existing) && existing.status != 0 {
		return existing
	}
	return apiError{status: status, code: statusCodes[status].code, errCode: errCode, err: err}
}

func badRequestCode(err error, errCode int) error {
	return newAPIError(http.StatusBadRequest, errCode, err)
}

func notFound(err error) error {
	return newAPIError(http.StatusNotFound, ErrCodeTaskNotFound, err)
}

func storeFailure(err error) error {
	return newAPIError(http.StatusInternalServerError, ErrCodeStoreFailure, err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.status != 0 {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.code != "" {
		return apiErr.code
	}
	return statusCodes[status].code
}

func errorNumericCode(status int, err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.errCode > 0 {
		return apiErr.errCode
	}
	return defaultErrorCodeByStatus(status)
}

// writeErrorReq logs err and writes the JSON error envelope. Messages of
// 5xx errors are replaced so store details do not leak to clients.
func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	resp := api.ErrorResponse{
		Error:     err.Error(),
		Code:      errorCode(status, err),
		ErrorCode: errorNumericCode(status, err),
	}

	fields := []any{"status", status, "code", resp.Code, "error_code", resp.ErrorCode, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "request_id", requestID(r))
	}
	if status >= http.StatusInternalServerError {
		s.log().Error("request error", fields...)
		resp.Error = "internal error"
	} else {
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, status, resp)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, httpStatusFromError(err), err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// decodeJSONReq decodes the request body into dst, writing a 400 on failure.
func (s *Server) decodeJSONReq(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, defaultJSONMaxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, classifyDecodeJSONError(err))
		return false
	}
	return true
}

func classifyDecodeJSONError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return badRequestCode(fmt.Errorf("invalid JSON payload"), ErrCodeInvalidJSON)
	default:
		return badRequestCode(err, ErrCodeInvalidJSON)
	}
}

func (s *Server) pathIDOrBadRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := parseTaskID(r.PathValue("id"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
