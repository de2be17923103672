package handler

// Every response uses one envelope:
//
//	success: {"status":"success","data":{...}}
//	fail:    {"status":"fail","error":"not_found","message":"thread not found"}
//	error:   {"status":"error","error":"internal_error","message":"terjadi kegagalan pada server kami"}
//
// "fail" is the client's fault (4xx), "error" is ours (5xx).

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/forum-api/internal/apperror"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"

	internalErrorMessage = "terjadi kegagalan pada server kami"
)

// Response is the envelope of every API response.
type Response struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON sets headers and status before the body; anything set after the
// first Write is ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Status: statusSuccess, Data: data})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates a use-case error into a fail or error envelope.
// Only *apperror.AppError messages reach the client; anything else is
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := statusFor(err)
		if status != http.StatusInternalServerError {
			writeJSON(w, status, Response{
				Status:  statusFail,
				Error:   apperror.Kind(err),
				Message: appErr.Message,
			})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, Response{
		Status:  statusError,
		Error:   "internal_error",
		Message: internalErrorMessage,
	})
}

// NotFound answers requests to unregistered routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Response{
		Status:  statusFail,
		Error:   "not_found",
		Message: "route " + r.URL.Path + " not found",
	})
}

// MethodNotAllowed answers a known route requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Response{
		Status:  statusFail,
		Error:   "method_not_allowed",
		Message: r.Method + " is not allowed on " + r.URL.Path,
	})
}
