package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
)

// successResponse is the envelope for every successful API response.
type successResponse struct {
	Success bool   `json:"success"`
	Spot    string `json:"spot,omitempty"`
	Data    any    `json:"data"`
}

// errorResponse is the envelope for every error response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
}

// writeJSON marshals v and writes it with the given status. A marshal
// failure becomes a 500 error envelope.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: errorDetail{
			Code:      string(apperr.ErrCodeInternalUnexpected),
			Message:   "failed to marshal response",
			RequestID: apperr.GetRequestID(r.Context()),
		}})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Data: data})
}

// writeError writes an error envelope. AppErrors keep their code and
// message; anything else becomes a generic 500 so internals do not leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := apperr.GetRequestID(r.Context())

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, r, appErr.HTTPStatus(), errorResponse{Error: errorDetail{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			RequestID: requestID,
		}})
		return
	}

	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: errorDetail{
		Code:      string(apperr.ErrCodeInternalUnexpected),
		Message:   "an unexpected error occurred",
		RequestID: requestID,
	}})
}
