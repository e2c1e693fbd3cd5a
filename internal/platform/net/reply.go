// Package net holds the JSON reply envelope shared by handlers and middleware
package net

import (
	"context"
	"net/http"

	perr "biasdb/internal/platform/errors"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the id chi's RequestID middleware stored on ctx
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Wire is the body every endpoint answers with
// data is set on success, code and error on failure
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Success builds a success envelope, status 0 means 200
func Success(status int, data any, reqID string) (int, Wire) {
	if status == 0 {
		status = http.StatusOK
	}
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Error builds an error envelope with the status perr maps err to
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return Success(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
