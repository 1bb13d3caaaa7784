// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pageant/middleware"
	"github.com/danielhkuo/pageant/scoring"
)

// writeError maps service errors onto status codes. Unknown errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, err error, action string) {
	var verr *scoring.ValidationError
	var nerr *scoring.NotFoundError
	var cerr *scoring.ConflictError

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		middleware.ErrorResponse(w, http.StatusNotFound, nerr.Error())
	case errors.As(err, &cerr):
		middleware.ErrorResponse(w, http.StatusConflict, cerr.Error())
	case errors.Is(err, scoring.ErrNoData):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, middleware.ErrInvalidBody):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
