// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

// writeStoreError maps a store error to its HTTP response. Storage details
// are logged, never returned.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	var validation *reports.ValidationError
	var notFound *reports.NotFoundError
	var duplicate *reports.DuplicateVoteError

	switch {
	case errors.As(err, &validation):
		middleware.ErrorResponse(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &notFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Mosque not found")
	case errors.As(err, &duplicate):
		middleware.ErrorResponse(w, http.StatusConflict, "You already voted")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		slog.Warn("store busy", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store busy, please try again")
	default:
		slog.Error("store failure", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage failure")
	}
}
