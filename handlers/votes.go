// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/biryani-lagbe/identity"
	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

const ClientIDHeader = "X-Client-Id"

var errInvalidJSON = errors.New("invalid JSON body")

// Verify handles POST /api/mosques/{id}/verify
func (h *ReportHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, models.VoteAgree)
}

// Disagree handles POST /api/mosques/{id}/disagree
func (h *ReportHandler) Disagree(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, models.VoteDisagree)
}

func (h *ReportHandler) vote(w http.ResponseWriter, r *http.Request, kind string) {
	reportID := r.PathValue("id")

	clientID, err := clientIDFromRequest(w, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	report, err := h.store.RecordVote(ctx, reportID, clientID, kind)
	if err != nil {
		var duplicate *reports.DuplicateVoteError
		if errors.As(err, &duplicate) {
			slog.Info("duplicate vote rejected",
				"report_id", reportID,
				"client", identity.HashClientID(duplicate.ClientID, h.cfg.ClientIDSalt),
			)
		}
		writeStoreError(w, "record vote", err)
		return
	}

	slog.Info("vote recorded",
		"report_id", reportID,
		"kind", kind,
		"client", identity.HashClientID(strings.TrimSpace(clientID), h.cfg.ClientIDSalt),
		"ip", identity.HashIP(middleware.GetClientIP(r), h.cfg.ClientIDSalt),
		"trust", report.TrustScore,
	)

	middleware.JSONResponse(w, http.StatusOK, report)
}

// HasVoted handles GET /api/mosques/{id}/voted
func (h *ReportHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	clientID, err := reports.NormalizeClientID(clientIDFromHeaderOrQuery(r))
	if err != nil {
		writeStoreError(w, "check vote", err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if _, err := h.store.Get(ctx, reportID); err != nil {
		writeStoreError(w, "get report", err)
		return
	}

	voted, err := h.store.HasVoted(ctx, reportID, clientID)
	if err != nil {
		writeStoreError(w, "check vote", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotedResponse{Voted: voted})
}

func clientIDFromHeaderOrQuery(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ClientIDHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("clientId"))
}

// clientIDFromRequest looks at the X-Client-Id header, then the clientId
// query parameter, then a JSON body. An empty result is left for the store
// to reject.
func clientIDFromRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := clientIDFromHeaderOrQuery(r); id != "" {
		return id, nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, jsonBodyLimit)
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", errInvalidJSON
	}
	return req.ClientID, nil
}
