// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/biryani-lagbe/identity"
	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/models"
)

type ClientHandler struct{}

func NewClientHandler() *ClientHandler {
	return &ClientHandler{}
}

// Register handles POST /api/clients
// Issues a random client id for browsers without local storage of their own.
func (h *ClientHandler) Register(w http.ResponseWriter, r *http.Request) {
	clientID, err := identity.GenerateClientID()
	if err != nil {
		slog.Error("failed to generate client id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create client id")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ClientResponse{ClientID: clientID})
}
