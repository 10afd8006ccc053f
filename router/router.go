// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/handlers"
	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

func NewRouter(store reports.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	reportHandler := handlers.NewReportHandler(store, cfg)
	clientHandler := handlers.NewClientHandler()

	// handle registers pattern and its trailing-slash twin.
	handle := func(pattern string, h http.HandlerFunc) {
		h = middleware.WithLogging(h)
		mux.HandleFunc(pattern, h)
		mux.HandleFunc(pattern+"/{$}", h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reports
	handle("GET /api/mosques", reportHandler.List)
	handle("POST /api/mosques", reportHandler.Create)
	handle("GET /api/mosques/nearby", reportHandler.Nearby)
	handle("GET /api/mosques/{id}", reportHandler.Get)

	// Votes
	handle("POST /api/mosques/{id}/verify", reportHandler.Verify)
	handle("POST /api/mosques/{id}/disagree", reportHandler.Disagree)
	handle("GET /api/mosques/{id}/voted", reportHandler.HasVoted)

	// Client ids
	handle("POST /api/clients", clientHandler.Register)

	// Anything else under /api is a JSON 404, never the front-end.
	apiNotFound := func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	}
	mux.HandleFunc("GET /api/", apiNotFound)
	mux.HandleFunc("POST /api/", apiNotFound)

	// Proof images and the front-end
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads", fileHandler(cfg.UploadDir, false)))
	mux.Handle("GET /", fileHandler(cfg.StaticDir, true))

	return mux
}
