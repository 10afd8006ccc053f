// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/mosques", middleware.WithLogging(handler))

Logs one line per request with method, path, status and duration_ms.
5xx responses are logged at error level.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Any origin may call GET and POST with the Content-Type and X-Client-Id
headers. Preflight requests get 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Mosque not found")

Errors are written as {"message": "..."}.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Only ever logged in hashed form (see identity.HashIP).
*/
package middleware
