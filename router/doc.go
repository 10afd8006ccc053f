// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Biryani Lagbe API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Reports:

	GET  /api/mosques          - List by date, text, food type and bbox
	POST /api/mosques          - Submit a report (JSON, form or multipart)
	GET  /api/mosques/nearby   - Reports within radiusKm of lat,lng
	GET  /api/mosques/{id}     - One report

Votes:

	POST /api/mosques/{id}/verify   - Agree
	POST /api/mosques/{id}/disagree - Disagree
	GET  /api/mosques/{id}/voted    - Whether a client already voted

Clients:

	POST /api/clients - Issue a random client id

Every API route also answers with a trailing slash. Other /api paths get a
JSON 404.

# Files

	GET /uploads/... - proof images from the upload directory
	GET /...         - front-end from the static directory, index.html fallback

Dot-files and directory listings are never served.
*/
package router
