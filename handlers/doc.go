// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Biryani Lagbe API.

# Handler Types

  - ReportHandler: report submission, listing, nearby search and votes
  - ClientHandler: issues random client ids

	reportHandler := handlers.NewReportHandler(store, cfg)

ReportHandler works against any reports.Store, so the same handlers serve
the file and SQL backends.

# Reports

	GET  /api/mosques        → List (date, q, quickFood, bbox)
	GET  /api/mosques/nearby → Nearby (date, lat, lng, radiusKm)
	GET  /api/mosques/{id}   → Get
	POST /api/mosques        → Create

Create accepts JSON, urlencoded forms and multipart forms. A multipart
proofImage is saved through package uploads only after the other fields
validate.

# Votes

	POST /api/mosques/{id}/verify   → Verify
	POST /api/mosques/{id}/disagree → Disagree
	GET  /api/mosques/{id}/voted    → HasVoted

The client id comes from the X-Client-Id header, the clientId query
parameter or a JSON body, in that order. One vote per client per report;
repeats get 409.

# Errors

Store errors map to status codes in writeStoreError:

	*reports.ValidationError    400 with the field message
	*reports.NotFoundError      404 "Mosque not found"
	*reports.DuplicateVoteError 409 "You already voted"
	context deadline            503 "Store busy, please try again"
	anything else               500 "Storage failure"

Every store call runs under cfg.StoreTimeout.
*/
package handlers
