// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase because the map client reads them directly.

# Request Types

  - CreateReportRequest: name, lat, lng, foodType, prayerSlot, eventDate, startTime, endTime
  - VoteRequest: clientId

# Domain Types

  - Report: one mosque food-service submission for one date
  - Location: lat/lng pair, flattened into Report's JSON
  - Vote: (reportId, clientId, kind) ledger entry
  - NearbyReport: Report plus distanceKm from a caller-supplied origin
  - ErrorResponse: {"message": "..."}
  - VotedResponse: {"voted": bool}
  - ClientResponse: {"clientId": "..."}

# Constants

Food types:

	FoodBiryani = "biryani"
	FoodMuri    = "muri"
	FoodJilapi  = "jilapi"
	FoodNone    = "none"

Prayer slots:

	SlotJuma, SlotAsr, SlotMaghrib, SlotIsha, SlotUnspecified

Vote kinds:

	VoteAgree    = "agree"
	VoteDisagree = "disagree"

Trust bands (score ≥ 80, ≥ 50, otherwise):

	TrustHigh, TrustMedium, TrustLow
*/
package models
