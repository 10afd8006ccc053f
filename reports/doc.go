// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reports holds the rules shared by every report store backend.

# Store Contract

Store is implemented by filestore (JSON snapshot) and sqlstore (SQLite or
PostgreSQL):

	r, err := store.Create(ctx, draft)
	list, err := store.List(ctx, reports.Filter{EventDate: "2024-05-10"})
	r, err = store.RecordVote(ctx, r.ID, clientID, models.VoteAgree)

Backends call Prepare and PrepareVote so validation happens before any
write, and ApplyVote so counts and trust are computed in one place.

# Errors

	*ValidationError     bad input, names the first invalid field
	*NotFoundError       unknown report id
	*DuplicateVoteError  client already voted, nothing changed
	*StorageError        persistence failure or write lock timeout

# Trust

	TrustScore(agree, disagree) = round(100*agree/(agree+disagree)), 50 with no votes

# Filtering

Filter.Match is a logical AND of event date, case-insensitive name
substring, food type, and an inclusive bounding box. Nearby and
HaversineKm serve the radius search done by the HTTP layer.
*/
package reports
