// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filestore is the default report store: one JSON snapshot file.

	store, err := filestore.Open(".data/mosques.json", reports.NewClock(loc))

# Snapshot Layout

	{"version": 1, "reports": [...], "votes": [...]}

Counts are recomputed from votes on load.

# Writes

Create and RecordVote hold a single-writer lock, build the next in-memory
state, write it to a temp file, fsync, and rename it over the snapshot.
The in-memory state is swapped only after the rename succeeds, so a failed
write leaves both disk and memory at the previous version.

Reads never take the writer lock.
*/
package filestore
