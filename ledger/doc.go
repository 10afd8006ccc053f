// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ledger implements the in-memory vote ledger used by the snapshot
// store. TryRecord is an atomic check-and-set keyed by (report, client).
package ledger
