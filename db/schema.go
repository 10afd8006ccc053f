// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The SQL is the common subset of SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Reports
CREATE TABLE IF NOT EXISTS report (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    lat DOUBLE PRECISION NOT NULL CHECK (lat >= -90 AND lat <= 90),
    lng DOUBLE PRECISION NOT NULL CHECK (lng >= -180 AND lng <= 180),
    food_type TEXT NOT NULL CHECK (food_type IN ('biryani', 'muri', 'jilapi', 'none')),
    prayer_slot TEXT NOT NULL DEFAULT 'unspecified',
    start_time TEXT,
    end_time TEXT,
    event_date TEXT NOT NULL,
    proof_image TEXT,
    agree_count INTEGER NOT NULL DEFAULT 0 CHECK (agree_count >= 0),
    disagree_count INTEGER NOT NULL DEFAULT 0 CHECK (disagree_count >= 0),
    trust_score INTEGER NOT NULL DEFAULT 50 CHECK (trust_score >= 0 AND trust_score <= 100),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_event_date ON report(event_date, created_at);

-- Vote ledger
CREATE TABLE IF NOT EXISTS report_vote (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL REFERENCES report(id) ON DELETE CASCADE,
    client_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('agree', 'disagree')),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (report_id, client_id)
);

CREATE INDEX IF NOT EXISTS idx_report_vote_report_id ON report_vote(report_id);
`
