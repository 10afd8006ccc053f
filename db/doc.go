// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL backends and creates the schema.

# Opening

	conn, err := db.Open(db.TypeSQLite, "file:.data/mosques.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite with a single connection, busy_timeout, and
foreign keys on. PostgreSQL uses lib/pq.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - report: one mosque food report, with denormalized vote counts and trust
  - report_vote: vote ledger, UNIQUE (report_id, client_id)

# Relationships

	report 1──* report_vote

report_vote.report_id uses ON DELETE CASCADE.
*/
package db
