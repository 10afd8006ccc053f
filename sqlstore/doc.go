// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlstore implements the report store on database/sql.

	conn, _ := db.Open(db.TypeSQLite, "file:.data/mosques.db")
	_ = db.CreateSchema(conn)
	store := sqlstore.New(conn, reports.NewClock(loc))

RecordVote runs in one transaction: read the report, insert into
report_vote with ON CONFLICT DO NOTHING, bump the counter, recompute
trust, commit. A conflicting insert means a duplicate vote and the
transaction is rolled back.
*/
package sqlstore
