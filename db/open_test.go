// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestSQLiteDSN(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"file:mosques.db", "file:mosques.db?" + sqlitePragmas},
		{"file:mosques.db?mode=rwc", "file:mosques.db?mode=rwc&" + sqlitePragmas},
		{"file:mosques.db?_pragma=journal_mode(WAL)", "file:mosques.db?_pragma=journal_mode(WAL)"},
	}

	for _, tc := range testCases {
		if got := sqliteDSN(tc.in); got != tc.expected {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open("mysql", "root@/db"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, "file:"+filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema run %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"report", "report_vote"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s: %v", table, err)
		}
	}
}
