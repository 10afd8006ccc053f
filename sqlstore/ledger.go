// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"

	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type voteLedger struct {
	q execQuerier
}

var _ reports.Ledger = voteLedger{}

// TryRecord relies on UNIQUE (report_id, client_id): a repeat insert
// affects no rows.
func (l voteLedger) TryRecord(ctx context.Context, v models.Vote) (bool, error) {
	res, err := l.q.ExecContext(ctx, `
		INSERT INTO report_vote (id, report_id, client_id, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (report_id, client_id) DO NOTHING
	`, v.ID, v.ReportID, v.ClientID, v.Kind, v.CreatedAt)
	if err != nil {
		return false, reports.Storage("insert vote", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, reports.Storage("insert vote", err)
	}
	return n == 1, nil
}

func (l voteLedger) HasVoted(ctx context.Context, reportID, clientID string) (bool, error) {
	var exists bool
	err := l.q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM report_vote
			WHERE report_id = $1 AND client_id = $2
		)
	`, reportID, clientID).Scan(&exists)
	if err != nil {
		return false, reports.Storage("query vote", err)
	}
	return exists, nil
}
