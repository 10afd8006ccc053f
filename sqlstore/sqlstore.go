// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

const reportColumns = `id, name, lat, lng, food_type, prayer_slot, start_time, end_time,
	event_date, proof_image, agree_count, disagree_count, trust_score, created_at, updated_at`

// Store keeps reports in SQLite or PostgreSQL. The vote ledger is the
// report_vote table; a vote insert and its count update share one
// transaction.
type Store struct {
	db    *sql.DB
	clock reports.Clock
	lock  reports.WriteLock
}

var _ reports.Store = (*Store)(nil)

// New wraps an open connection whose schema already exists (see
// db.CreateSchema).
func New(db *sql.DB, clock reports.Clock) *Store {
	return &Store{db: db, clock: clock, lock: reports.NewWriteLock()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.Report, error) {
	var r models.Report
	var startTime, endTime, proofImage sql.NullString
	err := row.Scan(
		&r.ID, &r.Name, &r.Lat, &r.Lng, &r.FoodType, &r.PrayerSlot,
		&startTime, &endTime, &r.EventDate, &proofImage,
		&r.AgreeCount, &r.DisagreeCount, &r.TrustScore, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return models.Report{}, err
	}
	r.StartTime = nullable(startTime)
	r.EndTime = nullable(endTime)
	r.ProofImage = nullable(proofImage)
	r.TrustLevel = reports.TrustLevel(r.TrustScore)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func (s *Store) Create(ctx context.Context, d reports.Draft) (models.Report, error) {
	r, err := reports.Prepare(d, s.clock)
	if err != nil {
		return models.Report{}, err
	}

	if err := s.lock.Acquire(ctx); err != nil {
		return models.Report{}, err
	}
	defer s.lock.Release()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO report (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, r.ID, r.Name, r.Lat, r.Lng, r.FoodType, r.PrayerSlot,
		nullString(r.StartTime), nullString(r.EndTime), r.EventDate, nullString(r.ProofImage),
		r.AgreeCount, r.DisagreeCount, r.TrustScore, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return models.Report{}, reports.Storage("insert report", err)
	}

	return r, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Report, error) {
	r, err := scanReport(s.db.QueryRowContext(ctx, `
		SELECT `+reportColumns+` FROM report WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, &reports.NotFoundError{ID: id}
	}
	if err != nil {
		return models.Report{}, reports.Storage("query report", err)
	}
	return r, nil
}

// List narrows by date and food type in SQL and applies the remaining
// predicates with reports.Apply so both backends match text the same way.
func (s *Store) List(ctx context.Context, f reports.Filter) ([]models.Report, error) {
	f = f.Normalize()

	query := `SELECT ` + reportColumns + ` FROM report WHERE event_date = $1`
	args := []any{f.EventDate}
	if f.FoodType != reports.FoodAny {
		query += ` AND food_type = $2`
		args = append(args, f.FoodType)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, reports.Storage("query reports", err)
	}
	defer rows.Close()

	var all []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, reports.Storage("scan report", err)
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, reports.Storage("query reports", err)
	}

	return reports.Apply(all, f), nil
}

func (s *Store) HasVoted(ctx context.Context, reportID, clientID string) (bool, error) {
	return s.Ledger().HasVoted(ctx, reportID, clientID)
}

// Ledger exposes the vote ledger outside a transaction.
func (s *Store) Ledger() reports.Ledger {
	return voteLedger{q: s.db}
}

func (s *Store) RecordVote(ctx context.Context, reportID, clientID, kind string) (models.Report, error) {
	v, err := reports.PrepareVote(reportID, clientID, kind, s.clock)
	if err != nil {
		return models.Report{}, err
	}

	if err := s.lock.Acquire(ctx); err != nil {
		return models.Report{}, err
	}
	defer s.lock.Release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, reports.Storage("begin vote", err)
	}
	defer tx.Rollback()

	r, err := scanReport(tx.QueryRowContext(ctx, `
		SELECT `+reportColumns+` FROM report WHERE id = $1
	`, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, &reports.NotFoundError{ID: reportID}
	}
	if err != nil {
		return models.Report{}, reports.Storage("query report", err)
	}

	accepted, err := voteLedger{q: tx}.TryRecord(ctx, v)
	if err != nil {
		return models.Report{}, err
	}
	if !accepted {
		return models.Report{}, &reports.DuplicateVoteError{ReportID: reportID, ClientID: v.ClientID}
	}

	agreeDelta, disagreeDelta := 1, 0
	if v.Kind == models.VoteDisagree {
		agreeDelta, disagreeDelta = 0, 1
	}

	// Increment in SQL so concurrent writers from other processes add up.
	_, err = tx.ExecContext(ctx, `
		UPDATE report
		SET agree_count = agree_count + $1, disagree_count = disagree_count + $2, updated_at = $3
		WHERE id = $4
	`, agreeDelta, disagreeDelta, v.CreatedAt, reportID)
	if err != nil {
		return models.Report{}, reports.Storage("update counts", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT agree_count, disagree_count FROM report WHERE id = $1
	`, reportID).Scan(&r.AgreeCount, &r.DisagreeCount)
	if err != nil {
		return models.Report{}, reports.Storage("query counts", err)
	}
	reports.SetCounts(&r, r.AgreeCount, r.DisagreeCount)
	r.UpdatedAt = v.CreatedAt

	_, err = tx.ExecContext(ctx, `
		UPDATE report SET trust_score = $1 WHERE id = $2
	`, r.TrustScore, reportID)
	if err != nil {
		return models.Report{}, reports.Storage("update trust", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Report{}, reports.Storage("commit vote", err)
	}

	slog.Debug("vote committed", "report_id", reportID, "kind", v.Kind,
		"agree", r.AgreeCount, "disagree", r.DisagreeCount)
	return r, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
