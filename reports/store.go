// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/biryani-lagbe/models"
)

// Store is the durable collection of reports. Implementations serialize
// mutations and persist each one atomically together with its ledger entry.
type Store interface {
	Create(ctx context.Context, d Draft) (models.Report, error)
	Get(ctx context.Context, id string) (models.Report, error)
	List(ctx context.Context, f Filter) ([]models.Report, error)
	RecordVote(ctx context.Context, reportID, clientID, kind string) (models.Report, error)
	HasVoted(ctx context.Context, reportID, clientID string) (bool, error)
	Close() error
}

// Ledger enforces at most one vote per (report, client).
type Ledger interface {
	// TryRecord stores v unless the client already voted on the report.
	// It returns false, with no state change, for a repeat vote.
	TryRecord(ctx context.Context, v models.Vote) (bool, error)
	HasVoted(ctx context.Context, reportID, clientID string) (bool, error)
}

// Clock supplies creation times and the calendar day used for defaults.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// now is truncated to microseconds, the finest resolution PostgreSQL keeps.
func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

// Today is the current date in the clock's zone.
func (c Clock) Today() string {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return c.now().In(loc).Format(DateLayout)
}

// NewID returns a fresh opaque identifier (32 hex chars).
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Prepare validates d and builds the report a store should persist.
func Prepare(d Draft, clock Clock) (models.Report, error) {
	valid, err := d.Validate(clock.Today())
	if err != nil {
		return models.Report{}, err
	}

	now := clock.now()
	r := models.Report{
		ID:         NewID(),
		Name:       valid.Name,
		Location:   models.Location{Lat: *valid.Lat, Lng: *valid.Lng},
		FoodType:   valid.FoodType,
		PrayerSlot: valid.PrayerSlot,
		StartTime:  optional(valid.StartTime),
		EndTime:    optional(valid.EndTime),
		EventDate:  valid.EventDate,
		ProofImage: optional(valid.ProofImage),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	SetCounts(&r, 0, 0)
	return r, nil
}

// PrepareVote validates a vote request and builds the ledger entry.
func PrepareVote(reportID, clientID, kind string, clock Clock) (models.Vote, error) {
	id, err := NormalizeClientID(clientID)
	if err != nil {
		return models.Vote{}, err
	}
	if err := checkVoteKind(kind); err != nil {
		return models.Vote{}, err
	}
	return models.Vote{
		ID:        NewID(),
		ReportID:  reportID,
		ClientID:  id,
		Kind:      kind,
		CreatedAt: clock.now(),
	}, nil
}

// ApplyVote counts an accepted vote on r.
func ApplyVote(r *models.Report, v models.Vote) {
	agree, disagree := r.AgreeCount, r.DisagreeCount
	if v.Kind == models.VoteDisagree {
		disagree++
	} else {
		agree++
	}
	SetCounts(r, agree, disagree)
	r.UpdatedAt = v.CreatedAt
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteLock is a single-writer lock whose acquisition honours a context.
type WriteLock chan struct{}

func NewWriteLock() WriteLock {
	return make(WriteLock, 1)
}

// Acquire waits for the lock. It returns a *StorageError wrapping the
// context error if ctx ends first.
func (l WriteLock) Acquire(ctx context.Context) error {
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return &StorageError{Op: "acquire write lock", Err: ctx.Err()}
	}
}

func (l WriteLock) Release() {
	<-l
}
