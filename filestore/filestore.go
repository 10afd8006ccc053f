// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/danielhkuo/biryani-lagbe/ledger"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
)

const snapshotVersion = 1

// snapshot is the on-disk layout.
type snapshot struct {
	Version int             `json:"version"`
	Reports []models.Report `json:"reports"`
	Votes   []models.Vote   `json:"votes"`
}

// state is never modified once published; writers build a new one.
type state struct {
	reports []models.Report
	index   map[string]int
	ledger  *ledger.Memory
}

// Store keeps every report in memory and persists the whole collection as
// one JSON snapshot, replaced by rename on each write.
type Store struct {
	path  string
	clock reports.Clock
	lock  reports.WriteLock

	mu  sync.RWMutex
	cur *state
}

var _ reports.Store = (*Store)(nil)

// Open loads the snapshot at path, creating an empty one if it does not
// exist yet.
func Open(path string, clock reports.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, reports.Storage("create data dir", err)
	}

	s := &Store{path: path, clock: clock, lock: reports.NewWriteLock()}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.cur = &state{index: map[string]int{}, ledger: ledger.NewMemory()}
		if err := s.write(s.cur); err != nil {
			return nil, err
		}
		slog.Info("created report snapshot", "path", path)
		return s, nil
	case err != nil:
		return nil, reports.Storage("read snapshot", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, reports.Storage("decode snapshot", err)
	}
	if snap.Version != snapshotVersion {
		return nil, reports.Storage("decode snapshot", fmt.Errorf("unsupported snapshot version %d", snap.Version))
	}
	s.cur = rebuild(snap)

	slog.Info("loaded report snapshot", "path", path,
		"reports", len(s.cur.reports), "votes", s.cur.ledger.Len())
	return s, nil
}

// rebuild indexes a decoded snapshot and derives every report's counts from
// the ledger.
func rebuild(snap snapshot) *state {
	st := &state{
		reports: make([]models.Report, 0, len(snap.Reports)),
		index:   make(map[string]int, len(snap.Reports)),
	}
	for _, r := range snap.Reports {
		if _, dup := st.index[r.ID]; dup || r.ID == "" {
			slog.Warn("skipping report with missing or duplicate id", "report_id", r.ID)
			continue
		}
		st.index[r.ID] = len(st.reports)
		st.reports = append(st.reports, r)
	}

	votes := make([]models.Vote, 0, len(snap.Votes))
	for _, v := range snap.Votes {
		if _, ok := st.index[v.ReportID]; ok {
			votes = append(votes, v)
		}
	}
	st.ledger = ledger.Load(votes)

	tally := st.ledger.Tally()
	for i := range st.reports {
		c := tally[st.reports[i].ID]
		reports.SetCounts(&st.reports[i], c[0], c[1])
	}
	return st
}

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) publish(st *state) {
	s.mu.Lock()
	s.cur = st
	s.mu.Unlock()
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

	cur := s.current()
	next := &state{
		reports: make([]models.Report, len(cur.reports), len(cur.reports)+1),
		index:   make(map[string]int, len(cur.index)+1),
		ledger:  cur.ledger,
	}
	copy(next.reports, cur.reports)
	for id, i := range cur.index {
		next.index[id] = i
	}
	next.index[r.ID] = len(next.reports)
	next.reports = append(next.reports, r)

	if err := s.write(next); err != nil {
		return models.Report{}, err
	}
	s.publish(next)
	return r, nil
}

func (s *Store) Get(_ context.Context, id string) (models.Report, error) {
	cur := s.current()
	i, ok := cur.index[id]
	if !ok {
		return models.Report{}, &reports.NotFoundError{ID: id}
	}
	return cur.reports[i], nil
}

func (s *Store) List(_ context.Context, f reports.Filter) ([]models.Report, error) {
	return reports.Apply(s.current().reports, f), nil
}

func (s *Store) HasVoted(ctx context.Context, reportID, clientID string) (bool, error) {
	return s.current().ledger.HasVoted(ctx, reportID, clientID)
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

	cur := s.current()
	i, ok := cur.index[reportID]
	if !ok {
		return models.Report{}, &reports.NotFoundError{ID: reportID}
	}

	staged := cur.ledger.Clone()
	accepted, err := staged.TryRecord(ctx, v)
	if err != nil {
		return models.Report{}, reports.Storage("record vote", err)
	}
	if !accepted {
		return models.Report{}, &reports.DuplicateVoteError{ReportID: reportID, ClientID: v.ClientID}
	}

	next := &state{
		reports: make([]models.Report, len(cur.reports)),
		index:   cur.index,
		ledger:  staged,
	}
	copy(next.reports, cur.reports)
	reports.ApplyVote(&next.reports[i], v)

	if err := s.write(next); err != nil {
		return models.Report{}, err
	}
	s.publish(next)
	return next.reports[i], nil
}

func (s *Store) Close() error {
	return nil
}

// write replaces the snapshot file with st. The new content goes to a temp
// file in the same directory which is synced and then renamed over the old
// snapshot, so readers of the file see either the old or the new version.
func (s *Store) write(st *state) error {
	data, err := json.MarshalIndent(snapshot{
		Version: snapshotVersion,
		Reports: st.reports,
		Votes:   st.ledger.Votes(),
	}, "", "  ")
	if err != nil {
		return reports.Storage("encode snapshot", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return reports.Storage("create temp snapshot", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return reports.Storage("write snapshot", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return reports.Storage("sync snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		return reports.Storage("close snapshot", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return reports.Storage("replace snapshot", err)
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir makes the rename durable where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		slog.Debug("directory sync failed", "error", err)
	}
}
