// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"sync"

	"github.com/danielhkuo/biryani-lagbe/models"
)

type key struct {
	reportID string
	clientID string
}

// Memory is an in-process vote ledger. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	votes map[key]models.Vote
	order []key
}

func NewMemory() *Memory {
	return &Memory{votes: make(map[key]models.Vote)}
}

// Load builds a ledger from persisted votes. Later duplicates of a
// (report, client) pair are dropped.
func Load(votes []models.Vote) *Memory {
	m := NewMemory()
	for _, v := range votes {
		m.record(v)
	}
	return m
}

func (m *Memory) TryRecord(_ context.Context, v models.Vote) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record(v), nil
}

func (m *Memory) record(v models.Vote) bool {
	k := key{v.ReportID, v.ClientID}
	if _, exists := m.votes[k]; exists {
		return false
	}
	m.votes[k] = v
	m.order = append(m.order, k)
	return true
}

func (m *Memory) HasVoted(_ context.Context, reportID, clientID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.votes[key{reportID, clientID}]
	return ok, nil
}

// Counts returns the agree and disagree totals for a report.
func (m *Memory) Counts(reportID string) (agree, disagree int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.votes {
		if k.reportID != reportID {
			continue
		}
		if v.Kind == models.VoteDisagree {
			disagree++
		} else {
			agree++
		}
	}
	return agree, disagree
}

// Tally returns agree/disagree totals for every report with votes.
func (m *Memory) Tally() map[string][2]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][2]int)
	for k, v := range m.votes {
		c := out[k.reportID]
		if v.Kind == models.VoteDisagree {
			c[1]++
		} else {
			c[0]++
		}
		out[k.reportID] = c
	}
	return out
}

// Votes lists the recorded votes in insertion order.
func (m *Memory) Votes() []models.Vote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Vote, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.votes[k])
	}
	return out
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Clone returns an independent copy, used to stage a write before it is
// persisted.
func (m *Memory) Clone() *Memory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := &Memory{
		votes: make(map[key]models.Vote, len(m.votes)+1),
		order: make([]key, len(m.order), len(m.order)+1),
	}
	for k, v := range m.votes {
		c.votes[k] = v
	}
	copy(c.order, m.order)
	return c
}
