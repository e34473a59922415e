// Package memory is the in-process Store used by default and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/agents052025/assistant-be-ios/internal/model"
)

// Store keeps records per user behind a single lock. Records are deep-copied
// on the way in and out.
type Store struct {
	mu      sync.RWMutex
	records map[string][]model.ConversationRecord
}

func New() *Store {
	return &Store{records: make(map[string][]model.ConversationRecord)}
}

func (s *Store) Append(ctx context.Context, rec model.ConversationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec = rec.Clone()
	s.mu.Lock()
	s.records[rec.UserID] = append(s.records[rec.UserID], rec)
	s.mu.Unlock()
	return nil
}

func (s *Store) HistoryFor(_ context.Context, userID string, limit int) ([]model.ConversationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[userID]
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	out := make([]model.ConversationRecord, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *Store) Purge(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.records[userID])
	delete(s.records, userID)
	return n, nil
}

// HealthPing always succeeds.
func (s *Store) HealthPing(context.Context) error { return nil }
