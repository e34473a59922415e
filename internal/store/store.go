// Package store persists conversation records. Implementations live under
// internal/store/<driver>/.
package store

import (
	"context"

	"github.com/agents052025/assistant-be-ios/internal/model"
)

// Store is the only shared mutable resource of the service. Append is atomic
// per record: readers never observe a partially written record.
type Store interface {
	Append(ctx context.Context, rec model.ConversationRecord) error
	// HistoryFor returns the user's most recent limit records, oldest first.
	// limit <= 0 returns everything.
	HistoryFor(ctx context.Context, userID string, limit int) ([]model.ConversationRecord, error)
	// Purge deletes every record of the user and reports how many were removed.
	Purge(ctx context.Context, userID string) (int, error)
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}
