package memory

import (
	"context"
	"testing"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/agents052025/assistant-be-ios/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestAppendCopiesInput(t *testing.T) {
	s := New()
	rec := storetest.Record("u1", 1, time.Now())
	require.NoError(t, s.Append(context.Background(), rec))

	rec.Message.Context["source"] = "changed"
	rec.Result.ActionPayload["content"] = "changed"

	got, err := s.HistoryFor(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, "test", got[0].Message.Context["source"])
	assert.Equal(t, "нотатка 1", got[0].Result.ActionPayload["content"])
}

func TestAppendHonorsCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Append(ctx, storetest.Record("u1", 1, time.Now())))
	got, _ := s.HistoryFor(context.Background(), "u1", 0)
	assert.Empty(t, got)
}
