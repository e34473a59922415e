package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/agents052025/assistant-be-ios/internal/store/memory"
)

type brokenStore struct{ *memory.Store }

func (*brokenStore) HealthPing(context.Context) error { return errors.New("down") }

type readOnlyProbe struct{ err error }

func (r readOnlyProbe) Append(context.Context, model.ConversationRecord) error { return r.err }
func (r readOnlyProbe) HistoryFor(context.Context, string, int) ([]model.ConversationRecord, error) {
	return nil, r.err
}
func (r readOnlyProbe) Purge(context.Context, string) (int, error) { return 0, r.err }

func runOnce(t *testing.T, s store.Store) bool {
	t.Helper()
	hc := store.NewStoreHealthChecker(s, zerolog.Nop(), time.Second)
	assert.False(t, hc.IsHealthy())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hc.Start(ctx, time.Hour)
		close(done)
	}()
	// The first probe runs synchronously at start.
	assert.Eventually(t, func() bool { return hc.IsHealthy() }, 200*time.Millisecond, 5*time.Millisecond)
	healthy := hc.IsHealthy()
	cancel()
	<-done
	return healthy
}

func TestStoreHealthChecker(t *testing.T) {
	assert.True(t, runOnce(t, memory.New()))
	assert.True(t, runOnce(t, readOnlyProbe{}))
}

func TestStoreHealthCheckerReportsFailure(t *testing.T) {
	for _, s := range []store.Store{&brokenStore{Store: memory.New()}, readOnlyProbe{err: errors.New("boom")}} {
		hc := store.NewStoreHealthChecker(s, zerolog.Nop(), time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			hc.Start(ctx, time.Hour)
			close(done)
		}()
		time.Sleep(20 * time.Millisecond)
		assert.False(t, hc.IsHealthy())
		cancel()
		<-done
	}
}
