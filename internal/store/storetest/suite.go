// Package storetest is a compliance suite every store.Store must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store"
)

// Record builds a stored record for userID. Payload values are limited to
// strings and bools so JSON-backed stores round-trip them exactly.
func Record(userID string, n int, at time.Time) model.ConversationRecord {
	return model.ConversationRecord{
		ConversationID: uuid.NewString(),
		UserID:         userID,
		Message: model.Message{
			Text:       fmt.Sprintf("повідомлення %d", n),
			UserID:     userID,
			ReceivedAt: at,
			Context:    map[string]any{"source": "test", "seq": fmt.Sprint(n)},
		},
		Intent:     model.IntentTakeNote,
		Confidence: 0.9,
		Result: model.Succeeded(fmt.Sprintf("відповідь %d", n), map[string]any{
			"action":  "create_note",
			"content": fmt.Sprintf("нотатка %d", n),
			"flag":    n%2 == 0,
		}),
		StartedAt: at,
	}
}

// Run exercises the Store contract. makeStore must return an isolated or
// shared store; the suite only touches fresh user ids.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	userA := "u-" + uuid.NewString()
	userB := "u-" + uuid.NewString()

	// Unknown user
	if got, err := s.HistoryFor(ctx, userA, 10); err != nil || len(got) != 0 {
		t.Fatalf("HistoryFor empty: n=%d err=%v", len(got), err)
	}

	var want []model.ConversationRecord
	for i := 0; i < 5; i++ {
		rec := Record(userA, i, base.Add(time.Duration(i)*time.Minute))
		want = append(want, rec)
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := s.Append(ctx, Record(userB, 0, base)); err != nil {
		t.Fatalf("Append other user: %v", err)
	}

	// Full history in order
	all, err := s.HistoryFor(ctx, userA, 0)
	if err != nil {
		t.Fatalf("HistoryFor all: %v", err)
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("HistoryFor all mismatch (-want +got):\n%s", diff)
	}

	// Most recent N, oldest first
	last, err := s.HistoryFor(ctx, userA, 3)
	if err != nil || len(last) != 3 {
		t.Fatalf("HistoryFor limit: n=%d err=%v", len(last), err)
	}
	if diff := cmp.Diff(want[2:], last); diff != "" {
		t.Fatalf("HistoryFor limit mismatch (-want +got):\n%s", diff)
	}
	if more, err := s.HistoryFor(ctx, userA, 50); err != nil || len(more) != 5 {
		t.Fatalf("HistoryFor large limit: n=%d err=%v", len(more), err)
	}

	// Returned records are copies
	last[0].Result.ActionPayload["content"] = "mutated"
	again, err := s.HistoryFor(ctx, userA, 3)
	if err != nil {
		t.Fatalf("HistoryFor again: %v", err)
	}
	if again[0].Result.ActionPayload["content"] != "нотатка 2" {
		t.Fatalf("stored record was mutated through a returned copy: %v", again[0].Result.ActionPayload)
	}

	// Failed results keep no payload
	userF := "u-" + uuid.NewString()
	failed := Record(userF, 0, base)
	failed.Result = model.Failed("Вибачте, сталася помилка.", model.ErrInternalFault)
	if err := s.Append(ctx, failed); err != nil {
		t.Fatalf("Append failed result: %v", err)
	}
	if got, err := s.HistoryFor(ctx, userF, 1); err != nil || len(got) != 1 || got[0].Result.ActionPayload != nil || got[0].Result.Error == "" {
		t.Fatalf("failed result round trip: got=%+v err=%v", got, err)
	}

	// Purge
	if n, err := s.Purge(ctx, userA); err != nil || n != 5 {
		t.Fatalf("Purge: n=%d err=%v", n, err)
	}
	if got, err := s.HistoryFor(ctx, userA, 0); err != nil || len(got) != 0 {
		t.Fatalf("HistoryFor after purge: n=%d err=%v", len(got), err)
	}
	if n, err := s.Purge(ctx, userA); err != nil || n != 0 {
		t.Fatalf("second Purge: n=%d err=%v", n, err)
	}
	if got, err := s.HistoryFor(ctx, userB, 0); err != nil || len(got) != 1 {
		t.Fatalf("other user after purge: n=%d err=%v", len(got), err)
	}

	// Concurrent appends are all kept
	userC := "u-" + uuid.NewString()
	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Append(ctx, Record(userC, i, base))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Append: %v", err)
		}
	}
	if got, err := s.HistoryFor(ctx, userC, 0); err != nil || len(got) != writers {
		t.Fatalf("HistoryFor after concurrent appends: n=%d err=%v", len(got), err)
	}
}
