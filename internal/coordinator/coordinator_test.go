package coordinator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/handler"
	"github.com/agents052025/assistant-be-ios/internal/intent"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// genai links in opencensus, whose view worker starts in init and never exits.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newCoordinator(reg *handler.Registry, st *memory.Store) *Coordinator {
	if reg == nil {
		reg = handler.NewDefaultRegistry(handler.Deps{Timeout: time.Second, Log: zerolog.Nop()})
	}
	return New(intent.New(), reg, st,
		WithClock(func() time.Time { return now }),
		WithIDs(func() string { return "conv-1" }),
	)
}

func message(text string, ctx map[string]any) model.Message {
	return model.NewMessage(text, "u1", now, ctx)
}

type panicky struct{ name string }

func (p panicky) Name() string { return p.name }
func (panicky) Extract(context.Context, handler.Input) model.Entities {
	return model.Entities{}
}
func (panicky) Handle(context.Context, handler.Input) model.HandlerResult {
	panic("boom")
}

// broken returns a failed result without an error.
type broken struct{}

func (broken) Name() string                                          { return "broken" }
func (broken) Extract(context.Context, handler.Input) model.Entities { return nil }
func (broken) Handle(context.Context, handler.Input) model.HandlerResult {
	return model.HandlerResult{Success: false, ActionPayload: map[string]any{"x": "y"}}
}

type panickyClassifier struct{}

func (panickyClassifier) Classify(context.Context, string, map[string]any) model.Classification {
	panic("classifier down")
}

type failingStore struct{ appends int }

func (f *failingStore) Append(context.Context, model.ConversationRecord) error {
	f.appends++
	return errors.New("disk full")
}

func (*failingStore) HistoryFor(context.Context, string, int) ([]model.ConversationRecord, error) {
	return nil, errors.New("disk full")
}

func (*failingStore) Purge(context.Context, string) (int, error) { return 0, nil }

func TestHandleReminderIsRecorded(t *testing.T) {
	st := memory.New()
	c := newCoordinator(nil, st)

	resp := c.Handle(context.Background(), message("Нагадай купити молоко о 18:00", nil))

	require.True(t, resp.Success)
	assert.Equal(t, model.IntentCreateReminder, resp.Intent)
	assert.Equal(t, "planning", resp.AgentUsed)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Contains(t, resp.ReplyText, "18:00")
	assert.Equal(t, "18:00", resp.Entities.String("time"))
	assert.Equal(t, now, resp.Timestamp)

	history, err := st.HistoryFor(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	rec := history[0]
	assert.Equal(t, "conv-1", rec.ConversationID)
	assert.Equal(t, model.IntentCreateReminder, rec.Intent)
	assert.Equal(t, now, rec.StartedAt)
	if diff := cmp.Diff(resp.ActionPayload, rec.Result.ActionPayload); diff != "" {
		t.Fatalf("recorded payload mismatch (-resp +rec):\n%s", diff)
	}
}

func TestHandleConversationIDFromContext(t *testing.T) {
	st := memory.New()
	c := newCoordinator(nil, st)

	resp := c.Handle(context.Background(), message("Привіт", map[string]any{ContextConversationID: "abc"}))

	assert.Equal(t, "abc", resp.ConversationID)
	history, _ := st.HistoryFor(context.Background(), "u1", 1)
	require.Len(t, history, 1)
	assert.Equal(t, "abc", history[0].ConversationID)
}

func TestHandleEmptyInput(t *testing.T) {
	c := newCoordinator(nil, memory.New())

	resp := c.Handle(context.Background(), message("   ", nil))

	assert.True(t, resp.Success)
	assert.Equal(t, model.IntentGeneral, resp.Intent)
	assert.Zero(t, resp.Confidence)
	assert.Equal(t, "general", resp.AgentUsed)
	assert.Nil(t, resp.ActionPayload)
	assert.NotEmpty(t, resp.ReplyText)
}

func TestHandlePanicDegradesToGeneral(t *testing.T) {
	reg := handler.NewRegistry(handler.General{})
	reg.Register(panicky{name: "planning"}, model.IntentCreateReminder)
	c := newCoordinator(reg, memory.New())

	resp := c.Handle(context.Background(), message("Нагадай купити молоко о 18:00", nil))

	assert.True(t, resp.Success)
	assert.Equal(t, model.IntentCreateReminder, resp.Intent)
	assert.Equal(t, "general", resp.AgentUsed)
	assert.Empty(t, resp.Error)
	assert.NotContains(t, resp.ReplyText, "boom")
}

func TestHandleInvalidResultDegrades(t *testing.T) {
	reg := handler.NewRegistry(handler.General{})
	reg.Register(broken{}, model.IntentCreateReminder)
	c := newCoordinator(reg, memory.New())

	resp := c.Handle(context.Background(), message("Нагадай купити молоко о 18:00", nil))

	assert.True(t, resp.Success)
	assert.Equal(t, "general", resp.AgentUsed)
	assert.Nil(t, resp.ActionPayload)
}

func TestHandleFallbackFaultApologises(t *testing.T) {
	st := memory.New()
	reg := handler.NewRegistry(panicky{name: "general"})
	c := newCoordinator(reg, st)

	resp := c.Handle(context.Background(), message("Нагадай купити молоко о 18:00", nil))

	assert.False(t, resp.Success)
	assert.Equal(t, ApologyReply, resp.ReplyText)
	assert.Equal(t, model.ErrInternalFault.Error(), resp.Error)
	assert.Nil(t, resp.ActionPayload)

	history, _ := st.HistoryFor(context.Background(), "u1", 1)
	require.Len(t, history, 1)
	assert.False(t, history[0].Result.Success)
	assert.NoError(t, history[0].Result.Validate())
}

func TestHandleClassifierPanic(t *testing.T) {
	reg := handler.NewDefaultRegistry(handler.Deps{Timeout: time.Second, Log: zerolog.Nop()})
	c := New(panickyClassifier{}, reg, memory.New())

	resp := c.Handle(context.Background(), message("Нагадай купити молоко", nil))

	assert.True(t, resp.Success)
	assert.Equal(t, model.IntentGeneral, resp.Intent)
	assert.Zero(t, resp.Confidence)
}

func TestHandleStoreFailureStillResponds(t *testing.T) {
	st := &failingStore{}
	reg := handler.NewDefaultRegistry(handler.Deps{Timeout: time.Second, Log: zerolog.Nop()})
	c := New(intent.New(), reg, st)

	resp := c.Handle(context.Background(), message("Маршрут до офісу", nil))

	assert.True(t, resp.Success)
	assert.Equal(t, model.IntentNavigate, resp.Intent)
	assert.Equal(t, 1, st.appends)
}

func TestHandleCancelledRequestIsNotRecorded(t *testing.T) {
	st := memory.New()
	c := newCoordinator(nil, st)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := c.Handle(ctx, message("Створи нотатку: ідея для проєкту", nil))

	assert.NotEmpty(t, resp.ReplyText)
	history, err := st.HistoryFor(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandleMultiAgentFromContext(t *testing.T) {
	c := newCoordinator(nil, memory.New())
	msg := message("Нагадай купити молоко о 18:00", map[string]any{
		ContextAgents: []any{"create_reminder", "get_weather", "create_reminder", "bogus"},
	})

	resp := c.Handle(context.Background(), msg)

	require.True(t, resp.Success)
	require.Len(t, resp.Agents, 2)
	assert.Equal(t, model.IntentCreateReminder, resp.Agents[0].Intent)
	assert.Equal(t, model.IntentGetWeather, resp.Agents[1].Intent)
	assert.Equal(t, "planning+weather", resp.AgentUsed)
	assert.Equal(t, model.IntentCreateReminder, resp.Intent)

	parts := strings.Split(resp.ReplyText, "\n\n")
	assert.GreaterOrEqual(t, len(parts), 2)
	assert.True(t, strings.HasPrefix(resp.ReplyText, resp.Agents[0].Result.ReplyText))
	assert.True(t, strings.HasSuffix(resp.ReplyText, resp.Agents[1].Result.ReplyText))
	assert.Equal(t, resp.Agents[0].Result.ActionPayload, resp.ActionPayload)
}

func TestHandleMultiAgentKeepsSurvivors(t *testing.T) {
	reg := handler.NewRegistry(panicky{name: "general"})
	reg.Register(handler.Navigation{}, model.IntentNavigate)
	reg.Register(panicky{name: "weather"}, model.IntentGetWeather)
	c := newCoordinator(reg, memory.New())
	msg := message("Маршрут до офісу", map[string]any{
		ContextAgents: []string{"get_weather", "navigate"},
	})

	resp := c.Handle(context.Background(), msg)

	require.True(t, resp.Success)
	require.Len(t, resp.Agents, 2)
	assert.False(t, resp.Agents[0].Result.Success)
	assert.True(t, resp.Agents[1].Result.Success)
	assert.Equal(t, "navigation", resp.AgentUsed)
	assert.Equal(t, "open_maps", resp.ActionPayload["action"])
	assert.NotContains(t, resp.ReplyText, ApologyReply)
}

func TestTargets(t *testing.T) {
	c := newCoordinator(nil, memory.New())
	cls := model.Classification{
		Intent:     model.IntentCreateReminder,
		Candidates: []model.Intent{model.IntentTakeNote, model.IntentCreateReminder, model.IntentGetWeather, model.IntentGetNews},
	}

	tests := []struct {
		name string
		ctx  map[string]any
		want []model.Intent
	}{
		{"single", nil, []model.Intent{model.IntentCreateReminder}},
		{"multi flag uses candidates", map[string]any{ContextMultiAgent: true},
			[]model.Intent{model.IntentTakeNote, model.IntentCreateReminder, model.IntentGetWeather}},
		{"explicit list wins", map[string]any{ContextMultiAgent: true, ContextAgents: []string{"get_news"}},
			[]model.Intent{model.IntentGetNews}},
		{"unknown names ignored", map[string]any{ContextAgents: []string{"nope"}},
			[]model.Intent{model.IntentCreateReminder}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.targets(message("x", tt.ctx), cls)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("targets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleSingleExplicitAgent(t *testing.T) {
	c := newCoordinator(nil, memory.New())

	resp := c.Handle(context.Background(), message("Маршрут до офісу", map[string]any{ContextAgents: []string{"take_note"}}))

	assert.Equal(t, model.IntentTakeNote, resp.Intent)
	assert.Empty(t, resp.Agents)
}

func TestHandleConcurrentUsers(t *testing.T) {
	st := memory.New()
	c := New(intent.New(), handler.NewDefaultRegistry(handler.Deps{Timeout: time.Second, Log: zerolog.Nop()}), st)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Handle(context.Background(), message("Витратив 200 грн на каву", nil))
		}()
	}
	wg.Wait()

	history, err := st.HistoryFor(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 20)
	ids := map[string]bool{}
	for _, rec := range history {
		ids[rec.ConversationID] = true
	}
	assert.Len(t, ids, 20)
}
