// Package handler holds one specialist per intent. Each turns a classified
// message into reply text plus an action payload for the client.
package handler

import (
	"context"
	"sort"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab/news"
	"github.com/agents052025/assistant-be-ios/internal/collab/weather"
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/rs/zerolog"
)

// Input is everything a handler sees for one message.
type Input struct {
	Message        model.Message
	Classification model.Classification
	Entities       model.Entities
	// History is the user's recent records, oldest first.
	History []model.ConversationRecord
	Now     time.Time
}

// Text is the raw message text.
func (in Input) Text() string { return in.Message.Text }

// Handler fulfils one or more intents. Handlers never call each other and
// must not panic; the coordinator still recovers if they do.
type Handler interface {
	// Name is the agent identifier reported to clients.
	Name() string
	// Extract pulls the entities this handler needs. It runs before Handle.
	Extract(ctx context.Context, in Input) model.Entities
	Handle(ctx context.Context, in Input) model.HandlerResult
}

// Registry maps intents to handlers.
type Registry struct {
	handlers map[model.Intent]Handler
	fallback Handler
}

// NewRegistry returns a registry whose lookups fall back to fallback.
func NewRegistry(fallback Handler) *Registry {
	return &Registry{handlers: make(map[model.Intent]Handler), fallback: fallback}
}

// Register binds h to every intent given.
func (r *Registry) Register(h Handler, intents ...model.Intent) {
	for _, i := range intents {
		r.handlers[i] = h
	}
}

// Lookup returns the handler for intent, or the fallback handler.
func (r *Registry) Lookup(intent model.Intent) Handler {
	if h, ok := r.handlers[intent]; ok {
		return h
	}
	return r.fallback
}

// Fallback is the general handler.
func (r *Registry) Fallback() Handler { return r.fallback }

// Agent describes a registered specialist.
type Agent struct {
	Name    string         `json:"name"`
	Intents []model.Intent `json:"intents"`
}

// Agents lists registered specialists sorted by name.
func (r *Registry) Agents() []Agent {
	byName := map[string][]model.Intent{}
	for _, i := range model.AllIntents {
		h := r.Lookup(i)
		byName[h.Name()] = append(byName[h.Name()], i)
	}
	out := make([]Agent, 0, len(byName))
	for name, intents := range byName {
		out = append(out, Agent{Name: name, Intents: intents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Deps are the collaborators handlers need.
type Deps struct {
	Weather         weather.Provider
	News            news.Provider
	Locator         *extract.Locator
	DefaultCity     string
	DefaultCurrency string
	// Timeout bounds each collaborator call.
	Timeout time.Duration
	Log     zerolog.Logger
}

// NewDefaultRegistry wires every specialist.
func NewDefaultRegistry(d Deps) *Registry {
	if d.DefaultCity == "" {
		d.DefaultCity = "Київ"
	}
	if d.DefaultCurrency == "" {
		d.DefaultCurrency = "UAH"
	}
	if d.Locator == nil {
		d.Locator = &extract.Locator{DefaultCity: d.DefaultCity, Timeout: d.Timeout, Log: d.Log}
	}

	r := NewRegistry(General{})
	r.Register(Event{}, model.IntentCreateEvent)
	r.Register(Reminder{}, model.IntentCreateReminder)
	r.Register(Optimize{}, model.IntentOptimizeSchedule)
	r.Register(Text{}, model.IntentGenerateText)
	r.Register(Email{}, model.IntentComposeEmail)
	r.Register(Brainstorm{}, model.IntentBrainstorm)
	r.Register(&Weather{Provider: d.Weather, Locator: d.Locator, Timeout: d.Timeout, Log: d.Log}, model.IntentGetWeather)
	r.Register(Navigation{}, model.IntentNavigate)
	r.Register(Expense{DefaultCurrency: d.DefaultCurrency}, model.IntentLogExpense)
	r.Register(Shopping{}, model.IntentShoppingList)
	r.Register(Notes{}, model.IntentTakeNote)
	r.Register(Contacts{}, model.IntentContactAction)
	r.Register(Health{}, model.IntentHealthLog)
	r.Register(&News{Provider: d.News, Timeout: d.Timeout, Log: d.Log}, model.IntentGetNews)
	return r
}

// clarify is the reply for a handler with nothing to act on. It is a
// successful result without a payload.
func clarify(reply string) model.HandlerResult {
	return model.Succeeded(reply, nil)
}

const timestampLayout = "2006-01-02T15:04:05"

func isoMinute(t time.Time) string { return t.Format("2006-01-02T15:04") }
