// Package api is the HTTP and websocket boundary of the assistant.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/api/recovery"
	"github.com/agents052025/assistant-be-ios/internal/handler"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Assistant answers one message. *coordinator.Coordinator satisfies it.
type Assistant interface {
	Handle(ctx context.Context, msg model.Message) model.Response
}

// Deps are the collaborators the routes need.
type Deps struct {
	Assistant Assistant
	Store     store.Store
	Registry  *handler.Registry
	// HistoryMaxLimit caps ?limit on the history route.
	HistoryMaxLimit int
	// MaxMessageBytes bounds the message text and the request body.
	MaxMessageBytes int
	Log             zerolog.Logger
	Now             func() time.Time
}

const (
	defaultHistoryLimit = 50
	defaultUserID       = "anonymous"
)

// NewRouter registers every route on a fresh mux router.
func NewRouter(d Deps) *mux.Router {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.HistoryMaxLimit <= 0 {
		d.HistoryMaxLimit = 100
	}
	if d.MaxMessageBytes <= 0 {
		d.MaxMessageBytes = 8192
	}

	router := mux.NewRouter()
	router.Use(recovery.New(d.Log))

	chat := &ChatHandler{deps: d}
	health := NewHealthHandler()
	ws := &WSHandler{deps: d}

	router.HandleFunc("/api/health", health.CheckHealth).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/chat/send", chat.Send).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/chat/history/{userId}", chat.History).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/chat/history/{userId}", chat.Purge).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/agents", chat.Agents).Methods(http.MethodGet)

	// iOS client
	router.HandleFunc("/chat", chat.SendLegacy).Methods(http.MethodPost)
	router.Handle("/ws/{clientId}", ws).Methods(http.MethodGet)

	return router
}
