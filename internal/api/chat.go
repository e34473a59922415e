package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/api/respond"
	"github.com/agents052025/assistant-be-ios/internal/handler"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// ChatHandler serves the chat and history routes.
type ChatHandler struct {
	deps Deps
}

// ChatRequest is the body of POST /api/v1/chat/send and POST /chat.
type ChatRequest struct {
	Message string         `json:"message"`
	UserID  string         `json:"user_id"`
	Context map[string]any `json:"context,omitempty"`
}

var errMessageTooLong = errors.New("message too long")

// tooLongReply is what the client sees for an oversize message.
const tooLongReply = "Вибачте, повідомлення задовге. Скоротіть його, будь ласка."

// toMessage validates req and turns it into a model.Message.
func (req ChatRequest) toMessage(receivedAt time.Time, maxBytes int) (model.Message, error) {
	if len(req.Message) > maxBytes {
		return model.Message{}, errors.Wrapf(errMessageTooLong, "%d bytes, limit %d", len(req.Message), maxBytes)
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = defaultUserID
	}
	return model.NewMessage(req.Message, userID, receivedAt, req.Context), nil
}

func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request) (model.Message, bool) {
	// JSON escaping can grow the text; leave room for user_id and context.
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.deps.MaxMessageBytes)*6+4096)
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return model.Message{}, false
	}
	msg, err := req.toMessage(h.deps.Now(), h.deps.MaxMessageBytes)
	if err != nil {
		h.deps.Log.Warn().Err(err).Str("user_id", req.UserID).Msg("message rejected")
		respond.WriteBadRequest(w, tooLongReply)
		return model.Message{}, false
	}
	return msg, true
}

// Send handles POST /api/v1/chat/send.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.decode(w, r)
	if !ok {
		return
	}
	resp := h.deps.Assistant.Handle(r.Context(), msg)
	respond.WriteJSON(w, http.StatusOK, resp)
}

// LegacyResponse adds the field names the iOS client reads.
type LegacyResponse struct {
	model.Response
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
	// Action mirrors action_payload.action at the top level.
	Action  string `json:"action,omitempty"`
	MapsURL string `json:"maps_url,omitempty"`
}

func legacy(resp model.Response) LegacyResponse {
	out := LegacyResponse{Response: resp, Message: resp.ReplyText, AgentID: resp.AgentUsed}
	if resp.ActionPayload != nil {
		out.Action, _ = resp.ActionPayload["action"].(string)
		out.MapsURL, _ = resp.ActionPayload["maps_scheme_url"].(string)
	}
	return out
}

// SendLegacy handles POST /chat.
func (h *ChatHandler) SendLegacy(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.decode(w, r)
	if !ok {
		return
	}
	resp := h.deps.Assistant.Handle(r.Context(), msg)
	respond.WriteJSON(w, http.StatusOK, legacy(resp))
}

// HistoryMessage is one chat bubble; each record yields a user and an assistant bubble.
type HistoryMessage struct {
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	IsSenderUser   bool      `json:"is_sender_user"`
	AgentID        string    `json:"agent_id,omitempty"`
	Intent         string    `json:"intent,omitempty"`
	ConversationID string    `json:"conversation_id"`
}

func bubbles(recs []model.ConversationRecord) []HistoryMessage {
	out := make([]HistoryMessage, 0, len(recs)*2)
	for _, rec := range recs {
		out = append(out, HistoryMessage{
			Content:        rec.Message.Text,
			Timestamp:      rec.StartedAt,
			IsSenderUser:   true,
			ConversationID: rec.ConversationID,
		})
		if rec.Result.ReplyText != "" {
			out = append(out, HistoryMessage{
				Content:        rec.Result.ReplyText,
				Timestamp:      rec.StartedAt,
				AgentID:        "assistant",
				Intent:         string(rec.Intent),
				ConversationID: rec.ConversationID,
			})
		}
	}
	return out
}

// History handles GET /api/v1/chat/history/{userId}?limit=N.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}
	limit = min(limit, h.deps.HistoryMaxLimit)

	recs, err := h.deps.Store.HistoryFor(r.Context(), userID, limit)
	if err != nil {
		h.deps.Log.Error().Stack().Err(err).Str("user_id", userID).Msg("history lookup failed")
		respond.WriteInternalError(w, "history unavailable")
		return
	}
	msgs := bubbles(recs)
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"user_id":     userID,
		"messages":    msgs,
		"total_count": len(msgs),
	})
}

// Purge handles DELETE /api/v1/chat/history/{userId}.
func (h *ChatHandler) Purge(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	n, err := h.deps.Store.Purge(r.Context(), userID)
	if err != nil {
		h.deps.Log.Error().Stack().Err(err).Str("user_id", userID).Msg("purge failed")
		respond.WriteInternalError(w, "purge failed")
		return
	}
	h.deps.Log.Info().Str("user_id", userID).Int("purged", n).Msg("history purged")
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user_id": userID,
		"purged":  n,
	})
}

// Agents handles GET /api/v1/agents.
func (h *ChatHandler) Agents(w http.ResponseWriter, r *http.Request) {
	agents := []handler.Agent{}
	if h.deps.Registry != nil {
		agents = h.deps.Registry.Agents()
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"agents":    agents,
		"count":     len(agents),
		"timestamp": h.deps.Now().Format(time.RFC3339),
	})
}
