package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Mobile clients send no Origin header.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler serves GET /ws/{clientId}. Every inbound text frame gets exactly
// one Response frame back. Connections are not tracked.
type WSHandler struct {
	deps Deps
	// pongWait bounds client silence; pings go out at 9/10 of it. Zero means wsPongWait.
	pongWait time.Duration
}

// wsError is sent for frames that cannot be processed.
type wsError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]
	log := h.deps.Log.With().Str("client_id", clientID).Logger()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	pongWait := h.pongWait
	if pongWait <= 0 {
		pongWait = wsPongWait
	}
	conn.SetReadLimit(int64(h.deps.MaxMessageBytes)*6 + 4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	log.Debug().Msg("websocket connected")

	done := make(chan struct{})
	defer close(done)
	go ping(conn, pongWait*9/10, done)

	for {
		kind, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if kind != websocket.TextMessage {
			continue
		}

		req := parseFrame(frame)
		if req.UserID == "" {
			req.UserID = clientID
		}
		var out any
		msg, err := req.toMessage(h.deps.Now(), h.deps.MaxMessageBytes)
		if err != nil {
			log.Warn().Err(err).Msg("frame rejected")
			out = wsError{Error: tooLongReply}
		} else {
			out = h.deps.Assistant.Handle(r.Context(), msg)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(out); err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// ping keeps an idle client inside the read deadline until done is closed.
// WriteControl may run concurrently with the frame writes.
func ping(conn *websocket.Conn, period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

// parseFrame accepts a JSON ChatRequest or plain text.
func parseFrame(frame []byte) ChatRequest {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var req ChatRequest
		if err := json.Unmarshal(trimmed, &req); err == nil {
			return req
		}
	}
	return ChatRequest{Message: string(frame)}
}
