package model

import "time"

// Message is one inbound user message. Construct with NewMessage; it is never mutated.
type Message struct {
	Text       string         `json:"text"`
	UserID     string         `json:"user_id"`
	ReceivedAt time.Time      `json:"received_at"`
	Context    map[string]any `json:"context,omitempty"`
}

// NewMessage copies ctx so later changes by the caller do not leak into the message.
func NewMessage(text, userID string, receivedAt time.Time, ctx map[string]any) Message {
	return Message{
		Text:       text,
		UserID:     userID,
		ReceivedAt: receivedAt,
		Context:    CloneMap(ctx),
	}
}

// ContextString returns a string context value or "".
func (m Message) ContextString(key string) string {
	if m.Context == nil {
		return ""
	}
	s, _ := m.Context[key].(string)
	return s
}

// ContextBool returns a bool context value or false.
func (m Message) ContextBool(key string) bool {
	if m.Context == nil {
		return false
	}
	b, _ := m.Context[key].(bool)
	return b
}

// ContextStrings returns a list context value. JSON-decoded []any is accepted.
func (m Message) ContextStrings(key string) []string {
	if m.Context == nil {
		return nil
	}
	switch v := m.Context[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ContextInt returns an integer context value; JSON numbers arrive as float64.
func (m Message) ContextInt(key string) (int, bool) {
	if m.Context == nil {
		return 0, false
	}
	switch v := m.Context[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
