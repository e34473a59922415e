package model

import (
	"fmt"
	"time"
)

// Entities is the intent-specific bundle of values pulled out of a message.
type Entities map[string]any

// String returns a string entity or "".
func (e Entities) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// Bool returns a bool entity or false.
func (e Entities) Bool(key string) bool {
	b, _ := e[key].(bool)
	return b
}

// Int returns an int entity or 0.
func (e Entities) Int(key string) int {
	n, _ := e[key].(int)
	return n
}

// Strings returns a []string entity or nil.
func (e Entities) Strings(key string) []string {
	s, _ := e[key].([]string)
	return s
}

// HandlerResult is what a handler produces for one message.
type HandlerResult struct {
	Success       bool           `json:"success"`
	ReplyText     string         `json:"reply_text"`
	ActionPayload map[string]any `json:"action_payload,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Succeeded builds a successful result. payload may be nil for replies with no action.
func Succeeded(reply string, payload map[string]any) HandlerResult {
	return HandlerResult{Success: true, ReplyText: reply, ActionPayload: payload}
}

// Failed builds a failed result. The payload is always dropped.
func Failed(reply string, err error) HandlerResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return HandlerResult{Success: false, ReplyText: reply, Error: msg}
}

// Validate checks that a failed result carries an error and no payload.
func (r HandlerResult) Validate() error {
	if r.Success {
		return nil
	}
	if r.Error == "" {
		return fmt.Errorf("%w: failed result without error", ErrValidation)
	}
	if r.ActionPayload != nil {
		return fmt.Errorf("%w: failed result with action payload", ErrValidation)
	}
	return nil
}

// Normalize forces the failure invariant onto r.
func (r HandlerResult) Normalize() HandlerResult {
	if r.Success {
		return r
	}
	r.ActionPayload = nil
	if r.Error == "" {
		r.Error = ErrInternalFault.Error()
	}
	return r
}

// Clone returns a deep copy of r.
func (r HandlerResult) Clone() HandlerResult {
	r.ActionPayload = CloneMap(r.ActionPayload)
	return r
}

// ConversationRecord is the stored trace of one processed message.
type ConversationRecord struct {
	ConversationID string        `json:"conversation_id"`
	UserID         string        `json:"user_id"`
	Message        Message       `json:"message"`
	Intent         Intent        `json:"intent"`
	Confidence     float64       `json:"confidence"`
	Result         HandlerResult `json:"result"`
	StartedAt      time.Time     `json:"started_at"`
}

// Clone returns a deep copy of rec.
func (rec ConversationRecord) Clone() ConversationRecord {
	rec.Message.Context = CloneMap(rec.Message.Context)
	rec.Result = rec.Result.Clone()
	return rec
}

// AgentResult is one specialist's contribution in a multi-agent reply.
type AgentResult struct {
	Intent Intent        `json:"intent"`
	Agent  string        `json:"agent"`
	Result HandlerResult `json:"result"`
}

// Response is returned to the caller for every message.
type Response struct {
	Success        bool           `json:"success"`
	ReplyText      string         `json:"reply_text"`
	ActionPayload  map[string]any `json:"action_payload,omitempty"`
	Intent         Intent         `json:"intent"`
	Confidence     float64        `json:"confidence"`
	ConversationID string         `json:"conversation_id"`
	AgentUsed      string         `json:"agent_used"`
	Agents         []AgentResult  `json:"agents,omitempty"`
	Entities       Entities       `json:"entities,omitempty"`
	Error          string         `json:"error,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}
