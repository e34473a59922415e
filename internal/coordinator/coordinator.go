// Package coordinator runs one message through classification, dispatch and
// recording, and always returns a well-formed response.
package coordinator

import (
	"context"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/handler"
	"github.com/agents052025/assistant-be-ios/internal/intent"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// State is a step of the per-message state machine.
type State string

const (
	StateReceived   State = "RECEIVED"
	StateClassified State = "CLASSIFIED"
	StateDispatched State = "DISPATCHED"
	StateRecorded   State = "RECORDED"
	StateReturned   State = "RETURNED"
	StateFailed     State = "FAILED"
)

// Context keys read by the coordinator.
const (
	ContextConversationID = "conversation_id"
	ContextAgents         = "agents"
	ContextMultiAgent     = "multi_agent"
)

// MaxAgents bounds multi-agent fan-out.
const MaxAgents = 3

// ApologyReply is returned when no handler could produce a reply.
const ApologyReply = "Вибачте, сталася помилка. Спробуйте ще раз."

// Classifier is the part of intent.Classifier the coordinator needs.
type Classifier interface {
	Classify(ctx context.Context, raw string, hints map[string]any) model.Classification
}

var _ Classifier = (*intent.Classifier)(nil)

// Coordinator is safe for concurrent use.
type Coordinator struct {
	classifier   Classifier
	registry     *handler.Registry
	store        store.Store
	historyLimit int
	log          zerolog.Logger
	now          func() time.Time
	newID        func() string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithHistoryLimit sets how many past records handlers see.
func WithHistoryLimit(n int) Option { return func(c *Coordinator) { c.historyLimit = n } }

func WithLogger(log zerolog.Logger) Option { return func(c *Coordinator) { c.log = log } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(c *Coordinator) { c.now = now } }

// WithIDs replaces the conversation id generator.
func WithIDs(newID func() string) Option { return func(c *Coordinator) { c.newID = newID } }

func New(classifier Classifier, registry *handler.Registry, st store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		classifier:   classifier,
		registry:     registry,
		store:        st,
		historyLimit: 10,
		log:          zerolog.Nop(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// outcome is what one handler run produced.
type outcome struct {
	intent   model.Intent
	agent    string
	result   model.HandlerResult
	entities model.Entities
}

// Handle processes msg. It never panics and never returns an error; failures
// are folded into the response.
func (c *Coordinator) Handle(ctx context.Context, msg model.Message) (resp model.Response) {
	started := c.now()
	convID := msg.ContextString(ContextConversationID)
	if convID == "" {
		convID = c.newID()
	}
	log := c.log.With().Str("conversation_id", convID).Str("user_id", msg.UserID).Logger()
	state := StateReceived
	log.Debug().Str("state", string(state)).Msg("message received")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("state", string(StateFailed)).
				Str("failed_in", string(state)).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("coordinator fault")
			resp = c.apology(convID, started)
		}
	}()

	history, err := c.store.HistoryFor(ctx, msg.UserID, c.historyLimit)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable, continuing without context")
		history = nil
	}

	cls := c.classify(ctx, msg, log)
	state = StateClassified
	log.Debug().Str("state", string(state)).
		Str("intent", string(cls.Intent)).
		Float64("confidence", cls.Confidence).
		Str("rule", cls.Rule).
		Msg("message classified")

	in := handler.Input{Message: msg, Classification: cls, History: history, Now: started}
	targets := c.targets(msg, cls)
	var outs []outcome
	if len(targets) > 1 {
		outs = c.fanOut(ctx, in, targets, log)
	} else {
		outs = []outcome{c.dispatch(ctx, in, targets[0], log)}
	}
	state = StateDispatched
	log.Debug().Str("state", string(state)).Int("agents", len(outs)).Msg("handlers finished")

	resp = c.compose(convID, cls, outs, started)

	if ctx.Err() != nil {
		log.Warn().Err(ctx.Err()).Msg("request cancelled, record discarded")
	} else {
		rec := model.ConversationRecord{
			ConversationID: convID,
			UserID:         msg.UserID,
			Message:        msg,
			Intent:         resp.Intent,
			Confidence:     resp.Confidence,
			Result: model.HandlerResult{
				Success:       resp.Success,
				ReplyText:     resp.ReplyText,
				ActionPayload: resp.ActionPayload,
				Error:         resp.Error,
			}.Normalize(),
			StartedAt: started,
		}
		if err := c.store.Append(ctx, rec); err != nil {
			log.Error().Stack().Err(err).Msg("append conversation record failed")
		} else {
			state = StateRecorded
			log.Debug().Str("state", string(state)).Msg("record appended")
		}
	}

	state = StateReturned
	log.Debug().Str("state", string(state)).
		Bool("success", resp.Success).
		Dur("elapsed", c.now().Sub(started)).
		Msg("response returned")
	return resp
}

func (c *Coordinator) classify(ctx context.Context, msg model.Message, log zerolog.Logger) (cls model.Classification) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("classifier fault, using general")
			cls = model.Classification{
				Intent:     model.IntentGeneral,
				Confidence: 0,
				Rule:       "fallback",
				Attributes: map[string]string{model.AttrDegraded: "true"},
			}
		}
	}()
	return c.classifier.Classify(ctx, msg.Text, msg.Context)
}

// targets lists the intents to dispatch. More than one means multi-agent mode.
func (c *Coordinator) targets(msg model.Message, cls model.Classification) []model.Intent {
	var raw []model.Intent
	if names := msg.ContextStrings(ContextAgents); len(names) > 0 {
		for _, n := range names {
			if i, ok := model.ParseIntent(n); ok {
				raw = append(raw, i)
			}
		}
	} else if msg.ContextBool(ContextMultiAgent) {
		raw = cls.Candidates
	}

	seen := map[model.Intent]bool{}
	var out []model.Intent
	for _, i := range raw {
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
		if len(out) == MaxAgents {
			break
		}
	}
	if len(out) == 0 {
		return []model.Intent{cls.Intent}
	}
	return out
}

// dispatch runs one handler and degrades to the general handler on fault.
func (c *Coordinator) dispatch(ctx context.Context, in handler.Input, target model.Intent, log zerolog.Logger) outcome {
	h := c.registry.Lookup(target)
	out, err := runHandler(ctx, h, in)
	out.intent = target
	if err == nil {
		return out
	}

	log.Error().Stack().Err(err).
		Str("state", string(StateFailed)).
		Str("agent", h.Name()).
		Str("intent", string(target)).
		Msg("handler fault, degrading to general")

	fb := c.registry.Fallback()
	if fb == nil || fb.Name() == h.Name() {
		return faulted(target, h.Name())
	}
	in.Classification.Attributes = withAttr(in.Classification.Attributes, model.AttrDegraded, "true")
	deg, ferr := runHandler(ctx, fb, in)
	if ferr != nil {
		log.Error().Stack().Err(ferr).Msg("general handler fault")
		return faulted(target, fb.Name())
	}
	deg.intent = target
	return deg
}

// faulted carries only the error class; details stay in the log.
func faulted(target model.Intent, agent string) outcome {
	return outcome{
		intent: target,
		agent:  agent,
		result: model.Failed(ApologyReply, model.ErrInternalFault),
	}
}

// runHandler calls Extract and Handle, converting panics and invariant
// violations into errors.
func runHandler(ctx context.Context, h handler.Handler, in handler.Input) (out outcome, err error) {
	out.agent = h.Name()
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Wrapf(model.ErrInternalFault, "%s panicked: %v", h.Name(), rec)
		}
	}()
	in.Entities = h.Extract(ctx, in)
	res := h.Handle(ctx, in)
	if verr := res.Validate(); verr != nil {
		return out, errors.Wrapf(verr, "%s returned an invalid result", h.Name())
	}
	out.result = res
	out.entities = in.Entities
	return out, nil
}

// fanOut runs every target concurrently. Results keep the target order.
func (c *Coordinator) fanOut(ctx context.Context, in handler.Input, targets []model.Intent, log zerolog.Logger) []outcome {
	outs := make([]outcome, len(targets))
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	for i, target := range targets {
		eg.Go(func() error {
			o := c.dispatch(egCtx, in, target, log)
			mu.Lock()
			outs[i] = o
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return outs
}

func (c *Coordinator) compose(convID string, cls model.Classification, outs []outcome, started time.Time) model.Response {
	resp := model.Response{
		Intent:         cls.Intent,
		Confidence:     cls.Confidence,
		ConversationID: convID,
		Timestamp:      started,
	}

	if len(outs) == 1 {
		o := outs[0]
		resp.Intent = o.intent
		resp.Success = o.result.Success
		resp.ReplyText = o.result.ReplyText
		resp.ActionPayload = o.result.ActionPayload
		resp.Error = o.result.Error
		resp.AgentUsed = o.agent
		resp.Entities = o.entities
		return resp
	}

	resp.Intent = outs[0].intent
	var (
		replies []string
		agents  []string
	)
	for _, o := range outs {
		resp.Agents = append(resp.Agents, model.AgentResult{Intent: o.intent, Agent: o.agent, Result: o.result})
		if !o.result.Success {
			continue
		}
		resp.Success = true
		if o.result.ReplyText != "" {
			replies = append(replies, o.result.ReplyText)
		}
		if resp.ActionPayload == nil && o.result.ActionPayload != nil {
			resp.ActionPayload = o.result.ActionPayload
			resp.Entities = o.entities
		}
		if !contains(agents, o.agent) {
			agents = append(agents, o.agent)
		}
	}
	if !resp.Success {
		resp.ReplyText = ApologyReply
		resp.Error = model.ErrInternalFault.Error()
		resp.AgentUsed = outs[0].agent
		return resp
	}
	resp.ReplyText = strings.Join(replies, "\n\n")
	resp.AgentUsed = strings.Join(agents, "+")
	return resp
}

func (c *Coordinator) apology(convID string, started time.Time) model.Response {
	return model.Response{
		Success:        false,
		ReplyText:      ApologyReply,
		Intent:         model.IntentGeneral,
		ConversationID: convID,
		AgentUsed:      "general",
		Error:          model.ErrInternalFault.Error(),
		Timestamp:      started,
	}
}

func withAttr(attrs map[string]string, k, v string) map[string]string {
	out := make(map[string]string, len(attrs)+1)
	for key, val := range attrs {
		out[key] = val
	}
	out[k] = v
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
