// Package intent classifies messages into the closed intent taxonomy using an
// ordered keyword rule table.
package intent

import (
	"context"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab"
	"github.com/agents052025/assistant-be-ios/internal/collab/llm"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/rs/zerolog"
)

// Context keys read by the classifier.
const (
	HintIntent = "intent"
)

const (
	SourceRules   = "rules"
	SourceModel   = "llm"
	SourceContext = "context"
)

// Classifier evaluates the rule table and, when nothing matches, optionally
// asks a language model.
type Classifier struct {
	rules   []Rule
	model   llm.Understander
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) { c.rules = rules }
}

// WithModel enables the language model escape hatch.
func WithModel(m llm.Understander, timeout time.Duration) Option {
	return func(c *Classifier) {
		c.model = m
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for collaborator degrades.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Classifier) { c.log = log }
}

func New(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules(), log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Rules returns the active rule table in precedence order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify never fails. Empty text yields general with confidence 0.
func (c *Classifier) Classify(ctx context.Context, raw string, hints map[string]any) model.Classification {
	t := prepare(raw)
	attrs := attributes(t)

	if s, ok := hints[HintIntent].(string); ok {
		if forced, ok := model.ParseIntent(s); ok {
			attrs[model.AttrSource] = SourceContext
			return model.Classification{Intent: forced, Confidence: 1, Rule: SourceContext, Attributes: attrs, Candidates: []model.Intent{forced}}
		}
	}

	if strings.TrimSpace(t.norm) == "" {
		attrs[model.AttrSource] = SourceRules
		attrs[model.AttrKind] = "empty"
		return model.Classification{Intent: model.IntentGeneral, Confidence: 0, Attributes: attrs}
	}

	var (
		cls  model.Classification
		seen = map[model.Intent]bool{}
	)
	for _, r := range c.rules {
		kw, ok := r.match(t)
		if !ok {
			continue
		}
		if cls.Intent == "" {
			cls = model.Classification{Intent: r.Intent, Confidence: r.Confidence, Rule: r.Name}
			attrs[model.AttrMatched] = kw
			if r.Kind != "" {
				attrs[model.AttrKind] = r.Kind
			}
		}
		if !seen[r.Intent] && r.Intent != model.IntentGeneral {
			seen[r.Intent] = true
			cls.Candidates = append(cls.Candidates, r.Intent)
		}
	}
	if cls.Intent != "" {
		attrs[model.AttrSource] = SourceRules
		cls.Attributes = attrs
		return cls
	}

	if intent, ok := c.askModel(ctx, raw); ok {
		attrs[model.AttrSource] = SourceModel
		return model.Classification{Intent: intent, Confidence: ModelConfidence, Rule: SourceModel, Attributes: attrs, Candidates: []model.Intent{intent}}
	}

	attrs[model.AttrSource] = SourceRules
	return model.Classification{Intent: model.IntentGeneral, Confidence: FallbackConfidence, Rule: "fallback", Attributes: attrs}
}

func (c *Classifier) askModel(ctx context.Context, raw string) (model.Intent, bool) {
	if c.model == nil {
		return "", false
	}
	primary := func(ctx context.Context) (string, error) {
		return c.model.ClassifyOrExtract(ctx, raw, llm.TaskClassifyIntent)
	}
	answer, out := collab.Attempt(ctx, collab.Call{Name: "llm.classify_intent", Timeout: c.timeout, Log: c.log},
		primary, func(error) string { return "" })
	if !out.Live {
		return "", false
	}
	intent, ok := model.ParseIntent(strings.ToLower(answer))
	if !ok || intent == model.IntentGeneral {
		return "", false
	}
	return intent, true
}
