package factory

import (
	"github.com/rs/zerolog"

	"github.com/agents052025/assistant-be-ios/internal/collab/llm"
	"github.com/agents052025/assistant-be-ios/internal/config"
	"github.com/agents052025/assistant-be-ios/internal/intent"
)

// NewClassifier builds the intent classifier, applying cfg.IntentRulesPath
// when set. A broken rules file is a startup error.
func NewClassifier(cfg *config.Config, model llm.Understander, log zerolog.Logger) (*intent.Classifier, error) {
	opts := []intent.Option{intent.WithLogger(log)}
	if cfg.IntentRulesPath != "" {
		rules, err := intent.LoadRules(cfg.IntentRulesPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.IntentRulesPath).Msg("intent rule overrides loaded")
		opts = append(opts, intent.WithRules(rules))
	}
	if model != nil {
		opts = append(opts, intent.WithModel(model, cfg.CollaboratorTimeout()))
	}
	return intent.New(opts...), nil
}
