package factory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agents052025/assistant-be-ios/internal/collab/llm"
	"github.com/agents052025/assistant-be-ios/internal/collab/news"
	"github.com/agents052025/assistant-be-ios/internal/collab/weather"
	"github.com/agents052025/assistant-be-ios/internal/config"
)

// NewWeather returns the live weather provider, or nil without an API key.
// A nil provider makes the weather handler answer with seasonal estimates.
func NewWeather(cfg *config.Config, log zerolog.Logger) weather.Provider {
	if cfg.WeatherAPIKey == "" {
		log.Info().Msg("weather API key not set; using seasonal estimates")
		return nil
	}
	return weather.NewOpenWeather(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.CollaboratorTimeout())
}

// NewNews returns the news provider, or nil without an API key.
func NewNews(cfg *config.Config, log zerolog.Logger) news.Provider {
	if cfg.NewsAPIKey == "" {
		log.Info().Msg("news API key not set; news requests will be answered offline")
		return nil
	}
	return news.NewNewsAPI(cfg.NewsBaseURL, cfg.NewsAPIKey, cfg.CollaboratorTimeout())
}

// NewUnderstander returns the configured language model, or nil when none is
// configured or the credentials are missing. Startup never fails on it.
func NewUnderstander(ctx context.Context, cfg *config.Config, log zerolog.Logger) llm.Understander {
	switch cfg.LLMProvider {
	case config.LLMOpenAI:
		c := llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.CollaboratorTimeout())
		if c == nil {
			log.Warn().Msg("LLM_PROVIDER=openai but OPENAI_API_KEY is empty; language model disabled")
			return nil
		}
		return c
	case config.LLMGemini:
		c, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("gemini client unavailable; language model disabled")
			return nil
		}
		if c == nil {
			log.Warn().Msg("LLM_PROVIDER=gemini but GEMINI_API_KEY is empty; language model disabled")
			return nil
		}
		return c
	default:
		return nil
	}
}
