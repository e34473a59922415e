package intent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRulesOverride(t *testing.T) {
	rules, err := ParseRules([]byte(`
rules:
  weather:
    words: [мжичка]
    stems: []
    confidence: 0.95
`))
	require.NoError(t, err)

	c := New(WithRules(rules))
	got := c.Classify(context.Background(), "знову мжичка", nil)
	assert.Equal(t, model.IntentGetWeather, got.Intent)
	assert.Equal(t, 0.95, got.Confidence)

	// Phrases are untouched, stems were cleared.
	got = c.Classify(context.Background(), "погода", nil)
	assert.NotEqual(t, model.IntentGetWeather, got.Intent)
}

func TestParseRulesErrors(t *testing.T) {
	_, err := ParseRules([]byte("rules:\n  teleport:\n    words: [beam]\n"))
	assert.ErrorContains(t, err, "unknown intent rule")

	_, err = ParseRules([]byte("rules:\n  news:\n    confidence: 1.5\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = ParseRules([]byte("rules: [oops"))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  news:\n    words: [вісті]\n"), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	got := New(WithRules(rules)).Classify(context.Background(), "останні вісті", nil)
	assert.Equal(t, model.IntentGetNews, got.Intent)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
