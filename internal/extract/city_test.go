package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab/llm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestExtractCity(t *testing.T) {
	cases := []struct {
		text     string
		city     string
		fallback bool
	}{
		{"погода у Львові", "Львів", false},
		{"weather in Kharkiv", "Харків", false},
		{"а в Одесі дощ?", "Одеса", false},
		{"прогноз для Нью-Йорку", "New York", false},
		{"Київ чи Львів", "Київ", false},
		{"яка погода", "Київ", true},
		{"", "Київ", true},
	}
	for _, tc := range cases {
		p := ExtractCity(tc.text, "Київ")
		assert.Equal(t, tc.city, p.City.Name, tc.text)
		assert.Equal(t, tc.fallback, p.Fallback, tc.text)
	}
}

func TestExtractCityUnknownIsFlagged(t *testing.T) {
	p := ExtractCity("погода у Мюнхені", "Київ")
	assert.True(t, p.Fallback)
	assert.Equal(t, "Київ", p.City.Name)
	assert.Equal(t, "Мюнхені", p.Requested)
	assert.Equal(t, SourceDefault, p.Source)

	p = ExtractCity("погода в понеділок", "Київ")
	assert.Empty(t, p.Requested)
}

type fakeModel struct {
	answer string
	err    error
	calls  int
}

func (f *fakeModel) ClassifyOrExtract(_ context.Context, _ string, task llm.Task) (string, error) {
	f.calls++
	if task != llm.TaskExtractCity {
		return "", errors.New("unexpected task")
	}
	return f.answer, f.err
}

func TestLocatorUsesModelOnlyOnFallback(t *testing.T) {
	m := &fakeModel{answer: "Львів"}
	l := &Locator{DefaultCity: "Київ", Model: m, Timeout: time.Second, Log: zerolog.Nop()}

	p := l.Locate(context.Background(), "погода у Харкові")
	assert.Equal(t, "Харків", p.City.Name)
	assert.Zero(t, m.calls)

	p = l.Locate(context.Background(), "погода там де Левова стоїть")
	assert.Equal(t, "Львів", p.City.Name)
	assert.Equal(t, SourceLLM, p.Source)
	assert.False(t, p.Fallback)
	assert.Equal(t, 1, m.calls)
}

func TestLocatorModelFailureKeepsDefault(t *testing.T) {
	l := &Locator{DefaultCity: "Київ", Model: &fakeModel{err: errors.New("down")}, Timeout: time.Second, Log: zerolog.Nop()}
	p := l.Locate(context.Background(), "яка погода")
	assert.Equal(t, "Київ", p.City.Name)
	assert.True(t, p.Fallback)
}
