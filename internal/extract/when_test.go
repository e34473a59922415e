package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWhen(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		time   string
		day    Day
		offset time.Duration
	}{
		{"absolute with о", "Нагадай купити молоко о 18:00", "18:00", "", 0},
		{"bare clock", "зустріч 9:30", "09:30", "", 0},
		{"hour only", "о 7 ранку завтра", "07:00", DayTomorrow, 0},
		{"hour with год", "дзвінок 15 год", "15:00", "", 0},
		{"english pm", "remind me at 6 pm", "18:00", "", 0},
		{"english clock", "meeting tomorrow at 10:15", "10:15", DayTomorrow, 0},
		{"first match wins", "о 10:00 або о 12:00", "10:00", "", 0},
		{"absolute beats relative", "через 20 хвилин або о 18:00", "18:00", "", 0},
		{"relative minutes", "нагадай через 20 хвилин", "", "", 20 * time.Minute},
		{"relative hours", "через 2 години подзвонити", "", "", 2 * time.Hour},
		{"relative english", "in 45 minutes", "", "", 45 * time.Minute},
		{"one hour", "через годину", "", "", time.Hour},
		{"day after tomorrow", "післязавтра о 9", "09:00", DayAfterTomorrow, 0},
		{"today marker only", "що сьогодні", "", DayToday, 0},
		{"invalid hour", "о 25:00", "", "", 0},
		{"amount is not time", "150.50 грн", "", "", 0},
		{"duration is not time", "зустріч на 2 години", "", "", 0},
		{"nothing", "купити хліб", "", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ExtractWhen(tc.text)
			assert.Equal(t, tc.time, w.Time)
			assert.Equal(t, tc.day, w.Day)
			assert.Equal(t, tc.offset, w.Offset)
		})
	}
}

func TestAbsoluteTimeLeavesDateUnset(t *testing.T) {
	for _, text := range []string{"о 18:00", "в 08:05 кава", "at 11:45", "call mom 7 pm"} {
		w := ExtractWhen(text)
		assert.NotEmpty(t, w.Time, text)
		assert.Empty(t, w.Day, text)
	}
}

func TestWhenResolve(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	at, ok := ExtractWhen("о 18:00").Resolve(now, DayToday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC), at)

	at, ok = ExtractWhen("завтра о 9").Resolve(now, DayToday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), at)

	at, ok = ExtractWhen("через 30 хвилин").Resolve(now, DayToday)
	require.True(t, ok)
	assert.Equal(t, now.Add(30*time.Minute), at)

	_, ok = ExtractWhen("завтра").Resolve(now, DayToday)
	assert.False(t, ok)
}

func TestWhenStrip(t *testing.T) {
	text := "Нагадай купити молоко о 18:00 завтра"
	w := ExtractWhen(text)
	assert.Equal(t, "Нагадай купити молоко", w.Strip(text))
}

func TestWhenPhrasesCoverEveryTimeSpan(t *testing.T) {
	cases := []struct {
		text    string
		phrases []string
		title   string
	}{
		{"через 30 хвилин о 18 подзвонити", []string{"через 30 хвилин", "о 18"}, "подзвонити"},
		{"Зустріч завтра о 25:00", []string{"завтра", "о 25:00"}, "Зустріч"},
	}
	for _, tc := range cases {
		w := ExtractWhen(tc.text)
		assert.Equal(t, tc.phrases, w.Phrases, tc.text)
		assert.Equal(t, tc.title, w.Strip(tc.text), tc.text)
	}
}

func TestExtractDuration(t *testing.T) {
	d, ok := ExtractDuration("знайди час на 30 хвилин")
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute, d)

	d, ok = ExtractDuration("meeting for 2 hours")
	require.True(t, ok)
	assert.Equal(t, 2*time.Hour, d)

	_, ok = ExtractDuration("оптимізуй розклад")
	assert.False(t, ok)
}
