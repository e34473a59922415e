package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

const (
	DefaultWaterML = 250
	DailyWaterGoal = 2000
)

var (
	workoutWords    = []string{"тренування", "тренувався", "тренувалася", "біг", "бігав", "бігала", "пробіжка", "спортзал", "зал", "йога", "workout", "run", "ran", "gym", "yoga", "exercise"}
	medicationWords = []string{"ліки", "таблетку", "таблетки", "пігулку", "вітаміни", "medication", "pill", "pills", "vitamins"}
	hydrationWords  = []string{"води", "вода", "воду", "склянку", "склянки", "water", "glass"}
)

var workoutActivities = []struct {
	name  string
	words []string
}{
	{"біг", []string{"біг", "бігав", "бігала", "пробіжка", "run", "ran", "running"}},
	{"спортзал", []string{"спортзал", "зал", "gym"}},
	{"йога", []string{"йога", "yoga"}},
}

func workoutActivity(norm string) string {
	for _, a := range workoutActivities {
		for _, w := range a.words {
			if extract.ContainsWord(norm, w) {
				return a.name
			}
		}
	}
	return "загальне"
}

// medicationName is the word right after the medication keyword.
func medicationName(text string) string {
	tokens := extract.Words(text)
	for i, t := range tokens {
		for _, w := range medicationWords {
			if t == w && i+1 < len(tokens) {
				next := tokens[i+1]
				if next == "о" || next == "об" || next == "at" || next == "в" || next == "у" {
					return ""
				}
				return next
			}
		}
	}
	return ""
}

func healthKind(text string) string {
	norm := extract.Normalize(text)
	for _, set := range []struct {
		kind  string
		words []string
	}{{"workout", workoutWords}, {"medication", medicationWords}, {"hydration", hydrationWords}} {
		for _, w := range set.words {
			if extract.ContainsWord(norm, w) {
				return set.kind
			}
		}
	}
	return "general"
}

// Health logs workouts, medication and water intake.
type Health struct{}

func (Health) Name() string { return "health" }

func (Health) Extract(_ context.Context, in Input) model.Entities {
	kind := healthKind(in.Text())
	e := model.Entities{"kind": kind}
	switch kind {
	case "workout":
		d, ok := extract.ExtractDuration(in.Text())
		if !ok {
			d = 30 * time.Minute
		}
		e["duration_minutes"] = int(d / time.Minute)
		e["duration_defaulted"] = !ok
		e["activity"] = workoutActivity(extract.Normalize(in.Text()))
	case "hydration":
		ml, ok := extract.FirstNumber(in.Text())
		if ok && ml < 10 {
			// A count of glasses.
			ml *= DefaultWaterML
		}
		if !ok {
			ml = DefaultWaterML
		}
		e["amount_ml"] = ml
		e["amount_defaulted"] = !ok
	case "medication":
		e["time"] = extract.ExtractWhen(in.Text()).Time
		e["medication"] = medicationName(in.Text())
	}
	return e
}

func (Health) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	payload := map[string]any{
		"action":    "log_health",
		"kind":      e.String("kind"),
		"logged_at": in.Now.Format(timestampLayout),
	}
	switch e.String("kind") {
	case "workout":
		payload["activity"] = e.String("activity")
		payload["duration_minutes"] = e.Int("duration_minutes")
		payload["duration_defaulted"] = e.Bool("duration_defaulted")
		return model.Succeeded(fmt.Sprintf("💪 Тренування (%s) записано: %d хв.", e.String("activity"), e.Int("duration_minutes")), payload)
	case "hydration":
		ml := e.Int("amount_ml")
		payload["amount_ml"] = ml
		payload["amount_defaulted"] = e.Bool("amount_defaulted")
		payload["daily_goal_ml"] = DailyWaterGoal
		reply := fmt.Sprintf("💧 Записав %d мл води. Денна норма: %d мл.", ml, DailyWaterGoal)
		if e.Bool("amount_defaulted") {
			reply += fmt.Sprintf(" Кількість не вказано, рахую склянку (%d мл).", DefaultWaterML)
		}
		return model.Succeeded(reply, payload)
	case "medication":
		payload["time"] = nullable(e.String("time"))
		payload["medication"] = nullable(e.String("medication"))
		reply := "💊 Прийом ліків записано."
		if t := e.String("time"); t != "" {
			reply = fmt.Sprintf("💊 Прийом ліків о %s записано.", t)
		}
		return model.Succeeded(reply, payload)
	}
	return clarify("🩺 Що записати: тренування, воду чи ліки? Наприклад: «Випив 2 склянки води».")
}
