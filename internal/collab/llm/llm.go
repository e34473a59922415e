// Package llm is the optional language-understanding collaborator. It is only
// consulted after local rules fail to produce an answer.
package llm

import (
	"context"
	"strings"
)

// Task selects what the model is asked to produce.
type Task string

const (
	// TaskClassifyIntent asks for one intent name from the taxonomy.
	TaskClassifyIntent Task = "classify_intent"
	// TaskExtractCity asks for the city the message refers to.
	TaskExtractCity Task = "extract_city"
)

// Understander answers a single task about text with a short plain string.
type Understander interface {
	ClassifyOrExtract(ctx context.Context, text string, task Task) (string, error)
}

var instructions = map[Task]string{
	TaskClassifyIntent: "Classify the user's message into exactly one of: " +
		"create_event, create_reminder, optimize_schedule, generate_text, compose_email, brainstorm, " +
		"get_weather, navigate, log_expense, shopping_list, take_note, contact_action, health_log, get_news, general. " +
		"Reply with the intent name only.",
	TaskExtractCity: "Which city does the user's message refer to? Reply with the city name in its " +
		"nominative form only, or NONE if no city is mentioned.",
}

// Instruction returns the system prompt for task.
func Instruction(task Task) string {
	return instructions[task]
}

// CleanAnswer trims quotes, punctuation and a trailing explanation from a model reply.
func CleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, " \t\"'`.,!*«»")
	if strings.EqualFold(s, "none") {
		return ""
	}
	return s
}
