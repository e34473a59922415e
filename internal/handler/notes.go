package handler

import (
	"context"
	"fmt"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

var noteKeywords = []string{
	"запиши нотатку", "створи нотатку", "зроби нотатку", "нотатка", "нотатку", "запиши", "записати", "занотуй",
	"take a note", "write down", "note",
}

var noteCategories = []struct {
	name  string
	words []string
}{
	{"робота", []string{"робота", "роботи", "роботу", "проєкт", "проект", "клієнт", "офіс", "нарада", "work", "project", "client"}},
	{"ідеї", []string{"ідея", "ідею", "ідеї", "думка", "думку", "idea"}},
	{"особисте", []string{"сім'я", "родина", "мама", "тато", "друг", "подруга", "дім", "personal", "family"}},
}

// Notes saves free-form notes.
type Notes struct{}

func (Notes) Name() string { return "notes" }

func (Notes) Extract(_ context.Context, in Input) model.Entities {
	content, ok := extract.AfterKeyword(in.Text(), noteKeywords)
	if !ok {
		content = extract.TrimPunct(in.Text())
	}
	content = extract.TrimLeadingWords(content, "що", "про", "that", "to", "мені", "будь", "ласка", "please")

	category := "загальна"
	norm := extract.Normalize(in.Text())
	for _, c := range noteCategories {
		for _, w := range c.words {
			if extract.ContainsWord(norm, w) {
				category = c.name
				break
			}
		}
		if category != "загальна" {
			break
		}
	}
	return model.Entities{"content": content, "category": category}
}

func (Notes) Handle(_ context.Context, in Input) model.HandlerResult {
	content := in.Entities.String("content")
	if content == "" {
		return clarify("📝 Що записати? Наприклад: «Запиши нотатку: купити квитки на концерт».")
	}
	category := in.Entities.String("category")
	return model.Succeeded(
		fmt.Sprintf("📝 Нотатку збережено (%s): %s", category, content),
		map[string]any{
			"action":     "create_note",
			"content":    content,
			"category":   category,
			"created_at": in.Now.Format(timestampLayout),
		})
}
