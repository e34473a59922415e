package handler

import (
	"context"
	"fmt"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

// Contacts starts calls and text messages.
type Contacts struct{}

func (Contacts) Name() string { return "contacts" }

func (Contacts) Extract(_ context.Context, in Input) model.Entities {
	c := extract.ExtractContact(in.Text())
	return model.Entities{
		"contact_name": c.Name,
		"action":       string(c.Action),
		"message_body": c.Body,
		"found":        c.Found,
	}
}

func (Contacts) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	if !e.Bool("found") {
		return clarify("📞 Кому подзвонити чи написати? Наприклад: «Подзвони мамі».")
	}
	name := e.String("contact_name")
	action := e.String("action")
	payload := map[string]any{
		"action":       action,
		"contact_name": name,
		"message_body": nullable(e.String("message_body")),
	}

	var reply string
	if extract.ContactAction(action) == extract.ActionSMS {
		reply = fmt.Sprintf("💬 Готую повідомлення для %s", name)
		if body := e.String("message_body"); body != "" {
			reply += fmt.Sprintf(": «%s»", body)
		}
		reply += "."
	} else {
		reply = fmt.Sprintf("📞 Дзвоню: %s.", name)
	}
	return model.Succeeded(reply, payload)
}
