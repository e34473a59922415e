package handler

import (
	"context"
	"fmt"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/maps"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

// Navigation builds map links to a destination.
type Navigation struct{}

func (Navigation) Name() string { return "navigation" }

func (Navigation) Extract(_ context.Context, in Input) model.Entities {
	dest, ok := extract.ExtractDestination(in.Text())
	e := model.Entities{"transport": string(extract.ExtractTransport(in.Text()))}
	if ok {
		e["destination"] = dest
	}
	return e
}

func (Navigation) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	dest := e.String("destination")
	if dest == "" {
		return clarify("🗺 Куди прокласти маршрут? Наприклад: «Як доїхати до вокзалу пішки».")
	}
	t := extract.Transport(e.String("transport"))
	links := maps.Build(dest, t)
	payload := map[string]any{
		"action":          "open_maps",
		"destination":     dest,
		"transport_type":  string(t),
		"transport_mode":  t.Mode(),
		"maps_scheme_url": links.Native,
		"web_url":         links.Web,
	}
	reply := fmt.Sprintf("🗺 Маршрут до «%s» (%s) готовий. Відкрийте карти, щоб почати.", dest, t.Mode())
	return model.Succeeded(reply, payload)
}
