package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab"
	"github.com/agents052025/assistant-be-ios/internal/collab/news"
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/rs/zerolog"
)

const DefaultNewsQuery = "Україна"

var newsCategories = []struct {
	name  string
	words []string
}{
	{"спорт", []string{"спорт", "спорту", "футбол", "футболу", "sport", "sports", "football"}},
	{"технології", []string{"технології", "технологій", "tech", "technology", "it", "ai", "ші"}},
	{"політика", []string{"політика", "політики", "вибори", "politics", "election"}},
	{"бізнес", []string{"бізнес", "економіка", "економіки", "business", "economy", "finance"}},
}

var newsQueryMarkers = []string{"про", "щодо", "about", "on"}

// News searches headlines.
type News struct {
	Provider news.Provider
	Timeout  time.Duration
	Log      zerolog.Logger
}

func (*News) Name() string { return "news" }

func (*News) Extract(_ context.Context, in Input) model.Entities {
	norm := extract.Normalize(in.Text())
	category := "загальні"
outer:
	for _, c := range newsCategories {
		for _, w := range c.words {
			if extract.ContainsWord(norm, w) {
				category = c.name
				break outer
			}
		}
	}
	query, ok := extract.AfterKeyword(in.Text(), newsQueryMarkers)
	defaulted := !ok || query == ""
	if defaulted {
		query = DefaultNewsQuery
		if category != "загальні" {
			query = category
		}
	}
	return model.Entities{"category": category, "query": query, "query_defaulted": defaulted}
}

func (n *News) Handle(ctx context.Context, in Input) model.HandlerResult {
	e := in.Entities
	query := e.String("query")

	var primary func(context.Context) ([]news.Article, error)
	if n.Provider != nil {
		primary = func(ctx context.Context) ([]news.Article, error) {
			return n.Provider.Search(ctx, query)
		}
	}
	articles, out := collab.Attempt(ctx, collab.Call{Name: "news", Timeout: n.Timeout, Log: n.Log},
		primary, func(error) []news.Article { return nil })

	list := make([]map[string]any, 0, len(articles))
	for _, a := range articles {
		list = append(list, map[string]any{
			"title":       a.Title,
			"description": a.Description,
			"url":         a.URL,
			"source":      a.Source,
		})
	}
	payload := map[string]any{
		"action":   "show_news",
		"category": e.String("category"),
		"query":    query,
		"articles": list,
		"live":     out.Live,
	}

	var b strings.Builder
	switch {
	case !out.Live:
		fmt.Fprintf(&b, "📰 Служба новин зараз недоступна. Спробуйте пізніше знайти новини на тему «%s».", query)
	case len(list) == 0:
		fmt.Fprintf(&b, "📰 Не знайшов свіжих новин на тему «%s».", query)
	default:
		fmt.Fprintf(&b, "📰 Новини на тему «%s»:", query)
		for i, a := range articles {
			fmt.Fprintf(&b, "\n%d. %s", i+1, a.Title)
		}
	}
	return model.Succeeded(b.String(), payload)
}
