package intent

import (
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

type choice struct {
	value string
	kw    Keywords
}

var tones = []choice{
	{"formal", Keywords{Words: []string{"formal", "formally"}, Stems: []string{"офіційн", "формальн"}}},
	{"casual", Keywords{Words: []string{"casual", "informal"}, Stems: []string{"неформальн", "невимушен"}}},
	{"friendly", Keywords{Words: []string{"friendly", "warm"}, Stems: []string{"дружн"}}},
	{"persuasive", Keywords{Words: []string{"persuasive", "convincing"}, Stems: []string{"переконлив"}}},
	{"professional", Keywords{Words: []string{"professional", "business-like"}, Stems: []string{"професійн", "діловий", "ділов"}}},
}

var urgency = []choice{
	{"low", Keywords{Phrases: []string{"не терміново", "не поспішаючи", "no rush", "whenever"}}},
	{"high", Keywords{Words: []string{"терміново", "негайно", "urgent", "urgently", "asap", "важливо", "important"}, Stems: []string{"терміно"}}},
}

var focusAreas = []choice{
	{"business", Keywords{Words: []string{"business", "marketing", "sales", "startup", "бізнес", "бізнесу", "маркетинг", "стартап"}, Stems: []string{"продаж", "маркетинг", "стартап", "бізнес"}}},
	{"creative", Keywords{Words: []string{"creative", "art", "design", "дизайн"}, Stems: []string{"творч", "мистецт", "креатив"}}},
	{"technical", Keywords{Words: []string{"technical", "tech", "code", "software", "app", "код", "додаток", "ai"}, Stems: []string{"технічн", "технолог", "програм"}}},
}

var contentTypes = []choice{
	{"email", Keywords{Words: []string{"email", "e-mail", "імейл", "емейл", "мейл", "mail"}}},
	{"letter", Keywords{Words: []string{"letter", "лист", "листа"}}},
	{"summary", Keywords{Words: []string{"summary", "summarize", "резюме", "підсумок"}, Stems: []string{"підсум"}}},
	{"creative", Keywords{Words: []string{"poem", "story", "вірш", "казку", "історію", "оповідання"}}},
	{"business", Keywords{Words: []string{"proposal", "report", "звіт", "пропозицію", "пропозиція"}, Stems: []string{"комерційн"}}},
}

var lengths = []choice{
	{"short", Keywords{Words: []string{"short", "brief", "стисло"}, Stems: []string{"коротк"}}},
	{"long", Keywords{Words: []string{"long", "detailed"}, Stems: []string{"довг", "детальн"}}},
}

var nextWeek = Keywords{Phrases: []string{"next week", "наступного тижня", "наступний тиждень", "на наступному тижні"}}

func pick(t text, choices []choice) string {
	for _, c := range choices {
		if t.has(c.kw) {
			return c.value
		}
	}
	return ""
}

// attributes computes the cross-cutting hints for a message. Only detected
// values are set.
func attributes(t text) map[string]string {
	attrs := map[string]string{
		model.AttrLanguage: string(extract.DetectLanguage(t.raw)),
	}
	set := func(key, val string) {
		if val != "" {
			attrs[key] = val
		}
	}
	set(model.AttrTone, pick(t, tones))
	set(model.AttrUrgency, pick(t, urgency))
	set(model.AttrFocusArea, pick(t, focusAreas))
	set(model.AttrContentType, pick(t, contentTypes))
	set(model.AttrLength, pick(t, lengths))

	if t.has(nextWeek) {
		attrs[model.AttrRelativeDate] = "next_week"
	} else if d := extract.ExtractWhen(t.raw).Day; d != "" {
		attrs[model.AttrRelativeDate] = string(d)
	}
	return attrs
}
