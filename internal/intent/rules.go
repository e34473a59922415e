package intent

import (
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

// Rule maps a keyword group to an intent with a fixed confidence. Rules are
// evaluated top to bottom and the first match wins.
type Rule struct {
	Name       string
	Intent     model.Intent
	Confidence float64
	Keywords   Keywords
	// Kind is copied into the kind attribute on match.
	Kind string
	// Extra is tried when the keywords do not match.
	Extra func(t text) (string, bool)
}

func (r Rule) match(t text) (string, bool) {
	if kw, ok := r.Keywords.Match(t.norm, t.tokens); ok {
		return kw, true
	}
	if r.Extra != nil {
		return r.Extra(t)
	}
	return "", false
}

const (
	// FallbackConfidence is reported when no rule matched.
	FallbackConfidence = 0.3
	// ModelConfidence is reported for intents picked by the language model.
	ModelConfidence = 0.5
)

// DefaultRules returns the precedence table. The returned slice is a fresh copy.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "notes", Intent: model.IntentTakeNote, Confidence: 0.9,
			Keywords: Keywords{
				Words:   []string{"нотатка", "нотатку", "нотатки", "нотатці", "запиши", "записати", "запишіть", "занотуй", "note", "notes", "idea", "ідея", "ідею", "думка", "думку"},
				Phrases: []string{"take a note", "write down"},
			},
		},
		{
			Name: "reminders", Intent: model.IntentCreateReminder, Confidence: 0.9,
			Keywords: Keywords{
				Words:   []string{"task", "tasks", "todo", "to-do", "завдання", "remind", "reminder", "reminders"},
				Stems:   []string{"нагад"},
				Phrases: []string{"remind me"},
			},
		},
		{
			Name: "email", Intent: model.IntentComposeEmail, Confidence: 0.85,
			Keywords: Keywords{
				Words: []string{"email", "e-mail", "emails", "імейл", "емейл", "мейл", "лист", "листа", "листі", "mail"},
			},
		},
		{
			Name: "brainstorm", Intent: model.IntentBrainstorm, Confidence: 0.85,
			Keywords: Keywords{
				Words:   []string{"brainstorm", "brainstorming", "ideas", "ідеї", "ідей", "ідеями"},
				Stems:   []string{"придума"},
				Phrases: []string{"мозковий штурм", "think of"},
			},
		},
		{
			Name: "writing", Intent: model.IntentGenerateText, Confidence: 0.8,
			Keywords: Keywords{
				Words: []string{"write", "draft", "compose", "generate", "текст", "текстом", "статтю", "стаття", "есе", "вірш",
					"summary", "summarize", "резюме", "підсумок", "letter", "essay", "article", "poem", "post", "пост"},
				Phrases: []string{"напиши текст", "склади текст", "створи текст"},
			},
		},
		{
			Name: "optimize", Intent: model.IntentOptimizeSchedule, Confidence: 0.8,
			Keywords: Keywords{
				Stems:   []string{"optimi", "оптиміз"},
				Phrases: []string{"best time", "find time", "free slot", "when should", "найкращий час", "знайди час", "вільний час", "коли краще"},
			},
		},
		{
			Name: "meetings", Intent: model.IntentCreateEvent, Confidence: 0.9,
			Keywords: Keywords{
				Words: []string{"встреча", "appointment", "event", "созвон"},
				Stems: []string{"зустріч", "meeting", "мітинг"},
			},
		},
		{
			Name: "calendar", Intent: model.IntentCreateEvent, Confidence: 0.85,
			Keywords: Keywords{
				Stems:   []string{"календар", "calendar"},
				Phrases: []string{"add to calendar", "додай в календар"},
			},
		},
		{
			Name: "celebrations", Intent: model.IntentCreateEvent, Confidence: 0.75, Kind: "celebration",
			Keywords: Keywords{
				Words:   []string{"birthday", "свято", "свята", "party", "anniversary"},
				Stems:   []string{"святкуван", "вечірк", "ювіле"},
				Phrases: []string{"день народження", "дня народження", "днем народження"},
			},
		},
		{
			Name: "planning", Intent: model.IntentCreateEvent, Confidence: 0.6, Kind: "planning",
			Keywords: Keywords{
				Words: []string{"план", "плани", "plan", "planning", "schedule", "розклад"},
				Stems: []string{"планув", "організ", "organiz", "organis"},
			},
		},
		{
			Name: "weather", Intent: model.IntentGetWeather, Confidence: 0.9,
			Keywords: Keywords{
				Words: []string{"weather", "дощ", "дощу", "rain", "сонце", "sunny", "forecast", "сніг", "snow", "парасоля", "парасолю", "umbrella"},
				Stems: []string{"погод", "температур", "temperatur", "прогноз"},
			},
		},
		{
			Name: "contacts", Intent: model.IntentContactAction, Confidence: 0.85,
			Keywords: Keywords{
				Words: []string{"подзвони", "подзвонити", "зателефонуй", "зателефонувати", "набери", "call", "dial", "дзвінок",
					"sms", "смс", "повідомлення", "message", "text", "контакт", "contact", "напиши"},
			},
		},
		{
			Name: "expenses", Intent: model.IntentLogExpense, Confidence: 0.85,
			Keywords: Keywords{
				Words: []string{"expense", "expenses", "spent", "paid", "грн", "uah", "гривень", "долар", "доларів", "dollar", "dollars", "гроші", "money", "бюджет", "budget"},
				Stems: []string{"витрат", "заплатив", "заплатила", "сплатив", "сплатила"},
			},
			Extra: func(t text) (string, bool) {
				a := extract.ExtractAmount(t.raw, "")
				if a.Found() && !a.CurrencyDefaulted {
					return a.Phrase, true
				}
				return "", false
			},
		},
		{
			Name: "shopping", Intent: model.IntentShoppingList, Confidence: 0.8,
			Keywords: Keywords{
				Words: []string{"купити", "купи", "buy", "shopping", "list", "список", "списку", "groceries"},
				Stems: []string{"покупк", "покупок"},
			},
		},
		{
			Name: "navigation", Intent: model.IntentNavigate, Confidence: 0.85,
			Keywords: Keywords{
				Words:   []string{"дорога", "дорогу", "їхати", "дійти", "транспорт", "traffic", "route", "navigate", "directions"},
				Stems:   []string{"маршрут", "навіга", "доїх", "дістат", "проїх", "проїзд", "пробк"},
				Phrases: []string{"how to get", "як дістатися"},
			},
		},
		{
			Name: "news", Intent: model.IntentGetNews, Confidence: 0.8,
			Keywords: Keywords{
				Words:   []string{"news", "headlines", "події", "подій", "інформація", "events"},
				Stems:   []string{"новин"},
				Phrases: []string{"що нового", "what's new"},
			},
		},
		{
			Name: "health", Intent: model.IntentHealthLog, Confidence: 0.8,
			Keywords: Keywords{
				Words: []string{"здоров'я", "health", "фітнес", "fitness", "workout", "ліки", "ліків", "medicine", "pills", "таблетки", "таблетку",
					"вода", "води", "воду", "water", "біг", "running", "кроків", "steps", "калорії", "calories", "випив", "випила", "drink"},
				Stems: []string{"тренуван"},
			},
		},
		{
			Name: "help", Intent: model.IntentGeneral, Confidence: 0.6, Kind: "help",
			Keywords: Keywords{
				Words:   []string{"help", "допомога", "допоможи", "допомогти"},
				Phrases: []string{"що ти вмієш", "what can you do"},
			},
		},
		{
			Name: "greeting", Intent: model.IntentGeneral, Confidence: 0.6, Kind: "greeting",
			Keywords: Keywords{
				Words:   []string{"привіт", "hello", "hi", "hey", "вітаю", "хай", "привет"},
				Phrases: []string{"добрий день", "добрий ранок", "доброго ранку", "добрий вечір", "good morning", "good evening"},
			},
		},
		{
			Name: "time_context", Intent: model.IntentGeneral, Confidence: 0.4, Kind: "time_context",
			Keywords: Keywords{
				Words: []string{"завтра", "tomorrow", "сьогодні", "today", "коли", "when", "час", "time"},
			},
			Extra: func(t text) (string, bool) {
				if w := extract.ExtractWhen(t.raw); w.HasTime() {
					return w.Time, true
				}
				return "", false
			},
		},
	}
}
