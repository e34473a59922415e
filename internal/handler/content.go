package handler

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

const (
	DefaultTone   = "professional"
	DefaultLength = "medium"
)

// Sub-types of generated content.
var contentTypes = map[string]bool{
	"email": true, "letter": true, "summary": true, "creative": true, "business": true, "general": true,
}

var knownTones = map[string]bool{
	"formal": true, "casual": true, "friendly": true, "persuasive": true, "professional": true,
}

type phrasebook struct {
	openings map[string]string
	tone     map[string]string
	medium   string
	long     string
	closings map[string]string
	sign     string
	topic    string
}

var phrasebooks = map[extract.Language]phrasebook{
	extract.English: {
		openings: map[string]string{
			"email": "Hello,", "letter": "Dear Sir or Madam,", "summary": "Summary:",
			"creative": "Once upon a time there was a story worth telling.", "business": "Executive overview:",
		},
		tone: map[string]string{
			"formal":       "I am writing to formally address the following matter: %s.",
			"casual":       "Just a quick note about %s.",
			"friendly":     "I hope you are doing well! I wanted to share a few thoughts about %s.",
			"persuasive":   "Let me make the case for %s.",
			"professional": "I would like to discuss %s.",
		},
		medium: "Here are the key points to consider.",
		long:   "Below I outline the background, the current situation and the proposed next steps.",
		closings: map[string]string{
			"formal": "Respectfully yours,", "casual": "Thanks!", "friendly": "Best wishes,",
			"persuasive": "Looking forward to your support,", "professional": "Best regards,",
		},
		sign:  "[Your name]",
		topic: "the topic",
	},
	extract.Ukrainian: {
		openings: map[string]string{
			"email": "Доброго дня!", "letter": "Шановні колеги!", "summary": "Підсумок:",
			"creative": "Ця історія варта того, щоб її розповісти.", "business": "Короткий огляд:",
		},
		tone: map[string]string{
			"formal":       "Звертаюся щодо такого питання: %s.",
			"casual":       "Коротко про %s.",
			"friendly":     "Сподіваюся, у вас усе добре! Хочу поділитися думками про %s.",
			"persuasive":   "Пропоную звернути особливу увагу на таке: %s.",
			"professional": "Хочу обговорити питання: %s.",
		},
		medium: "Нижче наведено основні моменти.",
		long:   "Далі описано передумови, поточну ситуацію та запропоновані наступні кроки.",
		closings: map[string]string{
			"formal": "З повагою,", "casual": "Дякую!", "friendly": "Всього найкращого,",
			"persuasive": "Розраховую на вашу підтримку,", "professional": "З найкращими побажаннями,",
		},
		sign:  "[Ваше ім'я]",
		topic: "ця тема",
	},
}

// compose renders deterministic template text.
func compose(lang extract.Language, kind, tone, length, topic string) string {
	pb, ok := phrasebooks[lang]
	if !ok {
		pb = phrasebooks[extract.Ukrainian]
	}
	if topic == "" {
		topic = pb.topic
	}

	var parts []string
	if o := pb.openings[kind]; o != "" {
		parts = append(parts, o)
	}
	body := fmt.Sprintf(pb.tone[tone], topic)
	switch length {
	case "medium":
		body += " " + pb.medium
	case "long":
		body += " " + pb.medium + " " + pb.long
	}
	parts = append(parts, body)
	if kind == "email" || kind == "letter" {
		parts = append(parts, pb.closings[tone]+"\n"+pb.sign)
	}
	return strings.Join(parts, "\n\n")
}

func counts(content string) (int, int) {
	return len(strings.Fields(content)), utf8.RuneCountInString(content)
}

var writingCommandWords = []string{
	"напиши", "написати", "склади", "створи", "згенеруй", "текст", "мені", "будь", "ласка",
	"write", "draft", "compose", "generate", "create", "me", "a", "an", "the", "please",
	"short", "long", "brief", "коротко", "коротку", "короткий", "коротке", "довгий", "детальний",
}

var topicMarkers = []string{"про", "щодо", "стосовно", "about", "regarding", "on"}

func topicOf(text string, dropLeading []string) string {
	if rest, ok := extract.AfterKeyword(text, topicMarkers); ok && rest != "" {
		return rest
	}
	return extract.TrimLeadingWords(text, dropLeading...)
}

func contentSettings(cls model.Classification, defaultKind string) (kind, tone, length string) {
	kind = cls.Attr(model.AttrContentType)
	if !contentTypes[kind] {
		kind = defaultKind
	}
	tone = cls.Attr(model.AttrTone)
	if !knownTones[tone] {
		tone = DefaultTone
	}
	length = cls.Attr(model.AttrLength)
	if length == "" {
		length = DefaultLength
	}
	return kind, tone, length
}

func language(cls model.Classification) extract.Language {
	if cls.Attr(model.AttrLanguage) == string(extract.English) {
		return extract.English
	}
	return extract.Ukrainian
}

// Text generates free-form content.
type Text struct{}

func (Text) Name() string { return "content" }

func (Text) Extract(_ context.Context, in Input) model.Entities {
	kind, tone, length := contentSettings(in.Classification, "general")
	return model.Entities{
		"content_type": kind,
		"tone":         tone,
		"length":       length,
		"topic":        topicOf(in.Text(), writingCommandWords),
		"language":     string(language(in.Classification)),
	}
}

func (Text) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	content := compose(extract.Language(e.String("language")), e.String("content_type"), e.String("tone"), e.String("length"), e.String("topic"))
	words, chars := counts(content)
	payload := map[string]any{
		"action":          "generated_text",
		"content_type":    e.String("content_type"),
		"tone":            e.String("tone"),
		"length":          e.String("length"),
		"topic":           e.String("topic"),
		"content":         content,
		"word_count":      words,
		"character_count": chars,
	}
	reply := fmt.Sprintf("✍️ Ось чернетка:\n\n%s\n\n(%d слів, %d символів)", content, words, chars)
	return model.Succeeded(reply, payload)
}

var emailCommandWords = append([]string{"email", "e-mail", "імейл", "емейл", "мейл", "лист", "листа", "mail", "an"}, writingCommandWords...)

var recipientMarkers = []string{"для", "to"}

// Email drafts emails.
type Email struct{}

func (Email) Name() string { return "content" }

func (Email) Extract(_ context.Context, in Input) model.Entities {
	_, tone, length := contentSettings(in.Classification, "email")
	lang := language(in.Classification)

	e := model.Entities{
		"tone":     tone,
		"length":   length,
		"language": string(lang),
	}

	topic := ""
	if rest, ok := extract.AfterKeyword(in.Text(), topicMarkers); ok {
		topic = rest
	}
	e["subject"] = extract.Capitalize(topic)
	e["subject_defaulted"] = topic == ""
	if topic == "" {
		if lang == extract.English {
			e["subject"] = "No subject"
		} else {
			e["subject"] = "Без теми"
		}
	}

	recipient := ""
	head := in.Text()
	if topic != "" {
		head = strings.TrimSuffix(strings.TrimSpace(head), topic)
	}
	if rest, ok := extract.AfterKeyword(head, recipientMarkers); ok {
		recipient = firstWord(rest)
	} else if rest := extract.TrimLeadingWords(head, emailCommandWords...); rest != "" {
		recipient = firstWord(rest)
		for _, m := range topicMarkers {
			if strings.EqualFold(recipient, m) {
				recipient = ""
			}
		}
	}
	e["recipient_defaulted"] = recipient == ""
	if recipient == "" {
		if lang == extract.English {
			recipient = "Recipient"
		} else {
			recipient = "Отримувач"
		}
	}
	e["recipient"] = extract.Capitalize(recipient)
	e["topic"] = topic
	return e
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return extract.TrimPunct(f[0])
}

func (Email) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	body := compose(extract.Language(e.String("language")), "email", e.String("tone"), e.String("length"), e.String("topic"))
	words, chars := counts(body)
	payload := map[string]any{
		"action":              "compose_email",
		"recipient":           e.String("recipient"),
		"recipient_defaulted": e.Bool("recipient_defaulted"),
		"subject":             e.String("subject"),
		"subject_defaulted":   e.Bool("subject_defaulted"),
		"body":                body,
		"tone":                e.String("tone"),
		"word_count":          words,
		"character_count":     chars,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📧 Чернетка листа для %s\nТема: %s\n\n%s\n\n(%d слів, %d символів)",
		e.String("recipient"), e.String("subject"), body, words, chars)
	if e.Bool("recipient_defaulted") {
		b.WriteString("\nОтримувача не вказано, додайте його перед надсиланням.")
	}
	return model.Succeeded(b.String(), payload)
}
