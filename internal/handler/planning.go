package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

const (
	DefaultEventTitle    = "New Event"
	DefaultReminderTitle = "New Reminder"
	// DefaultEventMinutes is the assumed length of events and optimized slots.
	DefaultEventMinutes = 60
	// DefaultSlotHour is proposed when the user gave no preferred time.
	DefaultSlotHour = 14

	conflictCheckUnavailable = "unavailable"
	noConflictsNote          = "Конфлікти з календарем не перевірялися: календар не підключено."
)

var eventCommandWords = []string{
	"додай", "додати", "створи", "створити", "заплануй", "запланувати", "в", "у", "до", "календар", "календаря",
	"add", "create", "schedule", "to", "the", "calendar", "my", "a", "an",
	// reminder phrasing reaches the event handler in multi-agent requests
	"нагадай", "нагадати", "нагадування", "мені", "про", "remind", "reminder", "me", "about",
}

// whenEntities stores the time expressions shared by planning handlers.
func whenEntities(e model.Entities, w extract.When) {
	e["time"] = w.Time
	e["date"] = string(w.Day)
	if w.Offset > 0 {
		e["offset_minutes"] = int(w.Offset / time.Minute)
	}
	e["phrases"] = w.Phrases
}

func whenFrom(e model.Entities) extract.When {
	return extract.When{
		Time:    e.String("time"),
		Day:     extract.Day(e.String("date")),
		Offset:  time.Duration(e.Int("offset_minutes")) * time.Minute,
		Phrases: e.Strings("phrases"),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Event creates calendar entries.
type Event struct{}

func (Event) Name() string { return "planning" }

func (Event) Extract(_ context.Context, in Input) model.Entities {
	w := extract.ExtractWhen(in.Text())
	e := model.Entities{}
	whenEntities(e, w)

	kind := in.Classification.Attr(model.AttrKind)
	title := extract.TrimLeadingWords(w.Strip(in.Text()), eventCommandWords...)
	if kind == "celebration" && title == "" {
		title = "День народження"
	}
	e["title_defaulted"] = title == ""
	if title == "" {
		title = DefaultEventTitle
	}
	e["title"] = extract.Capitalize(title)
	e["kind"] = kind
	if p := extract.ExtractCity(in.Text(), ""); !p.Fallback {
		e["location"] = p.City.Name
	}
	return e
}

func (Event) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	w := whenFrom(e)
	title := e.String("title")

	if e.String("kind") == "planning" && !w.HasTime() && w.Day == "" {
		return clarify(fmt.Sprintf("📋 Плануємо «%s». Щоб додати це в календар, вкажіть дату й час, "+
			"наприклад «завтра о 10:00». Можу також нагадати про підготовку.", title))
	}

	payload := map[string]any{
		"action":           "create_calendar_event",
		"title":            title,
		"title_defaulted":  e.Bool("title_defaulted"),
		"date":             nullable(string(w.Day)),
		"time":             nullable(w.Time),
		"duration_minutes": DefaultEventMinutes,
		"location":         nullable(e.String("location")),
		"conflicts_found":  false,
		"conflict_check":   conflictCheckUnavailable,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Подію «%s» підготовлено", title)
	if start, ok := w.Resolve(in.Now, extract.DayToday); ok {
		switch {
		case w.Day != "":
		case w.Offset > 0:
			payload["date"] = relativeDay(start, in.Now)
		default:
			payload["date"] = string(extract.DayToday)
			payload["date_defaulted"] = true
		}
		payload["time"] = start.Format("15:04")
		payload["start"] = isoMinute(start)
		payload["end"] = isoMinute(start.Add(DefaultEventMinutes * time.Minute))
		fmt.Fprintf(&b, " на %s о %s.", dayLabel(start, in.Now), start.Format("15:04"))
		if payload["date_defaulted"] == true {
			b.WriteString(" Дату не вказано, тому ставлю на сьогодні.")
		}
	} else if w.Day != "" {
		fmt.Fprintf(&b, " на %s. Час не вказано, уточніть його, будь ласка.", w.Day.Label())
	} else {
		b.WriteString(". Дату й час не вказано, уточніть їх, будь ласка.")
	}
	if e.Bool("title_defaulted") {
		b.WriteString(" Назву не вказано.")
	}
	b.WriteString("\n" + noConflictsNote)
	return model.Succeeded(b.String(), payload)
}

// dayLabel names the calendar day of t relative to now.
func dayLabel(t, now time.Time) string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch int(t.Sub(today).Hours()) / 24 {
	case 0:
		return "сьогодні"
	case 1:
		return "завтра"
	case 2:
		return "післязавтра"
	}
	return t.Format("02.01.2006")
}

var reminderKeywords = []string{
	"нагадай мені", "нагадай", "нагадати", "нагадування", "remind me to", "remind me", "reminder", "remind", "todo", "to-do", "task", "завдання",
}

// Reminder creates reminders.
type Reminder struct{}

func (Reminder) Name() string { return "planning" }

func (Reminder) Extract(_ context.Context, in Input) model.Entities {
	w := extract.ExtractWhen(in.Text())
	e := model.Entities{}
	whenEntities(e, w)

	rest, ok := extract.AfterKeyword(in.Text(), reminderKeywords)
	if !ok {
		rest = in.Text()
	}
	title := extract.TrimLeadingWords(w.Strip(rest), "мені", "про", "що", "to", "me", "about", "that", "please", "будь", "ласка")
	e["title_defaulted"] = title == ""
	if title == "" {
		title = DefaultReminderTitle
	}
	e["title"] = title

	switch in.Classification.Attr(model.AttrUrgency) {
	case "high":
		e["priority"] = "high"
	case "low":
		e["priority"] = "low"
	default:
		e["priority"] = "normal"
	}
	return e
}

func (Reminder) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	w := whenFrom(e)
	title := e.String("title")

	if e.Bool("title_defaulted") && !w.HasTime() {
		return clarify("⏰ Про що і коли нагадати? Наприклад: «Нагадай купити молоко о 18:00».")
	}

	payload := map[string]any{
		"action":          "create_reminder",
		"title":           title,
		"title_defaulted": e.Bool("title_defaulted"),
		"date":            nullable(string(w.Day)),
		"time":            nil,
		"priority":        e.String("priority"),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏰ Нагадування «%s»", title)
	due, ok := w.Resolve(in.Now, extract.DayToday)
	switch {
	case ok && w.Time != "":
		payload["time"] = w.Time
		payload["due"] = isoMinute(due)
		if w.Day == "" {
			payload["date"] = string(extract.DayToday)
			payload["date_defaulted"] = true
			fmt.Fprintf(&b, " на сьогодні о %s. Дату не вказано, тому сьогодні.", w.Time)
		} else {
			fmt.Fprintf(&b, " на %s о %s.", w.Day.Label(), w.Time)
		}
	case ok:
		payload["time"] = due.Format("15:04")
		payload["due"] = isoMinute(due)
		payload["date"] = relativeDay(due, in.Now)
		payload["offset_minutes"] = e.Int("offset_minutes")
		fmt.Fprintf(&b, " через %d хв, о %s.", e.Int("offset_minutes"), due.Format("15:04"))
	case w.Day != "":
		fmt.Fprintf(&b, " на %s. Час не вказано, нагадаю без конкретного часу.", w.Day.Label())
	default:
		b.WriteString(" без дати й часу. Вкажіть час, щоб я нагадав вчасно.")
	}
	if payload["priority"] == "high" {
		b.WriteString(" Пріоритет: високий.")
	}
	return model.Succeeded(b.String(), payload)
}

func relativeDay(t, now time.Time) string {
	switch dayLabel(t, now) {
	case "сьогодні":
		return string(extract.DayToday)
	case "завтра":
		return string(extract.DayTomorrow)
	case "післязавтра":
		return string(extract.DayAfterTomorrow)
	}
	return t.Format("2006-01-02")
}

// Optimize proposes time slots.
type Optimize struct{}

func (Optimize) Name() string { return "planning" }

func (Optimize) Extract(_ context.Context, in Input) model.Entities {
	w := extract.ExtractWhen(in.Text())
	e := model.Entities{}
	whenEntities(e, w)
	d, ok := extract.ExtractDuration(in.Text())
	if !ok {
		d = DefaultEventMinutes * time.Minute
	}
	e["duration_minutes"] = int(d / time.Minute)
	e["duration_defaulted"] = !ok
	return e
}

func (Optimize) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	w := whenFrom(e)
	dur := e.Int("duration_minutes")

	var (
		start     time.Time
		preferred bool
	)
	if w.Time != "" {
		def := extract.DayToday
		if t, ok := w.Resolve(in.Now, extract.DayToday); ok && w.Day == "" && !t.After(in.Now) {
			def = extract.DayTomorrow
		}
		start, preferred = w.Resolve(in.Now, def)
	}
	if !preferred {
		y, m, d := in.Now.Date()
		start = time.Date(y, m, d+1, DefaultSlotHour, 0, 0, 0, in.Now.Location())
	}
	alternatives := []string{
		isoMinute(start.Add(time.Hour)),
		isoMinute(start.Add(2 * time.Hour)),
	}

	payload := map[string]any{
		"action":             "suggest_time_slots",
		"suggested_time":     isoMinute(start),
		"duration_minutes":   dur,
		"duration_defaulted": e.Bool("duration_defaulted"),
		"preferred_time":     preferred,
		"alternative_slots":  alternatives,
		"conflicts_found":    false,
		"conflict_check":     conflictCheckUnavailable,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Пропоную %s о %s на %d хв.", dayLabel(start, in.Now), start.Format("15:04"), dur)
	fmt.Fprintf(&b, " Альтернативи: %s, %s.", start.Add(time.Hour).Format("15:04"), start.Add(2*time.Hour).Format("15:04"))
	if !preferred {
		b.WriteString(" Бажаний час не вказано, тому обрано завтрашній день.")
	}
	if e.Bool("duration_defaulted") {
		fmt.Fprintf(&b, " Тривалість не вказано, беру %d хв.", DefaultEventMinutes)
	}
	b.WriteString("\n" + noConflictsNote)
	return model.Succeeded(b.String(), payload)
}
