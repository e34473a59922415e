package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab"
	"github.com/agents052025/assistant-be-ios/internal/collab/llm"
	"github.com/rs/zerolog"
)

// City is a gazetteer entry.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Place is the resolved location of a message.
type Place struct {
	City City
	// Requested is the unknown place name the user mentioned, if any.
	Requested string
	// Fallback is true when City is the configured default, not something the user named.
	Fallback bool
	// Source is one of gazetteer, llm, default.
	Source string
}

const (
	SourceGazetteer = "gazetteer"
	SourceLLM       = "llm"
	SourceDefault   = "default"
	SourceHistory   = "history"
)

type cityEntry struct {
	city    City
	aliases []string
}

var gazetteer = []cityEntry{
	{City{"Київ", 50.4501, 30.5234}, []string{"київ", "києва", "києві", "києвом", "kyiv", "kiev", "киев"}},
	{City{"Львів", 49.8397, 24.0297}, []string{"львів", "львова", "львові", "львовом", "lviv", "львов"}},
	{City{"Харків", 49.9935, 36.2304}, []string{"харків", "харкова", "харкові", "kharkiv", "харьков"}},
	{City{"Одеса", 46.4825, 30.7233}, []string{"одеса", "одеси", "одесі", "одесу", "odesa", "odessa", "одесса"}},
	{City{"Дніпро", 48.4647, 35.0462}, []string{"дніпро", "дніпра", "дніпрі", "dnipro"}},
	{City{"Запоріжжя", 47.8388, 35.1396}, []string{"запоріжжя", "запоріжжі", "zaporizhzhia"}},
	{City{"Вінниця", 49.2331, 28.4682}, []string{"вінниця", "вінниці", "вінницю", "vinnytsia"}},
	{City{"Полтава", 49.5883, 34.5514}, []string{"полтава", "полтави", "полтаві", "полтаву", "poltava"}},
	{City{"Чернігів", 51.4982, 31.2893}, []string{"чернігів", "чернігова", "чернігові", "chernihiv"}},
	{City{"Івано-Франківськ", 48.9226, 24.7111}, []string{"івано-франківськ", "івано-франківська", "івано-франківську", "ivano-frankivsk"}},
	{City{"Ужгород", 48.6208, 22.2879}, []string{"ужгород", "ужгорода", "ужгороді", "uzhhorod"}},
	{City{"London", 51.5074, -0.1278}, []string{"london", "лондон", "лондона", "лондоні"}},
	{City{"New York", 40.7128, -74.0060}, []string{"new york", "нью-йорк", "нью-йорка", "нью-йорку"}},
	{City{"Paris", 48.8566, 2.3522}, []string{"paris", "париж", "парижа", "парижі"}},
	{City{"Berlin", 52.5200, 13.4050}, []string{"berlin", "берлін", "берліна", "берліні"}},
	{City{"Warsaw", 52.2297, 21.0122}, []string{"warsaw", "варшава", "варшави", "варшаві"}},
	{City{"Madrid", 40.4168, -3.7038}, []string{"madrid", "мадрид", "мадрида", "мадриді"}},
	{City{"Rome", 41.9028, 12.4964}, []string{"rome", "рим", "рима", "римі"}},
	{City{"Tokyo", 35.6762, 139.6503}, []string{"tokyo", "токіо"}},
	{City{"Sydney", -33.8688, 151.2093}, []string{"sydney", "сідней", "сіднеї"}},
}

// LookupCity resolves an exact city name or inflected form.
func LookupCity(name string) (City, bool) {
	name = Normalize(TrimPunct(name))
	for _, e := range gazetteer {
		if strings.EqualFold(e.city.Name, name) {
			return e.city, true
		}
		for _, a := range e.aliases {
			if a == name {
				return e.city, true
			}
		}
	}
	return City{}, false
}

// CityOrDefault returns the gazetteer entry for name, or a coordinate-less
// City carrying just the name.
func CityOrDefault(name string) City {
	if c, ok := LookupCity(name); ok {
		return c
	}
	return City{Name: name}
}

var placeMention = regexp.MustCompile(`(?:^|\s)(?:у|в|in|for)\s+([\p{L}'-]{3,})`)

var notPlaces = wordSet(
	"понеділок", "вівторок", "середу", "четвер", "п'ятницю", "суботу", "неділю",
	"вихідні", "тижні", "місті", "дорозі", "the",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
)

// ExtractCity finds the first gazetteer city in text. Unknown or missing
// names fall back to defaultCity with Fallback set.
func ExtractCity(text, defaultCity string) Place {
	norm := Normalize(text)
	best, bestLen := -1, 0
	var found City
	for _, e := range gazetteer {
		for _, a := range e.aliases {
			idx := IndexWord(norm, a)
			if idx < 0 {
				continue
			}
			if best < 0 || idx < best || (idx == best && len(a) > bestLen) {
				best, bestLen, found = idx, len(a), e.city
			}
		}
	}
	if best >= 0 {
		return Place{City: found, Source: SourceGazetteer}
	}

	p := Place{City: CityOrDefault(defaultCity), Fallback: true, Source: SourceDefault}
	if m := placeMention.FindStringSubmatch(norm); m != nil && !notPlaces[m[1]] {
		p.Requested = TitleCase(m[1])
	}
	return p
}

// Locator resolves places with the gazetteer first and an optional language
// model for phrasing the gazetteer does not cover.
type Locator struct {
	DefaultCity string
	Model       llm.Understander
	Timeout     time.Duration
	Log         zerolog.Logger
}

// Locate never fails; the worst case is the flagged default city.
func (l *Locator) Locate(ctx context.Context, text string) Place {
	p := ExtractCity(text, l.DefaultCity)
	if !p.Fallback || l.Model == nil || strings.TrimSpace(text) == "" {
		return p
	}

	primary := func(ctx context.Context) (string, error) {
		return l.Model.ClassifyOrExtract(ctx, text, llm.TaskExtractCity)
	}
	answer, out := collab.Attempt(ctx, collab.Call{Name: "llm.extract_city", Timeout: l.Timeout, Log: l.Log},
		primary, func(error) string { return "" })
	if !out.Live || answer == "" {
		return p
	}
	if c, ok := LookupCity(answer); ok {
		return Place{City: c, Source: SourceLLM}
	}
	if p.Requested == "" {
		p.Requested = TitleCase(answer)
	}
	return p
}
