package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Day is a relative day marker.
type Day string

const (
	DayToday         Day = "today"
	DayTomorrow      Day = "tomorrow"
	DayAfterTomorrow Day = "day_after_tomorrow"
)

// Label returns the Ukrainian word for d.
func (d Day) Label() string {
	switch d {
	case DayToday:
		return "сьогодні"
	case DayTomorrow:
		return "завтра"
	case DayAfterTomorrow:
		return "післязавтра"
	}
	return ""
}

// Offset is the number of days d is ahead of today.
func (d Day) Offset() int {
	switch d {
	case DayTomorrow:
		return 1
	case DayAfterTomorrow:
		return 2
	}
	return 0
}

// When holds the time expressions found in a message.
type When struct {
	// Time is an absolute clock time as HH:MM, empty when absent.
	Time string
	// Day is the relative day marker, empty when the message has none.
	Day Day
	// Offset is a relative offset ("через 20 хвилин"). Zero when absent or
	// when an absolute time is present.
	Offset time.Duration
	// Phrases are the time-like spans of the normalized text, including an
	// offset that lost to an absolute time and clock values out of range.
	Phrases []string
}

// HasTime reports whether an absolute time or relative offset was found.
func (w When) HasTime() bool { return w.Time != "" || w.Offset > 0 }

// Resolve turns w into a concrete instant. def is used when w has no day marker.
func (w When) Resolve(now time.Time, def Day) (time.Time, bool) {
	if w.Time == "" && w.Offset > 0 {
		return now.Add(w.Offset).Truncate(time.Minute), true
	}
	if w.Time == "" {
		return time.Time{}, false
	}
	h, m, ok := parseClock(w.Time)
	if !ok {
		return time.Time{}, false
	}
	day := w.Day
	if day == "" {
		day = def
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d+day.Offset(), h, m, 0, 0, now.Location()), true
}

// Strip removes the matched time phrases from text, keeping its case.
func (w When) Strip(text string) string {
	return StripPhrases(text, w.Phrases)
}

type span struct {
	start, end int
}

func (s span) contains(i int) bool { return i >= s.start && i < s.end }

type clockPattern struct {
	re *regexp.Regexp
	// hour and minute submatch group numbers; minute 0 means none.
	hour, minute, meridiem int
	// notAfter lists words that turn the match into a duration or offset.
	notAfter []string
}

var clockPatterns = []clockPattern{
	{re: regexp.MustCompile(`(?:^|[\s,(])(?:о|об|at)\s+(\d{1,2})(?::(\d{2}))?(?:\s*(am|pm))?(?:\s*год\S*)?`), hour: 1, minute: 2, meridiem: 3},
	{re: regexp.MustCompile(`(?:^|\D)(\d{1,2}):(\d{2})(?:\s*(am|pm))?`), hour: 1, minute: 2, meridiem: 3},
	{re: regexp.MustCompile(`(?:^|\D)(\d{1,2})\s*(am|pm)`), hour: 1, meridiem: 2},
	{re: regexp.MustCompile(`(?:^|\D)(\d{1,2})\s*год\S*`), hour: 1, notAfter: []string{"на", "for", "через", "протягом"}},
}

type offsetPattern struct {
	re *regexp.Regexp
	// unit applied to submatch 1; fixed is used when the pattern has no number.
	unit  time.Duration
	fixed time.Duration
}

var offsetPatterns = []offsetPattern{
	{re: regexp.MustCompile(`через\s+(\d+)\s*хв\S*`), unit: time.Minute},
	{re: regexp.MustCompile(`через\s+(\d+)\s*год\S*`), unit: time.Hour},
	{re: regexp.MustCompile(`через\s+півгодини`), fixed: 30 * time.Minute},
	{re: regexp.MustCompile(`через\s+годину`), fixed: time.Hour},
	{re: regexp.MustCompile(`in\s+(\d+)\s*(?:min|minutes?)\b`), unit: time.Minute},
	{re: regexp.MustCompile(`in\s+(\d+)\s*(?:h|hours?)\b`), unit: time.Hour},
	{re: regexp.MustCompile(`in\s+half\s+an\s+hour`), fixed: 30 * time.Minute},
	{re: regexp.MustCompile(`in\s+an?\s+hour`), fixed: time.Hour},
}

var dayMarkers = []struct {
	phrase string
	day    Day
}{
	{"day after tomorrow", DayAfterTomorrow},
	{"післязавтра", DayAfterTomorrow},
	{"завтра", DayTomorrow},
	{"tomorrow", DayTomorrow},
	{"сьогодні", DayToday},
	{"today", DayToday},
	{"tonight", DayToday},
}

// ExtractWhen finds the first absolute time, relative offset and day marker.
func ExtractWhen(text string) When {
	norm := Normalize(text)
	var w When

	var offsetSpan *span
	bestOffset := -1
	for _, p := range offsetPatterns {
		loc := p.re.FindStringSubmatchIndex(norm)
		if loc == nil || (bestOffset >= 0 && loc[0] >= bestOffset) {
			continue
		}
		d := p.fixed
		if p.unit > 0 {
			n, err := strconv.Atoi(norm[loc[2]:loc[3]])
			if err != nil || n <= 0 {
				continue
			}
			d = time.Duration(n) * p.unit
		}
		bestOffset = loc[0]
		offsetSpan = &span{loc[0], loc[1]}
		w.Offset = d
	}

	bestClock := -1
	var clockSpan span
	var rejected []span
	for _, p := range clockPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(norm, -1) {
			hourStart := loc[2*p.hour]
			if offsetSpan != nil && offsetSpan.contains(hourStart) {
				continue
			}
			if precededBy(norm[:hourStart], p.notAfter) {
				continue
			}
			if bestClock >= 0 && hourStart >= bestClock {
				break
			}
			matched := span{loc[0], loc[1]}
			h, m, ok := clockFromMatch(norm, loc, p)
			if !ok {
				rejected = append(rejected, matched)
				continue
			}
			bestClock = hourStart
			clockSpan = matched
			w.Time = fmt.Sprintf("%02d:%02d", h, m)
			break
		}
	}

	phrases := rejected
	if w.Time != "" {
		phrases = append(phrases, clockSpan)
		w.Offset = 0
	}
	if offsetSpan != nil {
		phrases = append(phrases, *offsetSpan)
	}

	bestDay := -1
	var daySpan span
	for _, dm := range dayMarkers {
		idx := IndexWord(norm, dm.phrase)
		if idx < 0 || (bestDay >= 0 && idx >= bestDay) {
			continue
		}
		bestDay = idx
		daySpan = span{idx, idx + len(dm.phrase)}
		w.Day = dm.day
	}
	if bestDay >= 0 {
		phrases = append(phrases, daySpan)
	}

	for _, s := range mergeSpans(phrases) {
		if p := strings.TrimSpace(norm[s.start:s.end]); p != "" {
			w.Phrases = append(w.Phrases, TrimPunct(p))
		}
	}
	return w
}

// mergeSpans sorts spans and joins the overlapping ones.
func mergeSpans(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	var out []span
	for _, s := range spans {
		if n := len(out); n > 0 && s.start < out[n-1].end {
			out[n-1].end = max(out[n-1].end, s.end)
			continue
		}
		out = append(out, s)
	}
	return out
}

func clockFromMatch(norm string, loc []int, p clockPattern) (int, int, bool) {
	h, err := strconv.Atoi(norm[loc[2*p.hour]:loc[2*p.hour+1]])
	if err != nil {
		return 0, 0, false
	}
	m := 0
	if p.minute > 0 && loc[2*p.minute] >= 0 {
		m, err = strconv.Atoi(norm[loc[2*p.minute]:loc[2*p.minute+1]])
		if err != nil {
			return 0, 0, false
		}
	}
	if p.meridiem > 0 && loc[2*p.meridiem] >= 0 {
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		switch norm[loc[2*p.meridiem]:loc[2*p.meridiem+1]] {
		case "pm":
			if h != 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
	}
	if h > 23 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func precededBy(before string, words []string) bool {
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	for _, w := range words {
		if last == w {
			return true
		}
	}
	return false
}

func parseClock(s string) (int, int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// ExtractDuration finds a meeting length such as "на 30 хвилин" or "90 minutes".
func ExtractDuration(text string) (time.Duration, bool) {
	norm := Normalize(text)
	for _, p := range durationPatterns {
		m := p.re.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return time.Duration(n) * p.unit, true
	}
	return 0, false
}

var durationPatterns = []offsetPattern{
	{re: regexp.MustCompile(`(?:на|for)\s+(\d+)\s*(?:хв|min)`), unit: time.Minute},
	{re: regexp.MustCompile(`(?:на|for)\s+(\d+)\s*(?:год|h)`), unit: time.Hour},
	{re: regexp.MustCompile(`(\d+)\s*(?:хвилин|minutes)`), unit: time.Minute},
}
