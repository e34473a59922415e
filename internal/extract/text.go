// Package extract pulls structured values (time, city, amount, destination,
// contact, transport) out of free-form Ukrainian or English text.
//
// Every extractor is best effort: malformed or missing input yields a zero value,
// never an error.
package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Language is a locale hint derived from the message script.
type Language string

const (
	Ukrainian Language = "uk"
	English   Language = "en"
)

var apostrophes = strings.NewReplacer("’", "'", "ʼ", "'", "‘", "'", "`", "'")

// Normalize lowercases text, unifies apostrophes and collapses whitespace.
func Normalize(text string) string {
	text = apostrophes.Replace(strings.ToLower(text))
	return strings.Join(strings.Fields(text), " ")
}

// DetectLanguage returns Ukrainian when text contains any Cyrillic letter.
// Text without letters defaults to Ukrainian.
func DetectLanguage(text string) Language {
	sawLatin := false
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return Ukrainian
		}
		if unicode.IsLetter(r) {
			sawLatin = true
		}
	}
	if sawLatin {
		return English
	}
	return Ukrainian
}

// Words splits normalized text into word tokens. Apostrophes and hyphens stay
// inside words ("здоров'я", "нью-йорк").
func Words(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-')
	})
}

// TitleCase upper-cases the first letter of every space separated word.
func TitleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if r == utf8.RuneError {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + strings.ToLower(p[size:])
	}
	return strings.Join(parts, " ")
}

// Capitalize upper-cases only the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TrimPunct strips surrounding whitespace, quotes and punctuation.
func TrimPunct(s string) string {
	return strings.Trim(s, " \t\r\n.,!?;:-–—\"'«»()")
}

// AfterKeyword returns the text following the earliest keyword occurrence.
// Case is preserved when lowercasing does not change byte offsets.
func AfterKeyword(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	src := text
	if len(lower) != len(text) {
		src = lower
	}
	best, bestEnd := -1, 0
	for _, kw := range keywords {
		idx := IndexWord(lower, strings.ToLower(kw))
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best || (idx == best && idx+len(kw) > bestEnd) {
			best, bestEnd = idx, idx+len(kw)
		}
	}
	if best < 0 {
		return "", false
	}
	return TrimPunct(src[bestEnd:]), true
}

// IndexWord finds needle in haystack as a whole word: the characters on either
// side must not be letters. Returns -1 when absent.
func IndexWord(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	offset := 0
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		offset = start + size
	}
}

// ContainsWord reports whether needle appears in haystack as a whole word.
func ContainsWord(haystack, needle string) bool {
	return IndexWord(haystack, needle) >= 0
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r)
}

// FirstNumber returns the first run of digits in text.
func FirstNumber(text string) (int, bool) {
	n, found := 0, false
	for _, r := range text {
		if r >= '0' && r <= '9' {
			found = true
			n = n*10 + int(r-'0')
			if n > 1_000_000 {
				return n, true
			}
			continue
		}
		if found {
			break
		}
	}
	return n, found
}

// dropWords removes tokens present in stop.
func dropWords(tokens []string, stop map[string]bool) []string {
	out := tokens[:0:0]
	for _, t := range tokens {
		if !stop[t] {
			out = append(out, t)
		}
	}
	return out
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// StripPhrases removes each phrase once, case-insensitively, and tidies the
// remaining whitespace and punctuation.
func StripPhrases(text string, phrases []string) string {
	out := strings.Join(strings.Fields(apostrophes.Replace(text)), " ")
	for _, p := range phrases {
		if p == "" {
			continue
		}
		lower := strings.ToLower(out)
		if len(lower) != len(out) {
			out = lower
		}
		i := strings.Index(lower, strings.ToLower(p))
		if i < 0 {
			continue
		}
		out = out[:i] + " " + out[i+len(p):]
	}
	return TrimPunct(strings.Join(strings.Fields(out), " "))
}

// TrimLeadingWords drops leading words (compared after normalization) that
// are in words.
func TrimLeadingWords(text string, words ...string) string {
	set := wordSet(words...)
	fields := strings.Fields(text)
	for len(fields) > 0 {
		w := Normalize(TrimPunct(fields[0]))
		if w != "" && !set[w] {
			break
		}
		fields = fields[1:]
	}
	return TrimPunct(strings.Join(fields, " "))
}
