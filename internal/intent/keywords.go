package intent

import (
	"strings"

	"github.com/agents052025/assistant-be-ios/internal/extract"
)

// Keywords is a keyword group. Words match whole tokens, Stems match token
// prefixes (Ukrainian inflection) and Phrases match multi-word spans.
type Keywords struct {
	Words   []string `yaml:"words,omitempty"`
	Stems   []string `yaml:"stems,omitempty"`
	Phrases []string `yaml:"phrases,omitempty"`
}

// Empty reports whether k has no entries at all.
func (k Keywords) Empty() bool {
	return len(k.Words) == 0 && len(k.Stems) == 0 && len(k.Phrases) == 0
}

// Match returns the first keyword found. norm must be extract.Normalize output
// and tokens its extract.Words split.
func (k Keywords) Match(norm string, tokens []string) (string, bool) {
	for _, p := range k.Phrases {
		if extract.ContainsWord(norm, p) {
			return p, true
		}
	}
	for _, tok := range tokens {
		for _, w := range k.Words {
			if tok == w {
				return w, true
			}
		}
		for _, s := range k.Stems {
			if strings.HasPrefix(tok, s) {
				return s, true
			}
		}
	}
	return "", false
}

// text is a message prepared once for all rules.
type text struct {
	raw    string
	norm   string
	tokens []string
}

func prepare(raw string) text {
	return text{raw: raw, norm: extract.Normalize(raw), tokens: extract.Words(raw)}
}

func (t text) has(k Keywords) bool {
	_, ok := k.Match(t.norm, t.tokens)
	return ok
}
