package intent

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RuleOverride replaces parts of a named rule. Nil fields are left alone.
type RuleOverride struct {
	Words      []string `yaml:"words"`
	Stems      []string `yaml:"stems"`
	Phrases    []string `yaml:"phrases"`
	Confidence *float64 `yaml:"confidence"`
}

// RulesFile is the YAML document accepted by LoadRules.
//
//	rules:
//	  weather:
//	    words: [weather, forecast]
//	    confidence: 0.95
type RulesFile struct {
	Rules map[string]RuleOverride `yaml:"rules"`
}

// LoadRules reads a YAML override file and applies it to DefaultRules.
// Precedence never changes; only keyword sets and confidences do.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read intent rules")
	}
	return ParseRules(data)
}

// ParseRules applies a YAML override document to DefaultRules.
func ParseRules(data []byte) ([]Rule, error) {
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse intent rules")
	}
	return ApplyOverrides(DefaultRules(), f)
}

// ApplyOverrides returns a copy of rules with f applied.
func ApplyOverrides(rules []Rule, f RulesFile) ([]Rule, error) {
	out := append([]Rule(nil), rules...)
	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.Name] = i
	}
	for name, o := range f.Rules {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("unknown intent rule %q", name)
		}
		r := out[i]
		if o.Words != nil {
			r.Keywords.Words = o.Words
		}
		if o.Stems != nil {
			r.Keywords.Stems = o.Stems
		}
		if o.Phrases != nil {
			r.Keywords.Phrases = o.Phrases
		}
		if o.Confidence != nil {
			c := *o.Confidence
			if c <= 0 || c > 1 {
				return nil, fmt.Errorf("rule %q: confidence %v out of range (0,1]", name, c)
			}
			r.Confidence = c
		}
		if r.Keywords.Empty() && r.Extra == nil {
			return nil, fmt.Errorf("rule %q: no keywords left", name)
		}
		out[i] = r
	}
	return out, nil
}
