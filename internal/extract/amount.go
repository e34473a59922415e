package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount is a monetary value found in text.
type Amount struct {
	// Value is the decimal as written, with a dot separator. Empty when absent.
	Value string
	// Minor is Value in minor units (kopecks, cents).
	Minor    int64
	Currency string
	// CurrencyDefaulted is true when no currency marker was next to the number.
	CurrencyDefaulted bool
	Phrase            string
}

// Found reports whether a number was captured.
func (a Amount) Found() bool { return a.Value != "" }

const number = `(\d+(?:[.,]\d{1,2})?)`

var (
	suffixAmount = regexp.MustCompile(number + `\s*(грн|гривень|гривні|гривня|uah|₴|usd|\$|доларів|долари|долар|dollars|dollar|eur|€|євро|euro|pln|zł|злотих)`)
	prefixAmount = regexp.MustCompile(`([$€₴])\s*` + number)
	bareAmount   = regexp.MustCompile(`(?:^|[^\d:.,])` + number + `(?:[^\d:]|$)`)
)

var currencyMarkers = map[string]string{
	"грн": "UAH", "гривень": "UAH", "гривні": "UAH", "гривня": "UAH", "uah": "UAH", "₴": "UAH",
	"usd": "USD", "$": "USD", "доларів": "USD", "долари": "USD", "долар": "USD", "dollars": "USD", "dollar": "USD",
	"eur": "EUR", "€": "EUR", "євро": "EUR", "euro": "EUR",
	"pln": "PLN", "zł": "PLN", "злотих": "PLN",
}

// ExtractAmount captures the first amount with an adjacent currency marker,
// or else the first bare number with defaultCurrency.
func ExtractAmount(text, defaultCurrency string) Amount {
	norm := Normalize(text)

	type hit struct {
		start         int
		value, marker string
		phrase        string
	}
	var best *hit
	if m := suffixAmount.FindStringSubmatchIndex(norm); m != nil {
		best = &hit{start: m[0], value: norm[m[2]:m[3]], marker: norm[m[4]:m[5]], phrase: norm[m[0]:m[1]]}
	}
	if m := prefixAmount.FindStringSubmatchIndex(norm); m != nil && (best == nil || m[0] < best.start) {
		best = &hit{start: m[0], value: norm[m[4]:m[5]], marker: norm[m[2]:m[3]], phrase: norm[m[0]:m[1]]}
	}
	if best != nil {
		a := newAmount(best.value)
		a.Currency = currencyMarkers[best.marker]
		a.Phrase = best.phrase
		return a
	}

	if m := bareAmount.FindStringSubmatchIndex(norm); m != nil {
		a := newAmount(norm[m[2]:m[3]])
		a.Currency = defaultCurrency
		a.CurrencyDefaulted = true
		a.Phrase = norm[m[2]:m[3]]
		return a
	}
	return Amount{Currency: defaultCurrency, CurrencyDefaulted: true}
}

func newAmount(raw string) Amount {
	raw = strings.ReplaceAll(raw, ",", ".")
	whole, frac, _ := strings.Cut(raw, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return Amount{}
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: raw, Minor: units*100 + cents}
}
