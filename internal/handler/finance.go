package handler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
)

var expenseCategories = []struct {
	name  string
	words []string
}{
	{"їжа", []string{"їжа", "їжу", "обід", "вечеря", "сніданок", "кава", "каву", "продукти", "ресторан", "кафе", "піца", "food", "lunch", "dinner", "coffee", "groceries"}},
	{"транспорт", []string{"таксі", "бензин", "пальне", "проїзд", "метро", "автобус", "квиток", "квитки", "taxi", "fuel", "gas", "uber", "bolt"}},
	{"дім", []string{"оренда", "комуналка", "комунальні", "світло", "інтернет", "rent", "utilities"}},
	{"розваги", []string{"кіно", "концерт", "театр", "гра", "ігри", "movie", "cinema", "concert"}},
	{"здоров'я", []string{"ліки", "аптека", "лікар", "стоматолог", "pharmacy", "doctor", "medicine"}},
}

var descriptionMarkers = []string{"на", "за", "for", "on"}

var expenseCommandWords = []string{
	"витратив", "витратила", "витрати", "витрата", "заплатив", "заплатила", "сплатив", "сплатила", "додай", "запиши",
	"spent", "paid", "add", "expense", "log", "i", "я", "мені",
}

// Expense logs spending.
type Expense struct {
	DefaultCurrency string
}

func (Expense) Name() string { return "finance" }

func (x Expense) Extract(_ context.Context, in Input) model.Entities {
	a := extract.ExtractAmount(in.Text(), x.DefaultCurrency)
	e := model.Entities{
		"amount":             a.Value,
		"amount_minor":       a.Minor,
		"currency":           a.Currency,
		"currency_defaulted": a.CurrencyDefaulted,
	}

	rest := in.Text()
	if a.Phrase != "" {
		rest = extract.StripPhrases(rest, []string{a.Phrase})
	}
	desc, ok := extract.AfterKeyword(rest, descriptionMarkers)
	if !ok {
		desc = extract.TrimLeadingWords(rest, expenseCommandWords...)
	}
	e["description"] = desc

	category := "інше"
	norm := extract.Normalize(in.Text())
outer:
	for _, c := range expenseCategories {
		for _, w := range c.words {
			if extract.ContainsWord(norm, w) {
				category = c.name
				break outer
			}
		}
	}
	e["category"] = category
	return e
}

func (Expense) Handle(_ context.Context, in Input) model.HandlerResult {
	e := in.Entities
	amount := e.String("amount")
	if amount == "" {
		return clarify("💰 Скільки ви витратили? Наприклад: «Витратив 250 грн на обід».")
	}
	minor, _ := e["amount_minor"].(int64)
	payload := map[string]any{
		"action":             "add_expense",
		"amount":             amount,
		"amount_minor":       minor,
		"currency":           e.String("currency"),
		"currency_defaulted": e.Bool("currency_defaulted"),
		"description":        nullable(e.String("description")),
		"category":           e.String("category"),
		"date":               in.Now.Format("2006-01-02"),
	}
	var b strings.Builder
	fmt.Fprintf(&b, "💰 Записав витрату %s %s (%s)", amount, e.String("currency"), e.String("category"))
	if d := e.String("description"); d != "" {
		fmt.Fprintf(&b, ": %s", d)
	}
	b.WriteString(".")
	if e.Bool("currency_defaulted") {
		fmt.Fprintf(&b, " Валюту не вказано, використовую %s.", e.String("currency"))
	}
	return model.Succeeded(b.String(), payload)
}

var shoppingKeywords = []string{
	"додай до списку покупок", "до списку покупок", "в список покупок", "у список покупок", "список покупок",
	"shopping list", "купити", "купи", "buy", "add",
}

var itemSeparator = regexp.MustCompile(`\s*(?:,|;|\s+та\s+|\s+і\s+|\s+й\s+|\s+and\s+)\s*`)

// Shopping adds items to the shopping list.
type Shopping struct{}

func (Shopping) Name() string { return "finance" }

func (Shopping) Extract(_ context.Context, in Input) model.Entities {
	rest, ok := extract.AfterKeyword(in.Text(), shoppingKeywords)
	if !ok {
		rest = in.Text()
	}
	rest = extract.TrimLeadingWords(rest, "мені", "треба", "потрібно", "to", "the", "my", "list", "список", "списку", "до", "в", "у", "купити", "buy", "покупок")

	var items []string
	for _, part := range itemSeparator.Split(rest, -1) {
		if p := extract.TrimPunct(part); p != "" {
			items = append(items, p)
		}
	}
	return model.Entities{"items": items}
}

func (Shopping) Handle(_ context.Context, in Input) model.HandlerResult {
	items := in.Entities.Strings("items")
	if len(items) == 0 {
		return clarify("🛒 Що додати до списку покупок? Наприклад: «Купити хліб, молоко та яйця».")
	}
	return model.Succeeded(
		fmt.Sprintf("🛒 Додав до списку покупок (%d): %s.", len(items), strings.Join(items, ", ")),
		map[string]any{
			"action":     "add_to_shopping_list",
			"items":      items,
			"item_count": len(items),
		})
}
