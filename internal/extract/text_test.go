package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "здоров'я і спорт", Normalize("  Здоров’я   І спорт "))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, Ukrainian, DetectLanguage("Привіт"))
	assert.Equal(t, English, DetectLanguage("hello there"))
	assert.Equal(t, Ukrainian, DetectLanguage("18:00"))
}

func TestIndexWordRespectsBoundaries(t *testing.T) {
	assert.Equal(t, -1, IndexWord("листопад", "лист"))
	assert.Equal(t, len("напиши "), IndexWord("напиши лист", "лист"))
	assert.True(t, ContainsWord("weather in kyiv", "kyiv"))
	assert.False(t, ContainsWord("hike", "hi"))
}

func TestAfterKeyword(t *testing.T) {
	rest, ok := AfterKeyword("Запиши нотатку: Купити Подарунок", []string{"нотатку", "запиши"})
	assert.True(t, ok)
	assert.Equal(t, "нотатку: Купити Подарунок", rest)

	rest, ok = AfterKeyword("remind me to Call Bob", []string{"remind me to"})
	assert.True(t, ok)
	assert.Equal(t, "Call Bob", rest)

	_, ok = AfterKeyword("hello", []string{"note"})
	assert.False(t, ok)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Вулиця Хрещатик", TitleCase("вулиця ХРЕЩАТИК"))
	assert.Equal(t, "Нью-йорк", TitleCase("нью-йорк"))
}

func TestFirstNumber(t *testing.T) {
	n, ok := FirstNumber("дай 7 ідей")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	_, ok = FirstNumber("ідеї")
	assert.False(t, ok)
}

func TestStripPhrases(t *testing.T) {
	assert.Equal(t, "Зустріч з Іваном", StripPhrases("Зустріч з Іваном завтра о 15:00", []string{"завтра", "о 15:00"}))
	assert.Equal(t, "купити молоко", StripPhrases("купити молоко", []string{"absent"}))
}

func TestTrimLeadingWords(t *testing.T) {
	assert.Equal(t, "купити подарунок", TrimLeadingWords("нотатку: купити подарунок", "нотатку", "про"))
	assert.Equal(t, "Call Bob", TrimLeadingWords("me to Call Bob", "me", "to"))
	assert.Equal(t, "", TrimLeadingWords("про", "про"))
}
