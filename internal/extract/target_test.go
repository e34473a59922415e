package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDestination(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Маршрут до офісу", "Офіс", true},
		{"як доїхати до Львова", "Львів", true},
		{"маршрут в центр на метро", "Центр", true},
		{"дійти пішки до парку", "Парк", true},
		{"route to the airport", "Airport", true},
		{"проклади маршрут до вулиці Хрещатик 22", "Вулиця Хрещатик 22", true},
		{"маршрут", "", false},
		{"як доїхати", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractDestination(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func TestExtractTransport(t *testing.T) {
	assert.Equal(t, Car, ExtractTransport("Маршрут до офісу"))
	assert.Equal(t, Transit, ExtractTransport("як доїхати автобусом"))
	assert.Equal(t, Transit, ExtractTransport("by subway to soho"))
	assert.Equal(t, Walking, ExtractTransport("дійти до метро"))
	assert.Equal(t, "автомобіль", Car.Mode())
}

func TestExtractContact(t *testing.T) {
	c := ExtractContact("Подзвони мамі")
	assert.True(t, c.Found)
	assert.Equal(t, "Мама", c.Name)
	assert.Equal(t, ActionCall, c.Action)

	c = ExtractContact("Напиши смс татові що я запізнюсь")
	assert.True(t, c.Found)
	assert.Equal(t, "Тато", c.Name)
	assert.Equal(t, ActionSMS, c.Action)
	assert.Equal(t, "я запізнюсь", c.Body)

	c = ExtractContact("call John please")
	assert.Equal(t, "John", c.Name)

	c = ExtractContact("подзвони")
	assert.False(t, c.Found)
	assert.Equal(t, ActionCall, c.Action)
}
