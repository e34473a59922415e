// Package weather provides the current-weather collaborator and a
// deterministic seasonal estimate used when it is unavailable.
package weather

import (
	"context"
	"strings"

	"github.com/agents052025/assistant-be-ios/internal/extract"
)

// Report is one current-conditions reading.
type Report struct {
	Location    string
	Temperature float64
	FeelsLike   float64
	Description string
	Humidity    int
	WindSpeed   float64
}

// Provider looks up current weather for a city.
type Provider interface {
	CurrentWeather(ctx context.Context, city extract.City) (Report, error)
}

var icons = []struct {
	icon  string
	words []string
}{
	{"☀️", []string{"сонце", "сонячн", "ясно", "sunny", "clear"}},
	{"☁️", []string{"хмарно", "cloud", "overcast"}},
	{"🌧️", []string{"дощ", "rain", "дрібний", "drizzle"}},
	{"❄️", []string{"сніг", "snow", "снігопад"}},
	{"🌫️", []string{"туман", "fog", "mist", "haze"}},
	{"⛈️", []string{"гроз", "thunder", "storm"}},
}

// DefaultIcon is used when the description matches no condition.
const DefaultIcon = "🌤️"

// Icon picks an emoji for a weather description. The first matching
// condition wins, so "хмарно, дощ" is cloudy.
func Icon(description string) string {
	d := strings.ToLower(description)
	for _, c := range icons {
		for _, w := range c.words {
			if strings.Contains(d, w) {
				return c.icon
			}
		}
	}
	return DefaultIcon
}
