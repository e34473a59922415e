package handler

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/collab"
	"github.com/agents052025/assistant-be-ios/internal/collab/weather"
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/rs/zerolog"
)

const (
	weatherSourceLive     = "openweathermap"
	weatherSourceEstimate = "seasonal_estimate"
)

// Weather reports current conditions, falling back to a seasonal estimate.
type Weather struct {
	Provider weather.Provider
	Locator  *extract.Locator
	Timeout  time.Duration
	Log      zerolog.Logger
}

func (*Weather) Name() string { return "weather" }

func (w *Weather) Extract(ctx context.Context, in Input) model.Entities {
	p := w.Locator.Locate(ctx, in.Text())
	if p.Fallback && p.Requested == "" {
		if name := lastWeatherLocation(in.History); name != "" {
			p = extract.Place{City: extract.CityOrDefault(name), Source: extract.SourceHistory}
		}
	}
	return model.Entities{
		"city":           p.City.Name,
		"lat":            p.City.Lat,
		"lon":            p.City.Lon,
		"city_fallback":  p.Fallback,
		"requested_city": p.Requested,
		"city_source":    p.Source,
	}
}

// lastWeatherLocation returns the city of the newest weather reply in history.
func lastWeatherLocation(history []model.ConversationRecord) string {
	for i := len(history) - 1; i >= 0; i-- {
		p := history[i].Result.ActionPayload
		if p == nil || p["action"] != "show_weather" {
			continue
		}
		if s, ok := p["location"].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (w *Weather) Handle(ctx context.Context, in Input) model.HandlerResult {
	e := in.Entities
	lat, _ := e["lat"].(float64)
	lon, _ := e["lon"].(float64)
	city := extract.City{Name: e.String("city"), Lat: lat, Lon: lon}

	var primary func(context.Context) (weather.Report, error)
	if w.Provider != nil {
		primary = func(ctx context.Context) (weather.Report, error) {
			return w.Provider.CurrentWeather(ctx, city)
		}
	}
	report, out := collab.Attempt(ctx, collab.Call{Name: "weather", Timeout: w.Timeout, Log: w.Log},
		primary, func(error) weather.Report { return weather.Synthetic(city, in.Now) })
	if report.Location == "" {
		report.Location = city.Name
	}

	source := weatherSourceLive
	if !out.Live {
		source = weatherSourceEstimate
	}
	payload := map[string]any{
		"action":         "show_weather",
		"location":       report.Location,
		"temperature":    fmt.Sprintf("%d°C", int(math.Round(report.Temperature))),
		"feels_like":     fmt.Sprintf("%d°C", int(math.Round(report.FeelsLike))),
		"description":    report.Description,
		"icon":           weather.Icon(report.Description),
		"humidity":       fmt.Sprintf("%d%%", report.Humidity),
		"wind_speed":     fmt.Sprintf("%.1f м/с", report.WindSpeed),
		"mock_data":      !out.Live,
		"source":         source,
		"city_fallback":  e.Bool("city_fallback"),
		"requested_city": nullable(e.String("requested_city")),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Погода в %s: %s, %s (відчувається як %s). Вологість %s, вітер %s.",
		payload["icon"], report.Location, payload["temperature"], report.Description, payload["feels_like"],
		payload["humidity"], payload["wind_speed"])
	if r := e.String("requested_city"); r != "" {
		fmt.Fprintf(&b, "\nНе знайшов місто «%s», показую %s.", r, report.Location)
	} else if e.Bool("city_fallback") {
		fmt.Fprintf(&b, "\nМісто не вказано, показую %s.", report.Location)
	}
	if !out.Live {
		b.WriteString("\nСервіс погоди недоступний, це приблизна сезонна оцінка.")
	}
	return model.Succeeded(b.String(), payload)
}
