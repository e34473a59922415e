package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeather calls the OpenWeatherMap current weather API.
type OpenWeather struct {
	client *resty.Client
	apiKey string
}

// NewOpenWeather builds the client. An empty apiKey is allowed; every call
// then fails with ErrCollaboratorUnavailable.
func NewOpenWeather(baseURL, apiKey string, timeout time.Duration) *OpenWeather {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &OpenWeather{client: c, apiKey: apiKey}
}

type owResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// CurrentWeather implements Provider. Coordinates are used when the gazetteer has them.
func (o *OpenWeather) CurrentWeather(ctx context.Context, city extract.City) (Report, error) {
	if o.apiKey == "" {
		return Report{}, errors.Wrap(model.ErrCollaboratorUnavailable, "weather api key not configured")
	}

	params := map[string]string{
		"appid": o.apiKey,
		"units": "metric",
		"lang":  "uk",
	}
	if city.Lat != 0 || city.Lon != 0 {
		params["lat"] = strconv.FormatFloat(city.Lat, 'f', 4, 64)
		params["lon"] = strconv.FormatFloat(city.Lon, 'f', 4, 64)
	} else {
		params["q"] = city.Name
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/weather")
	if err != nil {
		return Report{}, errors.Wrap(model.ErrCollaboratorUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return Report{}, errors.Wrapf(model.ErrCollaboratorUnavailable, "openweather status %d", resp.StatusCode())
	}

	var r owResponse
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return Report{}, errors.Wrap(err, "decode weather response")
	}
	rep := Report{
		Location:    city.Name,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
	}
	if len(r.Weather) > 0 {
		rep.Description = r.Weather[0].Description
	}
	if rep.Location == "" {
		rep.Location = r.Name
	}
	return rep, nil
}
