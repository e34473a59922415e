// Package maps builds navigation deep links. It never touches the network.
package maps

import (
	"net/url"

	"github.com/agents052025/assistant-be-ios/internal/extract"
)

// Links are the two URL forms returned to the client.
type Links struct {
	// Native opens the Apple Maps app.
	Native string `json:"maps_scheme_url"`
	// Web works in any browser.
	Web string `json:"web_url"`
}

var (
	appleFlags = map[extract.Transport]string{
		extract.Car:     "d",
		extract.Transit: "r",
		extract.Walking: "w",
	}
	googleModes = map[extract.Transport]string{
		extract.Car:     "driving",
		extract.Transit: "transit",
		extract.Walking: "walking",
	}
)

// Build returns the deep link and web fallback for destination.
func Build(destination string, t extract.Transport) Links {
	flag, ok := appleFlags[t]
	if !ok {
		t, flag = extract.Car, appleFlags[extract.Car]
	}

	native := url.Values{}
	native.Set("daddr", destination)
	native.Set("dirflg", flag)

	web := url.Values{}
	web.Set("api", "1")
	web.Set("destination", destination)
	web.Set("travelmode", googleModes[t])

	return Links{
		Native: "maps://?" + native.Encode(),
		Web:    "https://www.google.com/maps/dir/?" + web.Encode(),
	}
}
