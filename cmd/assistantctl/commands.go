package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/intent"
)

func newClient(apiURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
}

func joinArgs(args []string) string { return strings.Join(args, " ") }

// copyOK writes the body of a successful response to out.
func copyOK(resp *resty.Response, err error, out io.Writer) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	_, err = out.Write(resp.Body())
	return err
}

func runSend(c *resty.Client, userID, message, ctxJSON string, out io.Writer) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	payload := map[string]any{"message": message, "user_id": userID}
	if ctxJSON != "" {
		var ctx map[string]any
		if err := json.Unmarshal([]byte(ctxJSON), &ctx); err != nil {
			return fmt.Errorf("context must be a JSON object: %w", err)
		}
		payload["context"] = ctx
	}
	resp, err := c.R().SetBody(payload).Post("/api/v1/chat/send")
	return copyOK(resp, err, out)
}

func runHistory(c *resty.Client, userID string, limit int, out io.Writer) error {
	if userID == "" {
		return fmt.Errorf("--user required")
	}
	resp, err := c.R().
		SetPathParam("userId", userID).
		SetQueryParam("limit", fmt.Sprint(limit)).
		Get("/api/v1/chat/history/{userId}")
	return copyOK(resp, err, out)
}

func runPurge(c *resty.Client, userID string, out io.Writer) error {
	if userID == "" {
		return fmt.Errorf("--user required")
	}
	resp, err := c.R().SetPathParam("userId", userID).Delete("/api/v1/chat/history/{userId}")
	return copyOK(resp, err, out)
}

// classifyReport is what `assistantctl classify` prints.
type classifyReport struct {
	Intent      string            `json:"intent"`
	Confidence  float64           `json:"confidence"`
	Rule        string            `json:"rule,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Candidates  []string          `json:"candidates,omitempty"`
	Language    string            `json:"language"`
	Time        string            `json:"time,omitempty"`
	Day         string            `json:"day,omitempty"`
	OffsetMin   int               `json:"offset_minutes,omitempty"`
	City        string            `json:"city"`
	CityDefault bool              `json:"city_fallback"`
	Amount      string            `json:"amount,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Transport   string            `json:"transport"`
}

func runClassify(text, rulesPath, defaultCity string, out io.Writer) error {
	var opts []intent.Option
	if rulesPath != "" {
		rules, err := intent.LoadRules(rulesPath)
		if err != nil {
			return err
		}
		opts = append(opts, intent.WithRules(rules))
	}
	cls := intent.New(opts...).Classify(context.Background(), text, nil)

	w := extract.ExtractWhen(text)
	place := extract.ExtractCity(text, defaultCity)
	amount := extract.ExtractAmount(text, "UAH")
	dest, _ := extract.ExtractDestination(text)

	rep := classifyReport{
		Intent:      string(cls.Intent),
		Confidence:  cls.Confidence,
		Rule:        cls.Rule,
		Attributes:  cls.Attributes,
		Language:    string(extract.DetectLanguage(text)),
		Time:        w.Time,
		Day:         string(w.Day),
		OffsetMin:   int(w.Offset / time.Minute),
		City:        place.City.Name,
		CityDefault: place.Fallback,
		Destination: dest,
		Transport:   string(extract.ExtractTransport(text)),
	}
	for _, c := range cls.Candidates {
		rep.Candidates = append(rep.Candidates, string(c))
	}
	if amount.Found() {
		rep.Amount, rep.Currency = amount.Value, amount.Currency
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
