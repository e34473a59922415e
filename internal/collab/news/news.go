// Package news searches headlines through NewsAPI.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Article is one search hit.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
}

// Provider searches news articles.
type Provider interface {
	Search(ctx context.Context, query string) ([]Article, error)
}

const (
	defaultBaseURL = "https://newsapi.org/v2"
	pageSize       = 5
)

// NewsAPI is a Provider backed by newsapi.org.
type NewsAPI struct {
	client *resty.Client
	apiKey string
}

// NewNewsAPI builds the client. Without an apiKey every search fails with
// ErrCollaboratorUnavailable.
func NewNewsAPI(baseURL, apiKey string, timeout time.Duration) *NewsAPI {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &NewsAPI{client: c, apiKey: apiKey}
}

type everythingResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search implements Provider.
func (n *NewsAPI) Search(ctx context.Context, query string) ([]Article, error) {
	if n.apiKey == "" {
		return nil, errors.Wrap(model.ErrCollaboratorUnavailable, "news api key not configured")
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", n.apiKey).
		SetQueryParams(map[string]string{
			"q":        query,
			"sortBy":   "publishedAt",
			"pageSize": fmt.Sprint(pageSize),
		}).
		Get("/everything")
	if err != nil {
		return nil, errors.Wrap(model.ErrCollaboratorUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Wrapf(model.ErrCollaboratorUnavailable, "newsapi status %d", resp.StatusCode())
	}

	var er everythingResponse
	if err := json.Unmarshal(resp.Body(), &er); err != nil {
		return nil, errors.Wrap(err, "decode news response")
	}
	if er.Status != "" && er.Status != "ok" {
		return nil, errors.Wrapf(model.ErrCollaboratorUnavailable, "newsapi: %s", er.Message)
	}
	out := make([]Article, 0, len(er.Articles))
	for _, a := range er.Articles {
		out = append(out, Article{Title: a.Title, Description: a.Description, URL: a.URL, Source: a.Source.Name})
	}
	return out, nil
}
