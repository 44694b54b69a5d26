package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moim-api/core/config"
)

// FeedClient fetches a raw timetable payload from the external provider.
type FeedClient interface {
	Fetch(ctx context.Context, identifier string) (string, error)
}

type httpFeedClient struct {
	feedURL string
	client  *http.Client
}

// NewHTTPFeedClient creates a feed client against the configured provider.
func NewHTTPFeedClient() FeedClient {
	cfg := config.Get()
	return &httpFeedClient{
		feedURL: cfg.Timetable.FeedURL,
		client:  &http.Client{Timeout: time.Duration(cfg.Timetable.TimeoutSeconds) * time.Second},
	}
}

// Fetch posts the timetable identifier to the provider and returns the raw
// response body. The identifier is an opaque token; it is not validated here.
func (c *httpFeedClient) Fetch(ctx context.Context, identifier string) (string, error) {
	form := url.Values{}
	form.Set("identifier", identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.feedURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timetable feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
