package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client publishes boards to a running viewer.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client with a short request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

// Publish sends the serialized board for the given session.
func (c *Client) Publish(ctx context.Context, sessionID, board string) error {
	q := url.Values{}
	q.Set("map", board)
	if sessionID != "" {
		q.Set("session", sessionID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/save-map?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("viewer: build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("viewer: publish: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("viewer: publish: unexpected status %s", resp.Status)
	}
	return nil
}
