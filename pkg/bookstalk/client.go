// Package bookstalk provides a small Go client for the bookstalk HTTP API.
//
// Example usage:
//
//	client := bookstalk.NewClient("http://localhost:8000")
//
//	books, err := client.Books(ctx, "파이썬")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := client.Recommend(ctx, "파이썬", books[0].Title)
package bookstalk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookstalk/internal/types"
)

// Recommendation is the answer to a similar-books request.
type Recommendation struct {
	Text      string
	ImagePath string
}

// NoMatchError reports that the server holds no record with the given title
// under the keyword.
type NoMatchError struct {
	Keyword string
	Title   string
	Message string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no record titled %q under keyword %q: %s", e.Title, e.Keyword, e.Message)
}

// Client calls a running bookstalk API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. The default is generous because
// a cache-miss query crawls before answering.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Books returns the stored records for a keyword. An empty keyword lets the
// server apply its default. A cache miss makes the server crawl first, so
// this call can take a while.
func (c *Client) Books(ctx context.Context, keyword string) ([]types.Book, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}

	body, err := c.get(ctx, "/books", q)
	if err != nil {
		return nil, err
	}

	var books []types.Book
	if err := json.Unmarshal(body, &books); err != nil {
		return nil, fmt.Errorf("decode books response: %w", err)
	}
	return books, nil
}

// Recommend asks for books similar to the stored record with the given
// title. A missing record yields a NoMatchError; a server-side model failure
// yields a plain error.
func (c *Client) Recommend(ctx context.Context, keyword, title string) (*Recommendation, error) {
	q := url.Values{}
	q.Set("title", title)
	if keyword != "" {
		q.Set("keyword", keyword)
	}

	body, err := c.get(ctx, "/recommend", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Recommendation string `json:"recommendation"`
		Image          string `json:"image"`
		Message        string `json:"message"`
		Error          string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode recommend response: %w", err)
	}

	switch {
	case payload.Error != "":
		return nil, fmt.Errorf("recommendation failed: %s", payload.Error)
	case payload.Message != "":
		return nil, &NoMatchError{Keyword: keyword, Title: title, Message: payload.Message}
	}

	return &Recommendation{
		Text:      payload.Recommendation,
		ImagePath: payload.Image,
	}, nil
}

// Health reports whether the server answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/api/health", nil)
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return nil, fmt.Errorf("server error (status %d): %s", resp.StatusCode, payload.Error)
		}
		return nil, fmt.Errorf("server error: status %d", resp.StatusCode)
	}
	return body, nil
}
