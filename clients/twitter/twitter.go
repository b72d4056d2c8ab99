package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"socialsync/clients"
)

const (
	DefaultSearchBaseURL = "https://search.twitter.com"
	DefaultAPIBaseURL    = "https://api.twitter.com/1"

	// MentionsPageSize caps one mentions page; the engine never paginates.
	MentionsPageSize = 200
)

// Client fetches candidate statuses from the remote network. All methods
// return raw payload structs; normalization into canonical records happens in
// the aggregation layer.
type Client struct {
	transport     clients.Transport
	searchBaseURL string
	apiBaseURL    string
}

func NewClient(transport clients.Transport, searchBaseURL, apiBaseURL string) *Client {
	if searchBaseURL == "" {
		searchBaseURL = DefaultSearchBaseURL
	}
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}
	return &Client{
		transport:     transport,
		searchBaseURL: strings.TrimSuffix(searchBaseURL, "/"),
		apiBaseURL:    strings.TrimSuffix(apiBaseURL, "/"),
	}
}

// Search runs a keyword search with the terms OR-combined.
func (c *Client) Search(ctx context.Context, terms []string) ([]SearchResult, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("search requires at least one term")
	}

	query := url.QueryEscape(strings.Join(terms, " OR "))
	requestURL := fmt.Sprintf("%s/search.json?q=%s", c.searchBaseURL, query)

	body, err := c.transport.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var response SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return response.Results, nil
}

// Retweets fetches retweets of one specific status.
func (c *Client) Retweets(ctx context.Context, statusID string) ([]Status, error) {
	if statusID == "" {
		return nil, fmt.Errorf("status id cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/statuses/retweets/%s.json", c.apiBaseURL, url.PathEscape(statusID))

	body, err := c.transport.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("retweets request failed: %w", err)
	}

	var statuses []Status
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode retweets response: %w", err)
	}

	return statuses, nil
}

// Mentions fetches mentions newer than sinceID, capped at count per page.
func (c *Client) Mentions(ctx context.Context, sinceID string, count int) ([]Status, error) {
	if sinceID == "" {
		return nil, fmt.Errorf("since id cannot be empty")
	}
	if count <= 0 {
		count = MentionsPageSize
	}

	requestURL := fmt.Sprintf(
		"%s/statuses/mentions.json?since_id=%s&count=%d",
		c.apiBaseURL, url.QueryEscape(sinceID), count,
	)

	body, err := c.transport.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("mentions request failed: %w", err)
	}

	var statuses []Status
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode mentions response: %w", err)
	}

	return statuses, nil
}

// Show fetches one status by id.
func (c *Client) Show(ctx context.Context, statusID string) (*Status, error) {
	if statusID == "" {
		return nil, fmt.Errorf("status id cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/statuses/show.json?id=%s", c.apiBaseURL, url.QueryEscape(statusID))

	body, err := c.transport.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("show request failed: %w", err)
	}

	var status Status
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode show response: %w", err)
	}

	return &status, nil
}

// StatusURL builds the public permalink for a status.
func StatusURL(handle, statusID string) string {
	return fmt.Sprintf("https://twitter.com/%s/status/%s", handle, statusID)
}
