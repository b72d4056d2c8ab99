package twitter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusID is a remote status id kept as a decimal string. The remote API
// emits ids as JSON numbers that exceed 2^53, so decoding them through
// float64 silently corrupts them; this type accepts either a number or a
// string and always holds the exact decimal text.
type StatusID string

func (s *StatusID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}

	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("failed to decode status id: %w", err)
		}
		*s = StatusID(v)
		return nil
	}

	// json.Number preserves the literal digits, unlike float64
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("failed to decode status id: %w", err)
	}
	*s = StatusID(n.String())
	return nil
}

func (s StatusID) String() string {
	return string(s)
}

// User is the author object embedded in REST API statuses.
type User struct {
	ID              StatusID `json:"id"`
	ScreenName      string   `json:"screen_name"`
	ProfileImageURL string   `json:"profile_image_url"`
}

// Status is one entry from the REST API (mentions, retweets, show).
type Status struct {
	ID                StatusID `json:"id"`
	Text              string   `json:"text"`
	CreatedAt         string   `json:"created_at"`
	InReplyToStatusID StatusID `json:"in_reply_to_status_id"`
	User              User     `json:"user"`
}

// SearchResult is one entry from the search API, which flattens the author
// fields instead of nesting a user object.
type SearchResult struct {
	ID                StatusID `json:"id"`
	FromUser          string   `json:"from_user"`
	FromUserID        StatusID `json:"from_user_id"`
	Text              string   `json:"text"`
	CreatedAt         string   `json:"created_at"`
	ProfileImageURL   string   `json:"profile_image_url"`
	InReplyToStatusID StatusID `json:"in_reply_to_status_id"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
