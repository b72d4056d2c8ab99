package aggregation

import (
	"errors"
	"fmt"
	"time"

	"socialsync/clients/twitter"
	"socialsync/models"
)

// ErrMalformedPayload marks a raw payload that cannot be normalized. The
// caller skips that single payload and continues; no partial state is
// mutated.
var ErrMalformedPayload = errors.New("malformed payload")

// The REST API and the search API use different created_at formats.
var createdAtFormats = []string{
	time.RubyDate,                     // Mon Jan 02 15:04:05 -0700 2006
	"Mon, 02 Jan 2006 15:04:05 -0700", // search results
	time.RFC1123Z,
}

func parseCreatedAt(raw string) (time.Time, error) {
	for _, format := range createdAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable created_at %q", raw)
}

// NormalizeStatus converts one REST API status (mention, retweet, direct
// lookup) into the canonical record.
func NormalizeStatus(status twitter.Status, origin models.Origin) (*models.RemoteStatus, error) {
	if status.ID == "" {
		return nil, fmt.Errorf("%w: missing status id", ErrMalformedPayload)
	}
	if status.User.ScreenName == "" {
		return nil, fmt.Errorf("%w: status %s missing author", ErrMalformedPayload, status.ID)
	}
	if status.Text == "" {
		return nil, fmt.Errorf("%w: status %s missing body", ErrMalformedPayload, status.ID)
	}

	createdAt, err := parseCreatedAt(status.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: status %s: %v", ErrMalformedPayload, status.ID, err)
	}

	return &models.RemoteStatus{
		RemoteID:       status.ID.String(),
		Origin:         origin,
		AuthorRemoteID: status.User.ID.String(),
		AuthorHandle:   status.User.ScreenName,
		Body:           status.Text,
		CreatedAt:      createdAt,
		InReplyToID:    status.InReplyToStatusID.String(),
		AvatarURL:      status.User.ProfileImageURL,
		StatusURL:      twitter.StatusURL(status.User.ScreenName, status.ID.String()),
	}, nil
}

// NormalizeSearchResult converts one search API result, which flattens the
// author fields, into the canonical record.
func NormalizeSearchResult(result twitter.SearchResult, origin models.Origin) (*models.RemoteStatus, error) {
	if result.ID == "" {
		return nil, fmt.Errorf("%w: missing status id", ErrMalformedPayload)
	}
	if result.FromUser == "" {
		return nil, fmt.Errorf("%w: status %s missing author", ErrMalformedPayload, result.ID)
	}
	if result.Text == "" {
		return nil, fmt.Errorf("%w: status %s missing body", ErrMalformedPayload, result.ID)
	}

	createdAt, err := parseCreatedAt(result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: status %s: %v", ErrMalformedPayload, result.ID, err)
	}

	return &models.RemoteStatus{
		RemoteID:       result.ID.String(),
		Origin:         origin,
		AuthorRemoteID: result.FromUserID.String(),
		AuthorHandle:   result.FromUser,
		Body:           result.Text,
		CreatedAt:      createdAt,
		InReplyToID:    result.InReplyToStatusID.String(),
		AvatarURL:      result.ProfileImageURL,
		StatusURL:      twitter.StatusURL(result.FromUser, result.ID.String()),
	}, nil
}
