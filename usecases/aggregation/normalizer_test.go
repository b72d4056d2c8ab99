package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialsync/clients/twitter"
	"socialsync/models"
)

func TestNormalizeStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := twitter.Status{
			ID:                "210462857140252672",
			Text:              "@author great post",
			CreatedAt:         "Wed Aug 27 13:08:45 +0000 2008",
			InReplyToStatusID: "210462857140252671",
			User: twitter.User{
				ID:              "819797",
				ScreenName:      "commenter",
				ProfileImageURL: "https://example.com/a.png",
			},
		}

		status, err := NormalizeStatus(raw, models.OriginMention)

		require.NoError(t, err)
		assert.Equal(t, "210462857140252672", status.RemoteID)
		assert.Equal(t, models.OriginMention, status.Origin)
		assert.Equal(t, "819797", status.AuthorRemoteID)
		assert.Equal(t, "commenter", status.AuthorHandle)
		assert.Equal(t, "@author great post", status.Body)
		assert.Equal(t, "210462857140252671", status.InReplyToID)
		assert.Equal(t, "https://example.com/a.png", status.AvatarURL)
		assert.Equal(t, "https://twitter.com/commenter/status/210462857140252672", status.StatusURL)
		assert.Equal(t, time.Date(2008, 8, 27, 13, 8, 45, 0, time.UTC), status.CreatedAt)
	})

	t.Run("NormalizesTimezoneToUTC", func(t *testing.T) {
		raw := twitter.Status{
			ID:        "1",
			Text:      "offset timestamp",
			CreatedAt: "Wed Aug 27 13:08:45 -0500 2008",
			User:      twitter.User{ID: "2", ScreenName: "someone"},
		}

		status, err := NormalizeStatus(raw, models.OriginRetweet)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, status.CreatedAt.Location())
		assert.Equal(t, time.Date(2008, 8, 27, 18, 8, 45, 0, time.UTC), status.CreatedAt)
	})

	t.Run("MissingFields", func(t *testing.T) {
		tests := []struct {
			name string
			raw  twitter.Status
		}{
			{
				name: "missing id",
				raw: twitter.Status{
					Text:      "body",
					CreatedAt: "Wed Aug 27 13:08:45 +0000 2008",
					User:      twitter.User{ScreenName: "u"},
				},
			},
			{
				name: "missing author",
				raw: twitter.Status{
					ID:        "1",
					Text:      "body",
					CreatedAt: "Wed Aug 27 13:08:45 +0000 2008",
				},
			},
			{
				name: "missing body",
				raw: twitter.Status{
					ID:        "1",
					CreatedAt: "Wed Aug 27 13:08:45 +0000 2008",
					User:      twitter.User{ScreenName: "u"},
				},
			},
			{
				name: "unparseable timestamp",
				raw: twitter.Status{
					ID:        "1",
					Text:      "body",
					CreatedAt: "not a timestamp",
					User:      twitter.User{ScreenName: "u"},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NormalizeStatus(tt.raw, models.OriginMention)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedPayload)
			})
		}
	})
}

func TestNormalizeSearchResult(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		raw := twitter.SearchResult{
			ID:              "122032448266698752",
			FromUser:        "searcher",
			FromUserID:      "390248",
			Text:            "found via search",
			CreatedAt:       "Thu, 06 Oct 2011 19:36:17 +0000",
			ProfileImageURL: "https://example.com/s.png",
		}

		status, err := NormalizeSearchResult(raw, models.OriginSearch)

		require.NoError(t, err)
		assert.Equal(t, "122032448266698752", status.RemoteID)
		assert.Equal(t, models.OriginSearch, status.Origin)
		assert.Equal(t, "searcher", status.AuthorHandle)
		assert.Equal(t, "390248", status.AuthorRemoteID)
		assert.Equal(t, time.Date(2011, 10, 6, 19, 36, 17, 0, time.UTC), status.CreatedAt)
		assert.Empty(t, status.InReplyToID)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := NormalizeSearchResult(twitter.SearchResult{FromUser: "u", Text: "x"}, models.OriginSearch)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}
