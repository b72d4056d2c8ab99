package models

import (
	"time"
)

// Origin classifies how a remote status was discovered.
type Origin string

const (
	OriginSearch  Origin = "search"
	OriginRetweet Origin = "retweet"
	OriginMention Origin = "mention"
	OriginImport  Origin = "import"
)

// RemoteStatus is the canonical normalized form of one piece of remote
// activity, regardless of which source surfaced it. Immutable once built.
//
// RemoteID and InReplyToID are decimal strings end-to-end. Remote status ids
// exceed 2^53 and must never round-trip through a float or a 32-bit integer.
type RemoteStatus struct {
	RemoteID       string    `json:"remote_id"`
	Origin         Origin    `json:"origin"`
	AuthorRemoteID string    `json:"author_remote_id"`
	AuthorHandle   string    `json:"author_handle"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"` // normalized to UTC
	InReplyToID    string    `json:"in_reply_to_id,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	StatusURL      string    `json:"status_url,omitempty"` // public permalink of the status
}
