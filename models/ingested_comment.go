package models

import (
	"time"
)

// IngestedComment is the persisted representation of a RemoteStatus once
// accepted into a post's thread. Exactly one row exists per (post, remote id);
// that pair is the persistence idempotency key.
type IngestedComment struct {
	ID              string    `json:"id"                  db:"id"`
	PostID          string    `json:"post_id"             db:"post_id"`
	RemoteID        string    `json:"remote_id"           db:"remote_id"`
	Origin          Origin    `json:"origin"              db:"origin"`
	AuthorRemoteID  string    `json:"author_remote_id"    db:"author_remote_id"`
	AuthorHandle    string    `json:"author_handle"       db:"author_handle"`
	AvatarURL       string    `json:"avatar_url"          db:"avatar_url"`
	RemoteURL       string    `json:"remote_url"          db:"remote_url"`
	Body            string    `json:"body"                db:"body"`
	RemoteCreatedAt time.Time `json:"remote_created_at"   db:"remote_created_at"`
	ParentID        *string   `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt       time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"          db:"updated_at"`
}
