package models

import (
	"time"
)

// TrackedPost is a locally published post whose remote discussion is aggregated
// into its comment thread.
type TrackedPost struct {
	ID        string    `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Permalink string    `json:"permalink"  db:"permalink"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BroadcastedStatus records the remote id produced when one of our own accounts
// broadcast the tracked post to the remote network. Used to filter self-echoes
// out of aggregation, never imported as a comment.
type BroadcastedStatus struct {
	ID        string    `json:"id"         db:"id"`
	PostID    string    `json:"post_id"    db:"post_id"`
	AccountID string    `json:"account_id" db:"account_id"`
	RemoteID  string    `json:"remote_id"  db:"remote_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
