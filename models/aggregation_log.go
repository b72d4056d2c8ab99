package models

import (
	"time"
)

// AggregationDecision is the outcome of classifying one candidate status.
type AggregationDecision string

const (
	DecisionAccepted  AggregationDecision = "ACCEPTED"
	DecisionDuplicate AggregationDecision = "DUPLICATE"
	DecisionSelfEcho  AggregationDecision = "SELF_ECHO"
)

// AggregationLogEntry is an append-only audit record of one classification
// decision. Diagnostics only; the engine never reads it back for control flow.
type AggregationLogEntry struct {
	ID           string              `json:"id"            db:"id"`
	PostID       string              `json:"post_id"       db:"post_id"`
	Origin       Origin              `json:"origin"        db:"origin"`
	RemoteID     string              `json:"remote_id"     db:"remote_id"`
	Decision     AggregationDecision `json:"decision"      db:"decision"`
	AuthorHandle string              `json:"author_handle" db:"author_handle"`
	CreatedAt    time.Time           `json:"created_at"    db:"created_at"`
}
