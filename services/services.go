package services

import (
	"context"

	"github.com/samber/mo"

	"socialsync/models"
)

// TrackedPostsService defines operations on tracked posts, their broadcast
// ledger and their aggregated-id set.
type TrackedPostsService interface {
	CreateTrackedPost(ctx context.Context, title, permalink string) (*models.TrackedPost, error)
	GetTrackedPostByID(ctx context.Context, id string) (mo.Option[*models.TrackedPost], error)
	ListTrackedPostIDs(ctx context.Context) ([]string, error)
	RecordBroadcast(ctx context.Context, postID, accountID, remoteID string) (*models.BroadcastedStatus, error)
	GetBroadcastedStatuses(ctx context.Context, postID string) ([]*models.BroadcastedStatus, error)
	GetAggregatedIDs(ctx context.Context, postID string) ([]string, error)
	// MarkAggregated commits a remote id to the post's aggregated set. Callers
	// invoke it exactly once per accepted status, after the comment upsert has
	// succeeded, never before. Idempotent.
	MarkAggregated(ctx context.Context, postID, remoteID string) error
}

// CommentsService is the persistence adapter contract for ingested comments.
type CommentsService interface {
	// UpsertComment persists one status as a threaded comment. Idempotent per
	// (post id, remote id): a repeat call returns the existing comment with
	// the same local id and never creates a second row.
	UpsertComment(ctx context.Context, postID string, status *models.RemoteStatus) (*models.IngestedComment, error)
	// FindByRemoteIDs resolves remote ids to local comment ids in one batched
	// query.
	FindByRemoteIDs(ctx context.Context, postID string, remoteIDs []string) (map[string]string, error)
	// SetParentForComments links all listed comments to the same parent.
	SetParentForComments(ctx context.Context, postID, parentID string, commentIDs []string) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]*models.IngestedComment, error)
}

// AuditLogService records classification decisions. Write-mostly; the engine
// never reads entries back for control flow.
type AuditLogService interface {
	Append(
		ctx context.Context,
		postID string,
		origin models.Origin,
		remoteID string,
		decision models.AggregationDecision,
		authorHandle string,
	) error
	GetEntriesByPostID(ctx context.Context, postID string, limit int) ([]*models.AggregationLogEntry, error)
}

// TransactionManager defines the interface for managing database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
