package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	dbtx "socialsync/db/tx"
	"socialsync/models"
)

type PostgresIngestedCommentsRepository struct {
	db     *sqlx.DB
	schema string
}

var ingestedCommentsColumns = []string{
	"id",
	"post_id",
	"remote_id",
	"origin",
	"author_remote_id",
	"author_handle",
	"avatar_url",
	"remote_url",
	"body",
	"remote_created_at",
	"parent_id",
	"created_at",
	"updated_at",
}

func NewPostgresIngestedCommentsRepository(db *sqlx.DB, schema string) *PostgresIngestedCommentsRepository {
	return &PostgresIngestedCommentsRepository{db: db, schema: schema}
}

// UpsertIngestedComment persists one comment keyed by (post_id, remote_id).
// A second upsert for the same key never creates a second row; the existing
// row is returned with its original id, so the caller always observes one
// stable local id per remote status.
func (r *PostgresIngestedCommentsRepository) UpsertIngestedComment(
	ctx context.Context,
	comment *models.IngestedComment,
) error {
	db := dbtx.GetTransactional(ctx, r.db)
	returningStr := strings.Join(ingestedCommentsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.ingested_comments
			(id, post_id, remote_id, origin, author_remote_id, author_handle, avatar_url, remote_url, body, remote_created_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (post_id, remote_id) DO UPDATE SET updated_at = NOW()
		RETURNING %s`, r.schema, returningStr)

	err := db.QueryRowxContext(ctx, query,
		comment.ID, comment.PostID, comment.RemoteID, comment.Origin,
		comment.AuthorRemoteID, comment.AuthorHandle, comment.AvatarURL,
		comment.RemoteURL, comment.Body, comment.RemoteCreatedAt).
		StructScan(comment)
	if err != nil {
		return fmt.Errorf("failed to upsert ingested comment: %w", err)
	}

	return nil
}

// FindCommentIDsByRemoteIDs resolves remote ids to local comment ids for one
// post in a single query. Reconciliation batches can be large; one round trip
// per pass, never one per comment.
func (r *PostgresIngestedCommentsRepository) FindCommentIDsByRemoteIDs(
	ctx context.Context,
	postID string,
	remoteIDs []string,
) (map[string]string, error) {
	if len(remoteIDs) == 0 {
		return map[string]string{}, nil
	}

	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, remote_id
		FROM %s.ingested_comments
		WHERE post_id = $1 AND remote_id = ANY($2)`, r.schema)

	var rows []struct {
		ID       string `db:"id"`
		RemoteID string `db:"remote_id"`
	}
	if err := db.SelectContext(ctx, &rows, query, postID, pq.Array(remoteIDs)); err != nil {
		return nil, fmt.Errorf("failed to find comments by remote ids: %w", err)
	}

	found := make(map[string]string, len(rows))
	for _, row := range rows {
		found[row.RemoteID] = row.ID
	}

	return found, nil
}

// SetParentForComments links every listed comment to the same parent in one
// batched update.
func (r *PostgresIngestedCommentsRepository) SetParentForComments(
	ctx context.Context,
	postID, parentID string,
	commentIDs []string,
) error {
	if len(commentIDs) == 0 {
		return nil
	}

	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.ingested_comments
		SET parent_id = $1, updated_at = NOW()
		WHERE post_id = $2 AND id = ANY($3)`, r.schema)

	if _, err := db.ExecContext(ctx, query, parentID, postID, pq.Array(commentIDs)); err != nil {
		return fmt.Errorf("failed to set parent for comments: %w", err)
	}

	return nil
}

func (r *PostgresIngestedCommentsRepository) GetIngestedCommentsByPostID(
	ctx context.Context,
	postID string,
) ([]*models.IngestedComment, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(ingestedCommentsColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.ingested_comments
		WHERE post_id = $1
		ORDER BY remote_created_at ASC`, columnsStr, r.schema)

	var comments []*models.IngestedComment
	if err := db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get ingested comments: %w", err)
	}

	return comments, nil
}
