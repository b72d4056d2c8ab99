package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	dbtx "socialsync/db/tx"
	"socialsync/models"
)

type PostgresTrackedPostsRepository struct {
	db     *sqlx.DB
	schema string
}

var trackedPostsColumns = []string{
	"id",
	"title",
	"permalink",
	"created_at",
	"updated_at",
}

func NewPostgresTrackedPostsRepository(db *sqlx.DB, schema string) *PostgresTrackedPostsRepository {
	return &PostgresTrackedPostsRepository{db: db, schema: schema}
}

func (r *PostgresTrackedPostsRepository) CreateTrackedPost(ctx context.Context, post *models.TrackedPost) error {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(trackedPostsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.tracked_posts (id, title, permalink, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr)

	err := db.QueryRowxContext(ctx, query, post.ID, post.Title, post.Permalink).StructScan(post)
	if err != nil {
		return fmt.Errorf("failed to create tracked post: %w", err)
	}

	return nil
}

func (r *PostgresTrackedPostsRepository) GetTrackedPostByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.TrackedPost], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(trackedPostsColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.tracked_posts
		WHERE id = $1`, columnsStr, r.schema)

	post := &models.TrackedPost{}
	err := db.GetContext(ctx, post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.TrackedPost](), nil
		}
		return mo.None[*models.TrackedPost](), fmt.Errorf("failed to get tracked post: %w", err)
	}

	return mo.Some(post), nil
}

func (r *PostgresTrackedPostsRepository) ListTrackedPostIDs(ctx context.Context) ([]string, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id
		FROM %s.tracked_posts
		ORDER BY created_at ASC`, r.schema)

	var ids []string
	if err := db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list tracked post ids: %w", err)
	}

	return ids, nil
}

func (r *PostgresTrackedPostsRepository) InsertBroadcastedStatus(
	ctx context.Context,
	broadcast *models.BroadcastedStatus,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.broadcasted_statuses (id, post_id, account_id, remote_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, post_id, account_id, remote_id, created_at`, r.schema)

	err := db.QueryRowxContext(ctx, query, broadcast.ID, broadcast.PostID, broadcast.AccountID, broadcast.RemoteID).
		StructScan(broadcast)
	if err != nil {
		return fmt.Errorf("failed to insert broadcasted status: %w", err)
	}

	return nil
}

func (r *PostgresTrackedPostsRepository) GetBroadcastedStatusesByPostID(
	ctx context.Context,
	postID string,
) ([]*models.BroadcastedStatus, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, post_id, account_id, remote_id, created_at
		FROM %s.broadcasted_statuses
		WHERE post_id = $1
		ORDER BY account_id ASC`, r.schema)

	var broadcasts []*models.BroadcastedStatus
	if err := db.SelectContext(ctx, &broadcasts, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get broadcasted statuses: %w", err)
	}

	return broadcasts, nil
}

func (r *PostgresTrackedPostsRepository) GetAggregatedIDsByPostID(
	ctx context.Context,
	postID string,
) ([]string, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT remote_id
		FROM %s.aggregated_statuses
		WHERE post_id = $1`, r.schema)

	var remoteIDs []string
	if err := db.SelectContext(ctx, &remoteIDs, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get aggregated ids: %w", err)
	}

	return remoteIDs, nil
}

// InsertAggregatedID commits a remote id to the post's aggregated set. Marking
// an already-marked id is a no-op.
func (r *PostgresTrackedPostsRepository) InsertAggregatedID(ctx context.Context, postID, remoteID string) error {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.aggregated_statuses (post_id, remote_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (post_id, remote_id) DO NOTHING`, r.schema)

	if _, err := db.ExecContext(ctx, query, postID, remoteID); err != nil {
		return fmt.Errorf("failed to insert aggregated id: %w", err)
	}

	return nil
}
