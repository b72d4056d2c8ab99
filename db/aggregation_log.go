package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	dbtx "socialsync/db/tx"
	"socialsync/models"
)

type PostgresAggregationLogRepository struct {
	db     *sqlx.DB
	schema string
}

var aggregationLogColumns = []string{
	"id",
	"post_id",
	"origin",
	"remote_id",
	"decision",
	"author_handle",
	"created_at",
}

func NewPostgresAggregationLogRepository(db *sqlx.DB, schema string) *PostgresAggregationLogRepository {
	return &PostgresAggregationLogRepository{db: db, schema: schema}
}

func (r *PostgresAggregationLogRepository) InsertAggregationLogEntry(
	ctx context.Context,
	entry *models.AggregationLogEntry,
) error {
	db := dbtx.GetTransactional(ctx, r.db)
	returningStr := strings.Join(aggregationLogColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.aggregation_log (id, post_id, origin, remote_id, decision, author_handle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, r.schema, returningStr)

	err := db.QueryRowxContext(ctx, query,
		entry.ID, entry.PostID, entry.Origin, entry.RemoteID, entry.Decision, entry.AuthorHandle).
		StructScan(entry)
	if err != nil {
		return fmt.Errorf("failed to insert aggregation log entry: %w", err)
	}

	return nil
}

func (r *PostgresAggregationLogRepository) GetAggregationLogByPostID(
	ctx context.Context,
	postID string,
	limit int,
) ([]*models.AggregationLogEntry, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(aggregationLogColumns, ", ")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.aggregation_log
		WHERE post_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, columnsStr, r.schema)

	var entries []*models.AggregationLogEntry
	if err := db.SelectContext(ctx, &entries, query, postID, limit); err != nil {
		return nil, fmt.Errorf("failed to get aggregation log entries: %w", err)
	}

	return entries, nil
}
