package auditlog

import (
	"context"
	"fmt"
	"log"

	"socialsync/core"
	"socialsync/db"
	"socialsync/models"
)

type AuditLogService struct {
	aggregationLogRepo *db.PostgresAggregationLogRepository
}

func NewAuditLogService(repo *db.PostgresAggregationLogRepository) *AuditLogService {
	return &AuditLogService{
		aggregationLogRepo: repo,
	}
}

func (s *AuditLogService) Append(
	ctx context.Context,
	postID string,
	origin models.Origin,
	remoteID string,
	decision models.AggregationDecision,
	authorHandle string,
) error {
	log.Printf("📋 Appending aggregation log entry: post %s, origin %s, remote id %s, decision %s",
		postID, origin, remoteID, decision)

	if !core.IsValidULID(postID) {
		return fmt.Errorf("post ID must be a valid ULID")
	}
	if remoteID == "" {
		return fmt.Errorf("remote_id cannot be empty")
	}

	entry := &models.AggregationLogEntry{
		ID:           core.NewID("al"),
		PostID:       postID,
		Origin:       origin,
		RemoteID:     remoteID,
		Decision:     decision,
		AuthorHandle: authorHandle,
	}

	if err := s.aggregationLogRepo.InsertAggregationLogEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to append aggregation log entry: %w", err)
	}

	return nil
}

func (s *AuditLogService) GetEntriesByPostID(
	ctx context.Context,
	postID string,
	limit int,
) ([]*models.AggregationLogEntry, error) {
	log.Printf("📋 Starting to get aggregation log entries for post: %s", postID)

	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}
	if limit <= 0 {
		limit = 100
	}

	entries, err := s.aggregationLogRepo.GetAggregationLogByPostID(ctx, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregation log entries: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d log entries", len(entries))
	return entries, nil
}
