package trackedposts

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"socialsync/core"
	"socialsync/db"
	"socialsync/models"
)

type TrackedPostsService struct {
	trackedPostsRepo *db.PostgresTrackedPostsRepository
}

func NewTrackedPostsService(repo *db.PostgresTrackedPostsRepository) *TrackedPostsService {
	return &TrackedPostsService{
		trackedPostsRepo: repo,
	}
}

func (s *TrackedPostsService) CreateTrackedPost(
	ctx context.Context,
	title, permalink string,
) (*models.TrackedPost, error) {
	log.Printf("📋 Starting to create tracked post: %s", permalink)

	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if permalink == "" {
		return nil, fmt.Errorf("permalink cannot be empty")
	}

	post := &models.TrackedPost{
		ID:        core.NewID("tp"),
		Title:     title,
		Permalink: permalink,
	}

	if err := s.trackedPostsRepo.CreateTrackedPost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create tracked post: %w", err)
	}

	log.Printf("📋 Completed successfully - created tracked post with ID: %s", post.ID)
	return post, nil
}

func (s *TrackedPostsService) GetTrackedPostByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.TrackedPost], error) {
	log.Printf("📋 Starting to get tracked post by ID: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.TrackedPost](), fmt.Errorf("tracked post ID must be a valid ULID")
	}

	maybePost, err := s.trackedPostsRepo.GetTrackedPostByID(ctx, id)
	if err != nil {
		return mo.None[*models.TrackedPost](), fmt.Errorf("failed to get tracked post: %w", err)
	}
	if !maybePost.IsPresent() {
		log.Printf("📋 Completed successfully - tracked post not found")
		return mo.None[*models.TrackedPost](), nil
	}

	log.Printf("📋 Completed successfully - retrieved tracked post with ID: %s", id)
	return maybePost, nil
}

func (s *TrackedPostsService) ListTrackedPostIDs(ctx context.Context) ([]string, error) {
	log.Printf("📋 Starting to list tracked post IDs")

	ids, err := s.trackedPostsRepo.ListTrackedPostIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked post ids: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d tracked posts", len(ids))
	return ids, nil
}

func (s *TrackedPostsService) RecordBroadcast(
	ctx context.Context,
	postID, accountID, remoteID string,
) (*models.BroadcastedStatus, error) {
	log.Printf("📋 Starting to record broadcast for post: %s, account: %s, remote id: %s", postID, accountID, remoteID)

	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}
	if accountID == "" {
		return nil, fmt.Errorf("account_id cannot be empty")
	}
	if remoteID == "" {
		return nil, fmt.Errorf("remote_id cannot be empty")
	}

	broadcast := &models.BroadcastedStatus{
		ID:        core.NewID("b"),
		PostID:    postID,
		AccountID: accountID,
		RemoteID:  remoteID,
	}

	if err := s.trackedPostsRepo.InsertBroadcastedStatus(ctx, broadcast); err != nil {
		return nil, fmt.Errorf("failed to record broadcast: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded broadcast with ID: %s", broadcast.ID)
	return broadcast, nil
}

func (s *TrackedPostsService) GetBroadcastedStatuses(
	ctx context.Context,
	postID string,
) ([]*models.BroadcastedStatus, error) {
	log.Printf("📋 Starting to get broadcasted statuses for post: %s", postID)
	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}

	broadcasts, err := s.trackedPostsRepo.GetBroadcastedStatusesByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get broadcasted statuses: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d broadcasted statuses", len(broadcasts))
	return broadcasts, nil
}

func (s *TrackedPostsService) GetAggregatedIDs(ctx context.Context, postID string) ([]string, error) {
	log.Printf("📋 Starting to get aggregated ids for post: %s", postID)
	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}

	remoteIDs, err := s.trackedPostsRepo.GetAggregatedIDsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregated ids: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d aggregated ids", len(remoteIDs))
	return remoteIDs, nil
}

func (s *TrackedPostsService) MarkAggregated(ctx context.Context, postID, remoteID string) error {
	log.Printf("📋 Starting to mark remote id %s as aggregated for post: %s", remoteID, postID)

	if !core.IsValidULID(postID) {
		return fmt.Errorf("post ID must be a valid ULID")
	}
	if remoteID == "" {
		return fmt.Errorf("remote_id cannot be empty")
	}

	if err := s.trackedPostsRepo.InsertAggregatedID(ctx, postID, remoteID); err != nil {
		return fmt.Errorf("failed to mark aggregated: %w", err)
	}

	log.Printf("📋 Completed successfully - marked remote id %s as aggregated", remoteID)
	return nil
}
