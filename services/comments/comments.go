package comments

import (
	"context"
	"fmt"
	"log"

	"socialsync/core"
	"socialsync/db"
	"socialsync/models"
)

type CommentsService struct {
	ingestedCommentsRepo *db.PostgresIngestedCommentsRepository
}

func NewCommentsService(repo *db.PostgresIngestedCommentsRepository) *CommentsService {
	return &CommentsService{
		ingestedCommentsRepo: repo,
	}
}

func (s *CommentsService) UpsertComment(
	ctx context.Context,
	postID string,
	status *models.RemoteStatus,
) (*models.IngestedComment, error) {
	log.Printf("📋 Starting to upsert comment for post: %s, remote id: %s", postID, status.RemoteID)

	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}
	if status.RemoteID == "" {
		return nil, fmt.Errorf("remote_id cannot be empty")
	}
	if status.AuthorHandle == "" {
		return nil, fmt.Errorf("author_handle cannot be empty")
	}

	comment := &models.IngestedComment{
		ID:              core.NewID("ic"),
		PostID:          postID,
		RemoteID:        status.RemoteID,
		Origin:          status.Origin,
		AuthorRemoteID:  status.AuthorRemoteID,
		AuthorHandle:    status.AuthorHandle,
		AvatarURL:       status.AvatarURL,
		RemoteURL:       status.StatusURL,
		Body:            status.Body,
		RemoteCreatedAt: status.CreatedAt,
	}

	// On conflict the repo returns the existing row; comment.ID then carries
	// the original local id, not the freshly generated one.
	if err := s.ingestedCommentsRepo.UpsertIngestedComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to upsert comment: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted comment with ID: %s", comment.ID)
	return comment, nil
}

func (s *CommentsService) FindByRemoteIDs(
	ctx context.Context,
	postID string,
	remoteIDs []string,
) (map[string]string, error) {
	log.Printf("📋 Starting to find comments for post: %s by %d remote ids", postID, len(remoteIDs))

	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}

	found, err := s.ingestedCommentsRepo.FindCommentIDsByRemoteIDs(ctx, postID, remoteIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by remote ids: %w", err)
	}

	log.Printf("📋 Completed successfully - resolved %d of %d remote ids", len(found), len(remoteIDs))
	return found, nil
}

func (s *CommentsService) SetParentForComments(
	ctx context.Context,
	postID, parentID string,
	commentIDs []string,
) error {
	log.Printf("📋 Starting to set parent %s for %d comments", parentID, len(commentIDs))

	if !core.IsValidULID(postID) {
		return fmt.Errorf("post ID must be a valid ULID")
	}
	if !core.IsValidULID(parentID) {
		return fmt.Errorf("parent comment ID must be a valid ULID")
	}

	if err := s.ingestedCommentsRepo.SetParentForComments(ctx, postID, parentID, commentIDs); err != nil {
		return fmt.Errorf("failed to set parent for comments: %w", err)
	}

	log.Printf("📋 Completed successfully - set parent for %d comments", len(commentIDs))
	return nil
}

func (s *CommentsService) GetCommentsByPostID(
	ctx context.Context,
	postID string,
) ([]*models.IngestedComment, error) {
	log.Printf("📋 Starting to get comments for post: %s", postID)

	if !core.IsValidULID(postID) {
		return nil, fmt.Errorf("post ID must be a valid ULID")
	}

	comments, err := s.ingestedCommentsRepo.GetIngestedCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d comments", len(comments))
	return comments, nil
}
