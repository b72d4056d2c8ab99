package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"socialsync/models"
)

// MockTrackedPostsService is a mock implementation of TrackedPostsService
type MockTrackedPostsService struct {
	mock.Mock
}

func (m *MockTrackedPostsService) CreateTrackedPost(
	ctx context.Context,
	title, permalink string,
) (*models.TrackedPost, error) {
	args := m.Called(ctx, title, permalink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackedPost), args.Error(1)
}

func (m *MockTrackedPostsService) GetTrackedPostByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.TrackedPost], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.TrackedPost]), args.Error(1)
}

func (m *MockTrackedPostsService) ListTrackedPostIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTrackedPostsService) RecordBroadcast(
	ctx context.Context,
	postID, accountID, remoteID string,
) (*models.BroadcastedStatus, error) {
	args := m.Called(ctx, postID, accountID, remoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BroadcastedStatus), args.Error(1)
}

func (m *MockTrackedPostsService) GetBroadcastedStatuses(
	ctx context.Context,
	postID string,
) ([]*models.BroadcastedStatus, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BroadcastedStatus), args.Error(1)
}

func (m *MockTrackedPostsService) GetAggregatedIDs(ctx context.Context, postID string) ([]string, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTrackedPostsService) MarkAggregated(ctx context.Context, postID, remoteID string) error {
	args := m.Called(ctx, postID, remoteID)
	return args.Error(0)
}

// MockCommentsService is a mock implementation of CommentsService
type MockCommentsService struct {
	mock.Mock
}

func (m *MockCommentsService) UpsertComment(
	ctx context.Context,
	postID string,
	status *models.RemoteStatus,
) (*models.IngestedComment, error) {
	args := m.Called(ctx, postID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IngestedComment), args.Error(1)
}

func (m *MockCommentsService) FindByRemoteIDs(
	ctx context.Context,
	postID string,
	remoteIDs []string,
) (map[string]string, error) {
	args := m.Called(ctx, postID, remoteIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCommentsService) SetParentForComments(
	ctx context.Context,
	postID, parentID string,
	commentIDs []string,
) error {
	args := m.Called(ctx, postID, parentID, commentIDs)
	return args.Error(0)
}

func (m *MockCommentsService) GetCommentsByPostID(
	ctx context.Context,
	postID string,
) ([]*models.IngestedComment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.IngestedComment), args.Error(1)
}

// MockAuditLogService is a mock implementation of AuditLogService
type MockAuditLogService struct {
	mock.Mock
}

func (m *MockAuditLogService) Append(
	ctx context.Context,
	postID string,
	origin models.Origin,
	remoteID string,
	decision models.AggregationDecision,
	authorHandle string,
) error {
	args := m.Called(ctx, postID, origin, remoteID, decision, authorHandle)
	return args.Error(0)
}

func (m *MockAuditLogService) GetEntriesByPostID(
	ctx context.Context,
	postID string,
	limit int,
) ([]*models.AggregationLogEntry, error) {
	args := m.Called(ctx, postID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AggregationLogEntry), args.Error(1)
}
