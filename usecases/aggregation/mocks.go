package aggregation

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"socialsync/clients/twitter"
	"socialsync/models"
)

// MockStatusFetcher is a mock implementation of StatusFetcher
type MockStatusFetcher struct {
	mock.Mock
}

func (m *MockStatusFetcher) Search(ctx context.Context, terms []string) ([]twitter.SearchResult, error) {
	args := m.Called(ctx, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]twitter.SearchResult), args.Error(1)
}

func (m *MockStatusFetcher) Retweets(ctx context.Context, statusID string) ([]twitter.Status, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]twitter.Status), args.Error(1)
}

func (m *MockStatusFetcher) Mentions(ctx context.Context, sinceID string, count int) ([]twitter.Status, error) {
	args := m.Called(ctx, sinceID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]twitter.Status), args.Error(1)
}

func (m *MockStatusFetcher) Show(ctx context.Context, statusID string) (*twitter.Status, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*twitter.Status), args.Error(1)
}

// MockAggregationUseCase is a mock implementation of AggregationUseCaseInterface
type MockAggregationUseCase struct {
	mock.Mock
}

func (m *MockAggregationUseCase) RunPass(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockAggregationUseCase) ImportStatus(
	ctx context.Context,
	postID, urlOrID string,
) (mo.Option[*models.IngestedComment], error) {
	args := m.Called(ctx, postID, urlOrID)
	return args.Get(0).(mo.Option[*models.IngestedComment]), args.Error(1)
}
