package aggregation

import (
	"context"
	"sync"

	"github.com/samber/mo"

	"socialsync/clients/twitter"
	"socialsync/models"
	"socialsync/services"
)

// StatusFetcher is the remote-API surface the engine consumes. Implemented by
// clients/twitter.Client.
type StatusFetcher interface {
	Search(ctx context.Context, terms []string) ([]twitter.SearchResult, error)
	Retweets(ctx context.Context, statusID string) ([]twitter.Status, error)
	Mentions(ctx context.Context, sinceID string, count int) ([]twitter.Status, error)
	Show(ctx context.Context, statusID string) (*twitter.Status, error)
}

// AggregationUseCaseInterface is the surface handlers and the background
// scheduler depend on.
type AggregationUseCaseInterface interface {
	RunPass(ctx context.Context, postID string) error
	ImportStatus(ctx context.Context, postID, urlOrID string) (mo.Option[*models.IngestedComment], error)
}

// AggregationUseCase folds remote activity about tracked posts into their
// comment threads, exactly once per remote status id.
type AggregationUseCase struct {
	fetcher             StatusFetcher
	trackedPostsService services.TrackedPostsService
	commentsService     services.CommentsService
	auditLogService     services.AuditLogService
	txManager           services.TransactionManager
	fetchWorkers        int

	// One mutex per post: ledger reads, comment upserts and aggregated-set
	// writes for a single post must not interleave across passes. Posts never
	// share ledger state, so no global lock.
	postLocks sync.Map
}

func NewAggregationUseCase(
	fetcher StatusFetcher,
	trackedPostsService services.TrackedPostsService,
	commentsService services.CommentsService,
	auditLogService services.AuditLogService,
	txManager services.TransactionManager,
	fetchWorkers int,
) *AggregationUseCase {
	if fetchWorkers <= 0 {
		fetchWorkers = 4
	}
	return &AggregationUseCase{
		fetcher:             fetcher,
		trackedPostsService: trackedPostsService,
		commentsService:     commentsService,
		auditLogService:     auditLogService,
		txManager:           txManager,
		fetchWorkers:        fetchWorkers,
	}
}

func (u *AggregationUseCase) lockPost(postID string) func() {
	v, _ := u.postLocks.LoadOrStore(postID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
