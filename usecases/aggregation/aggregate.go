package aggregation

import (
	"context"
	"fmt"
	"log"

	"github.com/gammazero/workerpool"
	"github.com/samber/mo"

	"socialsync/models"
	"socialsync/utils"
)

// RunPass executes one full aggregation pass for a tracked post: fetch,
// classify, persist, reconcile. A failure in one source never aborts the
// others; only a missing post or a ledger-load failure fails the pass.
func (u *AggregationUseCase) RunPass(ctx context.Context, postID string) error {
	log.Printf("📋 Starting aggregation pass for post: %s", postID)

	unlock := u.lockPost(postID)
	defer unlock()

	maybePost, err := u.trackedPostsService.GetTrackedPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get tracked post: %w", err)
	}
	if !maybePost.IsPresent() {
		return fmt.Errorf("tracked post not found: %s", postID)
	}
	post := maybePost.MustGet()

	state, err := u.loadPassState(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to load pass state: %w", err)
	}

	netNew, err := u.aggregate(ctx, state, nil)
	if err != nil {
		return fmt.Errorf("failed to aggregate: %w", err)
	}

	if len(netNew) == 0 {
		log.Printf("📋 Completed successfully - no new statuses for post %s", post.ID)
		return nil
	}

	persisted := u.saveAggregated(ctx, post.ID, netNew)
	log.Printf("📋 Completed successfully - pass for post %s persisted %d of %d new statuses",
		post.ID, len(persisted), len(netNew))
	return nil
}

// ImportStatus ingests one externally supplied status (pasted URL or bare id)
// through the same classify-persist-reconcile path as a regular pass. Returns
// None when the status was a duplicate or a self-echo.
func (u *AggregationUseCase) ImportStatus(
	ctx context.Context,
	postID, urlOrID string,
) (mo.Option[*models.IngestedComment], error) {
	log.Printf("📋 Starting direct import for post: %s, input: %s", postID, urlOrID)

	remoteID := utils.ExtractStatusID(urlOrID)
	if remoteID == "" {
		return mo.None[*models.IngestedComment](), fmt.Errorf("could not extract status id from %q", urlOrID)
	}

	unlock := u.lockPost(postID)
	defer unlock()

	maybePost, err := u.trackedPostsService.GetTrackedPostByID(ctx, postID)
	if err != nil {
		return mo.None[*models.IngestedComment](), fmt.Errorf("failed to get tracked post: %w", err)
	}
	if !maybePost.IsPresent() {
		return mo.None[*models.IngestedComment](), fmt.Errorf("tracked post not found: %s", postID)
	}
	post := maybePost.MustGet()

	state, err := u.loadPassState(ctx, post)
	if err != nil {
		return mo.None[*models.IngestedComment](), fmt.Errorf("failed to load pass state: %w", err)
	}

	strategy := u.importStrategy(remoteID)
	statuses, err := strategy.fetch(ctx)
	if err != nil {
		return mo.None[*models.IngestedComment](), fmt.Errorf("failed to fetch status %s: %w", remoteID, err)
	}

	u.classify(ctx, state, strategy, statuses)

	netNew := state.NetNew()
	if len(netNew) == 0 {
		log.Printf("📋 Completed successfully - status %s already known for post %s", remoteID, post.ID)
		return mo.None[*models.IngestedComment](), nil
	}

	persisted := u.saveAggregated(ctx, post.ID, netNew)
	if len(persisted) == 0 {
		return mo.None[*models.IngestedComment](), fmt.Errorf("failed to persist imported status %s", remoteID)
	}

	log.Printf("📋 Completed successfully - imported status %s as comment %s", remoteID, persisted[0].ID)
	return mo.Some(persisted[0]), nil
}

func (u *AggregationUseCase) loadPassState(
	ctx context.Context,
	post *models.TrackedPost,
) (*PassState, error) {
	broadcasts, err := u.trackedPostsService.GetBroadcastedStatuses(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get broadcasted statuses: %w", err)
	}

	aggregatedIDs, err := u.trackedPostsService.GetAggregatedIDs(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregated ids: %w", err)
	}

	return NewPassState(post, broadcasts, aggregatedIDs), nil
}

// aggregate runs the pass's strategies concurrently on a bounded pool, then
// classifies results strictly in strategy order so that the origin tag of a
// same-pass duplicate is deterministic regardless of fetch completion order.
func (u *AggregationUseCase) aggregate(
	ctx context.Context,
	state *PassState,
	directIDs []string,
) ([]*models.RemoteStatus, error) {
	post := state.Post()
	strategies := u.buildStrategies(post, state, directIDs)

	results := make([][]*models.RemoteStatus, len(strategies))
	fetchErrs := make([]error, len(strategies))

	wp := workerpool.New(u.fetchWorkers)
	for i := range strategies {
		i := i
		strategy := strategies[i]
		wp.Submit(func() {
			results[i], fetchErrs[i] = strategy.fetch(ctx)
		})
	}
	wp.StopWait()

	for i, strategy := range strategies {
		if fetchErrs[i] != nil {
			// Soft failure: this strategy is dropped, the pass continues
			log.Printf("⚠️ %s failed for post %s: %v", strategy.name, post.ID, fetchErrs[i])
			continue
		}
		u.classify(ctx, state, strategy, results[i])
	}

	return state.NetNew(), nil
}

func (u *AggregationUseCase) classify(
	ctx context.Context,
	state *PassState,
	strategy fetchStrategy,
	statuses []*models.RemoteStatus,
) {
	post := state.Post()
	for _, status := range statuses {
		switch state.Classify(status.RemoteID) {
		case ClassificationSelfEcho:
			u.appendAuditLog(ctx, post.ID, strategy.origin, status, models.DecisionSelfEcho)
		case ClassificationAlreadyAggregated:
			u.appendAuditLog(ctx, post.ID, strategy.origin, status, models.DecisionDuplicate)
		case ClassificationNew:
			state.Accept(status)
			u.appendAuditLog(ctx, post.ID, strategy.origin, status, models.DecisionAccepted)
		}
	}
}

// appendAuditLog records one decision. The log is diagnostics only, so a
// write failure never alters the pass.
func (u *AggregationUseCase) appendAuditLog(
	ctx context.Context,
	postID string,
	origin models.Origin,
	status *models.RemoteStatus,
	decision models.AggregationDecision,
) {
	err := u.auditLogService.Append(ctx, postID, origin, status.RemoteID, decision, status.AuthorHandle)
	if err != nil {
		log.Printf("⚠️ Failed to append aggregation log entry for status %s: %v", status.RemoteID, err)
	}
}

type pendingReply struct {
	commentID string
	inReplyTo string
}

// saveAggregated persists each net-new status and marks it aggregated inside
// one transaction, so a crash leaves either both or neither: an id is never
// marked aggregated before its comment is durably stored. One failed status
// does not block the rest of the batch. Reconciliation runs once over the
// whole batch afterwards.
func (u *AggregationUseCase) saveAggregated(
	ctx context.Context,
	postID string,
	statuses []*models.RemoteStatus,
) []*models.IngestedComment {
	persisted := make([]*models.IngestedComment, 0, len(statuses))
	pending := make([]pendingReply, 0, len(statuses))

	for _, status := range statuses {
		var comment *models.IngestedComment
		err := u.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			upserted, err := u.commentsService.UpsertComment(txCtx, postID, status)
			if err != nil {
				return fmt.Errorf("failed to upsert comment: %w", err)
			}
			if err := u.trackedPostsService.MarkAggregated(txCtx, postID, status.RemoteID); err != nil {
				return fmt.Errorf("failed to mark aggregated: %w", err)
			}
			comment = upserted
			return nil
		})
		if err != nil {
			log.Printf("❌ Failed to persist status %s for post %s: %v", status.RemoteID, postID, err)
			continue
		}

		persisted = append(persisted, comment)
		if status.InReplyToID != "" {
			pending = append(pending, pendingReply{commentID: comment.ID, inReplyTo: status.InReplyToID})
		}
	}

	if err := u.reconcile(ctx, postID, pending); err != nil {
		// Comments are already durable; missing parent links are the only cost
		log.Printf("❌ Failed to reconcile reply threading for post %s: %v", postID, err)
	}

	return persisted
}

// reconcile resolves in-reply-to back-references for a freshly persisted
// batch: one batched lookup for all targets, one batched update per resolved
// parent. Targets that were never imported stay parent-less; that is expected
// steady state, not a fault.
func (u *AggregationUseCase) reconcile(ctx context.Context, postID string, pending []pendingReply) error {
	if len(pending) == 0 {
		return nil
	}

	childrenByTarget := make(map[string][]string)
	targets := make([]string, 0, len(pending))
	for _, p := range pending {
		if _, seen := childrenByTarget[p.inReplyTo]; !seen {
			targets = append(targets, p.inReplyTo)
		}
		childrenByTarget[p.inReplyTo] = append(childrenByTarget[p.inReplyTo], p.commentID)
	}

	return u.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		found, err := u.commentsService.FindByRemoteIDs(txCtx, postID, targets)
		if err != nil {
			return fmt.Errorf("failed to resolve reply targets: %w", err)
		}

		for _, target := range targets {
			parentID, ok := found[target]
			if !ok {
				log.Printf("📋 Reply target %s not imported for post %s; %d comments stay parent-less",
					target, postID, len(childrenByTarget[target]))
				continue
			}
			if err := u.commentsService.SetParentForComments(txCtx, postID, parentID, childrenByTarget[target]); err != nil {
				return fmt.Errorf("failed to set parent: %w", err)
			}
		}
		return nil
	})
}
