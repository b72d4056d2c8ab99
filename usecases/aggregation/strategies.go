package aggregation

import (
	"context"
	"fmt"
	"log"

	"socialsync/clients/twitter"
	"socialsync/models"
)

// fetchStrategy is one retrieval mode for a single pass. fetch returns
// normalized candidates; malformed payloads are skipped inside fetch, a
// transport failure fails the whole strategy (and only that strategy).
type fetchStrategy struct {
	name   string
	origin models.Origin
	fetch  func(ctx context.Context) ([]*models.RemoteStatus, error)
}

// buildStrategies assembles the pass's strategies in fixed order: keyword
// search, per-account retweets, per-account mentions, then direct imports.
// The order is what makes same-pass duplicate collapse reproducible.
func (u *AggregationUseCase) buildStrategies(
	post *models.TrackedPost,
	state *PassState,
	directIDs []string,
) []fetchStrategy {
	strategies := []fetchStrategy{u.searchStrategy(post)}

	for _, broadcast := range state.AccountBroadcasts() {
		strategies = append(strategies, u.retweetsStrategy(broadcast))
	}
	for _, broadcast := range state.AccountBroadcasts() {
		strategies = append(strategies, u.mentionsStrategy(broadcast))
	}
	for _, remoteID := range directIDs {
		strategies = append(strategies, u.importStrategy(remoteID))
	}

	return strategies
}

func (u *AggregationUseCase) searchStrategy(post *models.TrackedPost) fetchStrategy {
	return fetchStrategy{
		name:   "keyword search",
		origin: models.OriginSearch,
		fetch: func(ctx context.Context) ([]*models.RemoteStatus, error) {
			results, err := u.fetcher.Search(ctx, []string{post.Permalink})
			if err != nil {
				return nil, fmt.Errorf("search fetch failed: %w", err)
			}

			statuses := make([]*models.RemoteStatus, 0, len(results))
			for _, result := range results {
				status, err := NormalizeSearchResult(result, models.OriginSearch)
				if err != nil {
					log.Printf("⚠️ Skipping search result for post %s: %v", post.ID, err)
					continue
				}
				statuses = append(statuses, status)
			}
			return statuses, nil
		},
	}
}

func (u *AggregationUseCase) retweetsStrategy(broadcast AccountBroadcast) fetchStrategy {
	return fetchStrategy{
		name:   fmt.Sprintf("retweets of %s (account %s)", broadcast.RemoteID, broadcast.AccountID),
		origin: models.OriginRetweet,
		fetch: func(ctx context.Context) ([]*models.RemoteStatus, error) {
			results, err := u.fetcher.Retweets(ctx, broadcast.RemoteID)
			if err != nil {
				return nil, fmt.Errorf("retweets fetch failed: %w", err)
			}
			return u.normalizeStatuses(results, models.OriginRetweet), nil
		},
	}
}

func (u *AggregationUseCase) mentionsStrategy(broadcast AccountBroadcast) fetchStrategy {
	return fetchStrategy{
		name:   fmt.Sprintf("mentions since %s (account %s)", broadcast.RemoteID, broadcast.AccountID),
		origin: models.OriginMention,
		fetch: func(ctx context.Context) ([]*models.RemoteStatus, error) {
			results, err := u.fetcher.Mentions(ctx, broadcast.RemoteID, twitter.MentionsPageSize)
			if err != nil {
				return nil, fmt.Errorf("mentions fetch failed: %w", err)
			}
			return u.normalizeStatuses(results, models.OriginMention), nil
		},
	}
}

func (u *AggregationUseCase) importStrategy(remoteID string) fetchStrategy {
	return fetchStrategy{
		name:   fmt.Sprintf("direct import of %s", remoteID),
		origin: models.OriginImport,
		fetch: func(ctx context.Context) ([]*models.RemoteStatus, error) {
			result, err := u.fetcher.Show(ctx, remoteID)
			if err != nil {
				return nil, fmt.Errorf("show fetch failed: %w", err)
			}

			status, err := NormalizeStatus(*result, models.OriginImport)
			if err != nil {
				log.Printf("⚠️ Skipping imported status %s: %v", remoteID, err)
				return nil, nil
			}
			return []*models.RemoteStatus{status}, nil
		},
	}
}

func (u *AggregationUseCase) normalizeStatuses(
	results []twitter.Status,
	origin models.Origin,
) []*models.RemoteStatus {
	statuses := make([]*models.RemoteStatus, 0, len(results))
	for _, result := range results {
		status, err := NormalizeStatus(result, origin)
		if err != nil {
			log.Printf("⚠️ Skipping %s payload: %v", origin, err)
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses
}
