package aggregation

import (
	"sort"

	"socialsync/models"
)

// Classification is the dedup ledger's verdict on one candidate remote id.
type Classification string

const (
	ClassificationNew               Classification = "NEW"
	ClassificationAlreadyAggregated Classification = "ALREADY_AGGREGATED"
	ClassificationSelfEcho          Classification = "SELF_ECHO"
)

// AccountBroadcast pairs an account with the remote id its own broadcast of
// the post produced.
type AccountBroadcast struct {
	AccountID string
	RemoteID  string
}

// PassState is one post's dedup ledger loaded for a single aggregation pass:
// the post's self-broadcast ids, its already-aggregated id set, and the
// transient net-new map that exists only for the duration of the pass.
//
// Classification is side-effect free; committing an id to the durable
// aggregated set happens through TrackedPostsService.MarkAggregated, after
// persistence, never here.
type PassState struct {
	post             *models.TrackedPost
	broadcasts       []AccountBroadcast
	selfBroadcastIDs map[string]struct{}
	aggregatedIDs    map[string]struct{}
	netNew           map[string]*models.RemoteStatus
	netNewOrder      []string
}

func NewPassState(
	post *models.TrackedPost,
	broadcasts []*models.BroadcastedStatus,
	aggregatedIDs []string,
) *PassState {
	state := &PassState{
		post:             post,
		selfBroadcastIDs: make(map[string]struct{}, len(broadcasts)),
		aggregatedIDs:    make(map[string]struct{}, len(aggregatedIDs)),
		netNew:           make(map[string]*models.RemoteStatus),
	}

	for _, b := range broadcasts {
		state.selfBroadcastIDs[b.RemoteID] = struct{}{}
		state.broadcasts = append(state.broadcasts, AccountBroadcast{
			AccountID: b.AccountID,
			RemoteID:  b.RemoteID,
		})
	}
	// Fixed account order keeps strategy ordering reproducible across runs
	sort.Slice(state.broadcasts, func(i, j int) bool {
		if state.broadcasts[i].AccountID != state.broadcasts[j].AccountID {
			return state.broadcasts[i].AccountID < state.broadcasts[j].AccountID
		}
		return state.broadcasts[i].RemoteID < state.broadcasts[j].RemoteID
	})

	for _, id := range aggregatedIDs {
		state.aggregatedIDs[id] = struct{}{}
	}

	return state
}

func (s *PassState) Post() *models.TrackedPost {
	return s.post
}

// AccountBroadcasts returns the post's own broadcasts in fixed account order.
func (s *PassState) AccountBroadcasts() []AccountBroadcast {
	return s.broadcasts
}

// Classify answers whether a remote id is net-new for this post. The
// self-broadcast set is checked first: self ids are never recorded as
// aggregated, so they must be caught before the aggregated-set lookup.
// Ids already accepted earlier in this same pass classify as duplicates,
// collapsing the case where two strategies surface the same status.
func (s *PassState) Classify(remoteID string) Classification {
	if _, ok := s.selfBroadcastIDs[remoteID]; ok {
		return ClassificationSelfEcho
	}
	if _, ok := s.aggregatedIDs[remoteID]; ok {
		return ClassificationAlreadyAggregated
	}
	if _, ok := s.netNew[remoteID]; ok {
		return ClassificationAlreadyAggregated
	}
	return ClassificationNew
}

// Accept adds a status to the pass's net-new set. First acceptance wins; the
// origin tag of the first encounter is retained.
func (s *PassState) Accept(status *models.RemoteStatus) {
	if _, ok := s.netNew[status.RemoteID]; ok {
		return
	}
	s.netNew[status.RemoteID] = status
	s.netNewOrder = append(s.netNewOrder, status.RemoteID)
}

// NetNew returns accepted statuses in acceptance order.
func (s *PassState) NetNew() []*models.RemoteStatus {
	statuses := make([]*models.RemoteStatus, 0, len(s.netNewOrder))
	for _, id := range s.netNewOrder {
		statuses = append(statuses, s.netNew[id])
	}
	return statuses
}
