package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"socialsync/models"
)

func newTestPassState(selfIDs, aggregatedIDs []string) *PassState {
	post := &models.TrackedPost{ID: "tp_1", Title: "A Post", Permalink: "https://blog.example.com/a-post"}
	broadcasts := make([]*models.BroadcastedStatus, 0, len(selfIDs))
	for _, id := range selfIDs {
		broadcasts = append(broadcasts, &models.BroadcastedStatus{
			ID:        "b_" + id,
			PostID:    post.ID,
			AccountID: "acct-1",
			RemoteID:  id,
		})
	}
	return NewPassState(post, broadcasts, aggregatedIDs)
}

func testStatus(remoteID string, origin models.Origin) *models.RemoteStatus {
	return &models.RemoteStatus{
		RemoteID:     remoteID,
		Origin:       origin,
		AuthorHandle: "someone",
		Body:         "a status",
	}
}

func TestPassStateClassify(t *testing.T) {
	t.Run("NewID", func(t *testing.T) {
		state := newTestPassState([]string{"100"}, []string{"101"})
		assert.Equal(t, ClassificationNew, state.Classify("102"))
	})

	t.Run("AlreadyAggregated", func(t *testing.T) {
		state := newTestPassState([]string{"100"}, []string{"101"})
		assert.Equal(t, ClassificationAlreadyAggregated, state.Classify("101"))
	})

	t.Run("SelfEcho", func(t *testing.T) {
		state := newTestPassState([]string{"100"}, []string{"101"})
		assert.Equal(t, ClassificationSelfEcho, state.Classify("100"))
	})

	t.Run("SelfEchoWinsOverAggregated", func(t *testing.T) {
		// A self id should classify as self-echo even if it somehow entered
		// the aggregated set; the self check runs first.
		state := newTestPassState([]string{"100"}, []string{"100"})
		assert.Equal(t, ClassificationSelfEcho, state.Classify("100"))
	})

	t.Run("SamePassDuplicateCollapses", func(t *testing.T) {
		state := newTestPassState(nil, nil)
		assert.Equal(t, ClassificationNew, state.Classify("200"))

		state.Accept(testStatus("200", models.OriginSearch))

		assert.Equal(t, ClassificationAlreadyAggregated, state.Classify("200"))
	})
}

func TestPassStateAccept(t *testing.T) {
	t.Run("FirstAcceptanceWins", func(t *testing.T) {
		state := newTestPassState(nil, nil)

		state.Accept(testStatus("200", models.OriginSearch))
		state.Accept(testStatus("200", models.OriginMention))

		netNew := state.NetNew()
		assert.Len(t, netNew, 1)
		assert.Equal(t, models.OriginSearch, netNew[0].Origin)
	})

	t.Run("PreservesAcceptanceOrder", func(t *testing.T) {
		state := newTestPassState(nil, nil)

		state.Accept(testStatus("300", models.OriginSearch))
		state.Accept(testStatus("100", models.OriginRetweet))
		state.Accept(testStatus("200", models.OriginMention))

		netNew := state.NetNew()
		assert.Len(t, netNew, 3)
		assert.Equal(t, "300", netNew[0].RemoteID)
		assert.Equal(t, "100", netNew[1].RemoteID)
		assert.Equal(t, "200", netNew[2].RemoteID)
	})
}

func TestPassStateAccountBroadcasts(t *testing.T) {
	t.Run("SortedByAccountThenRemoteID", func(t *testing.T) {
		post := &models.TrackedPost{ID: "tp_1"}
		state := NewPassState(post, []*models.BroadcastedStatus{
			{AccountID: "acct-b", RemoteID: "20"},
			{AccountID: "acct-a", RemoteID: "30"},
			{AccountID: "acct-a", RemoteID: "10"},
		}, nil)

		broadcasts := state.AccountBroadcasts()
		assert.Equal(t, []AccountBroadcast{
			{AccountID: "acct-a", RemoteID: "10"},
			{AccountID: "acct-a", RemoteID: "30"},
			{AccountID: "acct-b", RemoteID: "20"},
		}, broadcasts)
	})

	t.Run("EmptyWithoutBroadcasts", func(t *testing.T) {
		state := newTestPassState(nil, nil)
		assert.Empty(t, state.AccountBroadcasts())
	})
}
