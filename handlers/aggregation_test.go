package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialsync/core"
	"socialsync/models"
	"socialsync/services"
	"socialsync/usecases/aggregation"
)

type handlerFixture struct {
	usecase      *aggregation.MockAggregationUseCase
	trackedPosts *services.MockTrackedPostsService
	comments     *services.MockCommentsService
	auditLog     *services.MockAuditLogService
	router       *mux.Router
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		usecase:      new(aggregation.MockAggregationUseCase),
		trackedPosts: new(services.MockTrackedPostsService),
		comments:     new(services.MockCommentsService),
		auditLog:     new(services.MockAuditLogService),
		router:       mux.NewRouter(),
	}
	handler := NewAggregationHTTPHandler(f.usecase, f.trackedPosts, f.comments, f.auditLog)
	handler.SetupEndpoints(f.router)
	return f
}

func (f *handlerFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreatePost(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		post := &models.TrackedPost{ID: core.NewID("tp"), Title: "Post", Permalink: "https://blog.example.com/post"}
		f.trackedPosts.On("CreateTrackedPost", mock.Anything, "Post", "https://blog.example.com/post").
			Return(post, nil)

		rec := f.do(http.MethodPost, "/posts", CreatePostRequest{
			Title:     "Post",
			Permalink: "https://blog.example.com/post",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got models.TrackedPost
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, post.ID, got.ID)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		f := newHandlerFixture()

		rec := f.do(http.MethodPost, "/posts", CreatePostRequest{Permalink: "https://blog.example.com/post"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.trackedPosts.AssertNotCalled(t, "CreateTrackedPost", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleRunPass(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		f.usecase.On("RunPass", mock.Anything, postID).Return(nil)

		rec := f.do(http.MethodPost, "/posts/"+postID+"/aggregate", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.usecase.AssertExpectations(t)
	})

	t.Run("PostNotFound", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		f.usecase.On("RunPass", mock.Anything, postID).
			Return(fmt.Errorf("tracked post not found: %s", postID))

		rec := f.do(http.MethodPost, "/posts/"+postID+"/aggregate", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidPostID", func(t *testing.T) {
		f := newHandlerFixture()

		rec := f.do(http.MethodPost, "/posts/not-a-ulid/aggregate", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.usecase.AssertNotCalled(t, "RunPass", mock.Anything, mock.Anything)
	})
}

func TestHandleImportStatus(t *testing.T) {
	t.Run("ImportsNewStatus", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		comment := &models.IngestedComment{ID: core.NewID("ic"), PostID: postID, RemoteID: "210462857140252672"}
		f.usecase.On("ImportStatus", mock.Anything, postID, "https://twitter.com/u/status/210462857140252672").
			Return(mo.Some(comment), nil)

		rec := f.do(http.MethodPost, "/posts/"+postID+"/import", ImportStatusRequest{
			URL: "https://twitter.com/u/status/210462857140252672",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got models.IngestedComment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, comment.ID, got.ID)
	})

	t.Run("DuplicateReturnsOK", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		f.usecase.On("ImportStatus", mock.Anything, postID, "12345").
			Return(mo.None[*models.IngestedComment](), nil)

		rec := f.do(http.MethodPost, "/posts/"+postID+"/import", ImportStatusRequest{URL: "12345"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "already aggregated")
	})

	t.Run("MissingURL", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")

		rec := f.do(http.MethodPost, "/posts/"+postID+"/import", ImportStatusRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.usecase.AssertNotCalled(t, "ImportStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnextractableURL", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		f.usecase.On("ImportStatus", mock.Anything, postID, "https://twitter.com/").
			Return(mo.None[*models.IngestedComment](), fmt.Errorf("could not extract status id from %q", "https://twitter.com/"))

		rec := f.do(http.MethodPost, "/posts/"+postID+"/import", ImportStatusRequest{URL: "https://twitter.com/"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetComments(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		comments := []*models.IngestedComment{
			{
				ID:        core.NewID("ic"),
				PostID:    postID,
				RemoteID:  "101",
				RemoteURL: "https://twitter.com/commenter/status/101",
			},
		}
		f.comments.On("GetCommentsByPostID", mock.Anything, postID).Return(comments, nil)

		rec := f.do(http.MethodGet, "/posts/"+postID+"/comments", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []*models.IngestedComment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "https://twitter.com/commenter/status/101", got[0].RemoteURL)
	})
}

func TestHandleGetAggregationLog(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		entries := []*models.AggregationLogEntry{
			{ID: core.NewID("al"), PostID: postID, RemoteID: "101", Decision: models.DecisionAccepted},
		}
		f.auditLog.On("GetEntriesByPostID", mock.Anything, postID, 100).Return(entries, nil)

		rec := f.do(http.MethodGet, "/posts/"+postID+"/aggregation-log", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []*models.AggregationLogEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "101", got[0].RemoteID)
	})

	t.Run("ServiceFailure", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		f.auditLog.On("GetEntriesByPostID", mock.Anything, postID, 100).
			Return(nil, fmt.Errorf("connection refused"))

		rec := f.do(http.MethodGet, "/posts/"+postID+"/aggregation-log", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleRecordBroadcast(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")
		broadcast := &models.BroadcastedStatus{ID: core.NewID("b"), PostID: postID, AccountID: "acct-1", RemoteID: "100"}
		f.trackedPosts.On("RecordBroadcast", mock.Anything, postID, "acct-1", "100").
			Return(broadcast, nil)

		rec := f.do(http.MethodPost, "/posts/"+postID+"/broadcasts", RecordBroadcastRequest{
			AccountID: "acct-1",
			RemoteID:  "100",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("MissingRemoteID", func(t *testing.T) {
		f := newHandlerFixture()
		postID := core.NewID("tp")

		rec := f.do(http.MethodPost, "/posts/"+postID+"/broadcasts", RecordBroadcastRequest{AccountID: "acct-1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.trackedPosts.AssertNotCalled(t, "RecordBroadcast",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
