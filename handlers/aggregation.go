package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"socialsync/core"
	"socialsync/services"
	"socialsync/usecases/aggregation"
)

// AggregationHTTPHandler exposes the aggregation engine over HTTP: trigger a
// pass, import a single status, and read the decision log.
type AggregationHTTPHandler struct {
	aggregationUseCase  aggregation.AggregationUseCaseInterface
	trackedPostsService services.TrackedPostsService
	commentsService     services.CommentsService
	auditLogService     services.AuditLogService
}

func NewAggregationHTTPHandler(
	aggregationUseCase aggregation.AggregationUseCaseInterface,
	trackedPostsService services.TrackedPostsService,
	commentsService services.CommentsService,
	auditLogService services.AuditLogService,
) *AggregationHTTPHandler {
	return &AggregationHTTPHandler{
		aggregationUseCase:  aggregationUseCase,
		trackedPostsService: trackedPostsService,
		commentsService:     commentsService,
		auditLogService:     auditLogService,
	}
}

type CreatePostRequest struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

type RecordBroadcastRequest struct {
	AccountID string `json:"account_id"`
	RemoteID  string `json:"remote_id"`
}

type ImportStatusRequest struct {
	URL string `json:"url"`
}

func (h *AggregationHTTPHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create tracked post request received from %s", r.RemoteAddr)

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		log.Printf("❌ Missing title in request")
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if req.Permalink == "" {
		log.Printf("❌ Missing permalink in request")
		http.Error(w, "permalink is required", http.StatusBadRequest)
		return
	}

	post, err := h.trackedPostsService.CreateTrackedPost(r.Context(), req.Title, req.Permalink)
	if err != nil {
		log.Printf("❌ Failed to create tracked post: %v", err)
		http.Error(w, "failed to create tracked post", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Tracked post created successfully: %s", post.ID)
	h.writeJSONResponse(w, http.StatusCreated, post)
}

func (h *AggregationHTTPHandler) HandleRecordBroadcast(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Record broadcast request received from %s", r.RemoteAddr)

	postID, ok := h.postIDFromPath(w, r)
	if !ok {
		return
	}

	var req RecordBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.AccountID == "" {
		log.Printf("❌ Missing account_id in request")
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}

	if req.RemoteID == "" {
		log.Printf("❌ Missing remote_id in request")
		http.Error(w, "remote_id is required", http.StatusBadRequest)
		return
	}

	broadcast, err := h.trackedPostsService.RecordBroadcast(r.Context(), postID, req.AccountID, req.RemoteID)
	if err != nil {
		log.Printf("❌ Failed to record broadcast: %v", err)
		if core.IsNotFoundError(err) {
			http.Error(w, "tracked post not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to record broadcast", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ Broadcast recorded successfully: %s", broadcast.ID)
	h.writeJSONResponse(w, http.StatusCreated, broadcast)
}

func (h *AggregationHTTPHandler) HandleRunPass(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔄 Run aggregation pass request received from %s", r.RemoteAddr)

	postID, ok := h.postIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.aggregationUseCase.RunPass(r.Context(), postID); err != nil {
		log.Printf("❌ Aggregation pass failed: %v", err)
		if core.IsNotFoundError(err) {
			http.Error(w, "tracked post not found", http.StatusNotFound)
		} else {
			http.Error(w, "aggregation pass failed", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ Aggregation pass completed for post: %s", postID)
	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": "aggregation pass completed",
	})
}

func (h *AggregationHTTPHandler) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Import status request received from %s", r.RemoteAddr)

	postID, ok := h.postIDFromPath(w, r)
	if !ok {
		return
	}

	var req ImportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		log.Printf("❌ Missing url in request")
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	maybeComment, err := h.aggregationUseCase.ImportStatus(r.Context(), postID, req.URL)
	if err != nil {
		log.Printf("❌ Failed to import status: %v", err)
		switch {
		case core.IsNotFoundError(err):
			http.Error(w, "tracked post not found", http.StatusNotFound)
		case strings.Contains(err.Error(), "could not extract status id"):
			http.Error(w, "url does not contain a status id", http.StatusBadRequest)
		default:
			http.Error(w, "failed to import status", http.StatusInternalServerError)
		}
		return
	}

	if !maybeComment.IsPresent() {
		log.Printf("✅ Status already known for post: %s", postID)
		h.writeJSONResponse(w, http.StatusOK, map[string]string{
			"message": "status already aggregated for this post",
		})
		return
	}

	comment := maybeComment.MustGet()
	log.Printf("✅ Status imported successfully as comment: %s", comment.ID)
	h.writeJSONResponse(w, http.StatusCreated, comment)
}

func (h *AggregationHTTPHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get comments request received from %s", r.RemoteAddr)

	postID, ok := h.postIDFromPath(w, r)
	if !ok {
		return
	}

	comments, err := h.commentsService.GetCommentsByPostID(r.Context(), postID)
	if err != nil {
		log.Printf("❌ Failed to get comments: %v", err)
		http.Error(w, "failed to get comments", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Retrieved %d comments for post: %s", len(comments), postID)
	h.writeJSONResponse(w, http.StatusOK, comments)
}

func (h *AggregationHTTPHandler) HandleGetAggregationLog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get aggregation log request received from %s", r.RemoteAddr)

	postID, ok := h.postIDFromPath(w, r)
	if !ok {
		return
	}

	entries, err := h.auditLogService.GetEntriesByPostID(r.Context(), postID, 100)
	if err != nil {
		log.Printf("❌ Failed to get aggregation log: %v", err)
		http.Error(w, "failed to get aggregation log", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Retrieved %d aggregation log entries for post: %s", len(entries), postID)
	h.writeJSONResponse(w, http.StatusOK, entries)
}

func (h *AggregationHTTPHandler) postIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	vars := mux.Vars(r)
	postID, ok := vars["id"]
	if !ok || !core.IsValidULID(postID) {
		log.Printf("❌ Missing or invalid post ID in URL path")
		http.Error(w, "post ID must be a valid ULID", http.StatusBadRequest)
		return "", false
	}
	return postID, true
}

func (h *AggregationHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering aggregation API endpoints")

	router.HandleFunc("/posts", h.HandleCreatePost).Methods("POST")
	log.Printf("✅ POST /posts endpoint registered")

	router.HandleFunc("/posts/{id}/broadcasts", h.HandleRecordBroadcast).Methods("POST")
	log.Printf("✅ POST /posts/{id}/broadcasts endpoint registered")

	router.HandleFunc("/posts/{id}/aggregate", h.HandleRunPass).Methods("POST")
	log.Printf("✅ POST /posts/{id}/aggregate endpoint registered")

	router.HandleFunc("/posts/{id}/import", h.HandleImportStatus).Methods("POST")
	log.Printf("✅ POST /posts/{id}/import endpoint registered")

	router.HandleFunc("/posts/{id}/comments", h.HandleGetComments).Methods("GET")
	log.Printf("✅ GET /posts/{id}/comments endpoint registered")

	router.HandleFunc("/posts/{id}/aggregation-log", h.HandleGetAggregationLog).Methods("GET")
	log.Printf("✅ GET /posts/{id}/aggregation-log endpoint registered")

	log.Printf("✅ All aggregation API endpoints registered successfully")
}

func (h *AggregationHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
