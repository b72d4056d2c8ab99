package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"socialsync/config"
	"socialsync/core"
	"socialsync/db"
	"socialsync/models"
)

// LoadTestConfig loads configuration for tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test") // From services/ directory
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()               // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}, nil
}

// CreateTestTrackedPost creates a tracked post with a unique permalink to
// avoid constraint violations between test runs
func CreateTestTrackedPost(t *testing.T, repo *db.PostgresTrackedPostsRepository) *models.TrackedPost {
	post := &models.TrackedPost{
		ID:        core.NewID("tp"),
		Title:     "Test Post " + uuid.New().String(),
		Permalink: "https://blog.example.com/posts/" + uuid.New().String(),
	}
	err := repo.CreateTrackedPost(context.Background(), post)
	require.NoError(t, err, "Failed to create test tracked post")
	return post
}

// CreateTestBroadcast records a broadcast of the post by the given account
func CreateTestBroadcast(
	t *testing.T,
	repo *db.PostgresTrackedPostsRepository,
	postID, accountID, remoteID string,
) *models.BroadcastedStatus {
	broadcast := &models.BroadcastedStatus{
		ID:        core.NewID("b"),
		PostID:    postID,
		AccountID: accountID,
		RemoteID:  remoteID,
	}
	err := repo.InsertBroadcastedStatus(context.Background(), broadcast)
	require.NoError(t, err, "Failed to create test broadcast")
	return broadcast
}

// NewTestRemoteStatus builds a remote status with a unique remote id
func NewTestRemoteStatus(origin models.Origin) *models.RemoteStatus {
	return &models.RemoteStatus{
		RemoteID:       uuid.New().String(),
		Origin:         origin,
		AuthorRemoteID: uuid.New().String(),
		AuthorHandle:   "test-author",
		Body:           "test status body",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}
