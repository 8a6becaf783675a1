package metrics

import (
	"testing"

	"github.com/mauv0809/club-pairing/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment("pairing_runs.like.success")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pairing_runs.like.success": 1}, metrics)

	// 3. Increment the same key again and a different one
	store.Increment("pairing_runs.like.success")
	store.Increment("slack_notifications_sent")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"pairing_runs.like.success": 2,
		"slack_notifications_sent":  1,
	}, metrics)
}
