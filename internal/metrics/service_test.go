package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PairingRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := setupTestDB(t)
	svc := NewService(reg).WithStore(store)

	svc.IncPairingRuns("like", "success")
	svc.IncPairingRuns("like", "success")
	svc.IncPairingRuns("strategic", "ungroupable")
	svc.AddGroupsCreated(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.PairingRuns.WithLabelValues("like", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.PairingRuns.WithLabelValues("strategic", "ungroupable")))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.GroupsCreated))

	persisted, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, persisted["pairing_runs.like.success"])
	assert.Equal(t, 1, persisted["pairing_runs.strategic.ungroupable"])
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.IncSlackNotifSent()

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "club_slack_notifications_sent_total 1")
}
