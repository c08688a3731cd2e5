// SPDX-License-Identifier: AGPL-3.0-or-later
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/timeline"
)

const overdueSnapshot = `{
  "now": "2024-07-01",
  "product": {
    "product_uuid": "prod-1",
    "name": "Labs",
    "product_info": {"start_date": "2024-01-01", "end_date": "2024-06-30"}
  },
  "budget": {"total_budget": 1000, "spent_budget": 1300},
  "team_members": [
    {"name": "Ana", "role": "Frontend Developer", "is_active": true},
    {"name": "Bo", "role": "Backend Developer", "is_active": true}
  ]
}`

const reconcileSnapshot = `{
  "now": "2024-07-01",
  "product": {"name": "Labs"},
  "releases": [
    {"release_uuid": "r1", "status": "active", "target_date": "2024-06-01"},
    {"release_uuid": "r2", "status": "active", "target_date": "2024-06-01"}
  ],
  "features": [
    {"feature_uuid": "f1", "status": "done", "release_uuid": "r1"},
    {"feature_uuid": "f2", "status": "in_progress", "release_uuid": "r2"}
  ]
}`

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	calc := health.NewCalculator(health.WithClock(status.FixedClock{At: model.MustParseDate("2024-07-01").Time}))
	server, err := NewServer(calc, zap.NewNop(), nil)
	require.NoError(t, err)
	return server
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("uses defaults when config is nil", func(t *testing.T) {
		server, err := NewServer(health.NewCalculator(), zap.NewNop(), nil)
		require.NoError(t, err)
		assert.Equal(t, 8080, server.config.Server.Port)
		assert.Equal(t, 14, server.config.Health.ExtensionDays)
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(health.NewCalculator(), nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("returns error when calculator is nil", func(t *testing.T) {
		_, err := NewServer(nil, zap.NewNop(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calculator cannot be nil")
	})
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandleStatus(t *testing.T) {
	server := setupTestServer(t)

	t.Run("evaluates posted snapshot", func(t *testing.T) {
		rec := post(t, server, "/api/v1/status", overdueSnapshot)
		require.Equal(t, http.StatusOK, rec.Code)

		var report health.StatusReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, status.Red, report.Overall)
		assert.Equal(t, 39, report.Score)
		assert.Equal(t, status.Red, report.Timeline)
		assert.Equal(t, status.Red, report.Budget)
		assert.NotEmpty(t, report.Recommendations)
	})

	t.Run("falls back to the server clock", func(t *testing.T) {
		rec := post(t, server, "/api/v1/status", `{"product": {"name": "Empty"}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var report health.StatusReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, status.Yellow, report.Overall)
		assert.Equal(t, 65, report.Score)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		rec := post(t, server, "/api/v1/status", `{"product":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid snapshot")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		rec := post(t, server, "/api/v1/status", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "request body is empty")
	})
}

func TestHandleStatusReport(t *testing.T) {
	server := setupTestServer(t)

	rec := post(t, server, "/api/v1/status/report", overdueSnapshot)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary health.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	_, err := uuid.Parse(summary.ID)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", summary.ProductID)
	assert.Equal(t, "Labs", summary.ProductName)
	assert.Equal(t, "Critical", summary.OverallLabel)
	assert.Equal(t, "#f44336", summary.OverallColor)
	assert.Len(t, summary.Dimensions, 4)
	assert.Equal(t, "2024-07-01", summary.GeneratedAt.Format(model.DateLayout))
}

func TestHandleReconcile(t *testing.T) {
	server := setupTestServer(t)

	rec := post(t, server, "/api/v1/reconcile", reconcileSnapshot)
	require.Equal(t, http.StatusOK, rec.Code)

	var res timeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Releases, 2)
	assert.Equal(t, 1, res.AutoCompleted)
	assert.Equal(t, 1, res.Extended)

	assert.True(t, res.Releases[0].AutoCompleted)
	assert.Equal(t, model.ReleaseCompleted, res.Releases[0].Release.Status)

	require.NotNil(t, res.Releases[1].ExtendedEndDate)
	assert.Equal(t, "2024-07-15", res.Releases[1].ExtendedEndDate.String())
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t)
	require.Equal(t, http.StatusOK, post(t, server, "/api/v1/status", overdueSnapshot).Code)
	require.Equal(t, http.StatusOK, post(t, server, "/api/v1/reconcile", reconcileSnapshot).Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `productlabs_evaluations_total{overall="red"}`)
	assert.Contains(t, body, "productlabs_evaluation_score_bucket")
	assert.Contains(t, body, "productlabs_reconciliations_total")
	assert.Contains(t, body, "productlabs_releases_extended_total")
}
