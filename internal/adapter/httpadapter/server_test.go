package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/adapter/httpadapter"
	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() (*httpadapter.Server, *httpadapter.RunCache) {
	runs := httpadapter.NewRunCache(2)
	return httpadapter.NewServer(":0", runs, slog.Default()), runs
}

func testRun(id string) domain.ForecastRun {
	return domain.ForecastRun{
		ID:          id,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Result: domain.ForecastResult{
			{Year: 2026, PredictedTemperature: 2.5, Tier: domain.TierCritical, Advisories: domain.Classify(2.5)},
		},
		Evaluation: domain.Evaluation{Samples: 2, MAE: 0.1, MSE: 0.01, RMSE: 0.1, R2: 0.9},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer()
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestReadyzFollowsPublishedRuns(t *testing.T) {
	srv, runs := newTestServer()
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/readyz").Code)

	require.NoError(t, runs.LoadRun(context.Background(), testRun("run-1")))
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer()
	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestLatestForecast(t *testing.T) {
	srv, runs := newTestServer()

	rec := get(t, srv, "/v1/forecast")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, runs.LoadRun(context.Background(), testRun("run-1")))
	require.NoError(t, runs.LoadRun(context.Background(), testRun("run-2")))

	rec = get(t, srv, "/v1/forecast")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body domain.ForecastRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-2", body.ID)
	require.Len(t, body.Result, 1)
	assert.Equal(t, 2026, body.Result[0].Year)
	assert.Equal(t, domain.TierCritical, body.Result[0].Tier)
	assert.Len(t, body.Result[0].Advisories, 5)
}

func TestForecastByID(t *testing.T) {
	srv, runs := newTestServer()
	for i := 1; i <= 3; i++ {
		require.NoError(t, runs.LoadRun(context.Background(), testRun(fmt.Sprintf("run-%d", i))))
	}

	tests := []struct {
		id     string
		status int
	}{
		{"run-1", http.StatusNotFound}, // evicted
		{"run-2", http.StatusOK},
		{"run-3", http.StatusOK},
		{"missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, srv, "/v1/forecast/"+tt.id).Code)
		})
	}
}

func TestAdvisoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer()
	rec := get(t, srv, "/v1/advisories")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Tier       domain.Tier `json:"tier"`
		Advisories []string    `json:"advisories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 4)
	assert.Equal(t, domain.TierUrgent, body[0].Tier)
	assert.Equal(t, domain.TierPositive, body[3].Tier)
	assert.Len(t, body[3].Advisories, 3)
}

func TestForecastRejectsOtherMethods(t *testing.T) {
	srv, _ := newTestServer()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/forecast", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type mapHistory struct {
	runs map[string]domain.ForecastRun
	err  error
}

func (m *mapHistory) Run(_ context.Context, id string) (domain.ForecastRun, error) {
	if m.err != nil {
		return domain.ForecastRun{}, m.err
	}
	run, ok := m.runs[id]
	if !ok {
		return domain.ForecastRun{}, fmt.Errorf("lookup %s: %w", id, domain.ErrRunNotFound)
	}
	return run, nil
}

func TestForecastByID_HistoryFallback(t *testing.T) {
	history := &mapHistory{runs: map[string]domain.ForecastRun{"archived": testRun("archived")}}
	runs := httpadapter.NewRunCache(2)
	srv := httpadapter.NewServer(":0", runs, slog.Default(), httpadapter.WithHistory(history))
	require.NoError(t, runs.LoadRun(context.Background(), testRun("cached")))

	tests := []struct {
		id     string
		status int
	}{
		{"cached", http.StatusOK},
		{"archived", http.StatusOK},
		{"missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec := get(t, srv, "/v1/forecast/"+tt.id)
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				var body domain.ForecastRun
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.id, body.ID)
			}
		})
	}

	latest, ok := runs.Latest()
	require.True(t, ok)
	assert.Equal(t, "cached", latest.ID, "history reads do not replace the latest run")
}

func TestForecastByID_HistoryError(t *testing.T) {
	history := &mapHistory{err: errors.New("database is locked")}
	srv := httpadapter.NewServer(":0", httpadapter.NewRunCache(2), slog.Default(), httpadapter.WithHistory(history))

	assert.Equal(t, http.StatusInternalServerError, get(t, srv, "/v1/forecast/any").Code)
}
