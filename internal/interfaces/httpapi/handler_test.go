package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/docstore/memory"
	"github.com/wicketwatch/wicketwatch/internal/infrastructure/repository"
	"github.com/wicketwatch/wicketwatch/internal/platform/logging"
	"github.com/wicketwatch/wicketwatch/internal/usecase"
)

const testJobToken = "job-secret"

type fixedSource struct {
	results  []usecase.RawMatchRecord
	schedule []usecase.RawFixtureRecord
}

func (s *fixedSource) FetchResults(_ context.Context, _ *time.Time) ([]usecase.RawMatchRecord, error) {
	return s.results, nil
}

func (s *fixedSource) FetchSchedule(_ context.Context, _ *time.Time) ([]usecase.RawFixtureRecord, error) {
	return s.schedule, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := repository.NewLedgerRepository(memory.NewStore())
	source := &fixedSource{
		results: []usecase.RawMatchRecord{
			{
				DateTime: "2026-04-10 19:30:00",
				Venue:    "Wankhede Stadium",
				Location: "Mumbai",
				Label:    "Match 1",
				Team1:    usecase.RawInningsEntry{Name: "Mumbai Indians", Score: "182/5", Overs: "20.0 ov"},
				Team2:    usecase.RawInningsEntry{Name: "Chennai Super Kings", Score: "183/4", Overs: "19.2 ov"},
				Outcome:  "Chennai Super Kings won by 6 wickets",
			},
		},
		schedule: []usecase.RawFixtureRecord{
			{
				DateTime: "2099-05-01 19:30:00",
				Venue:    "Eden Gardens",
				Label:    "Match 2",
				Team1:    "Kolkata Knight Riders",
				Team2:    "Royal Challengers Bengaluru",
			},
		},
	}

	logger := logging.NewNop()
	refreshService := usecase.NewRefreshService(repo, source, nil, nil, nil, usecase.RefreshConfig{}, logger)
	ledgerService := usecase.NewLedgerService(repo)
	handler := NewHandler(ledgerService, refreshService, logger)

	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func runRefresh(t *testing.T, router http.Handler) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("refresh job returned status %d: %s", rec.Code, rec.Body.String())
	}
}

func decodeData(t *testing.T, body []byte, out any) {
	t.Helper()

	var envelope struct {
		APIVersion string          `json:"apiVersion"`
		Data       json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.APIVersion != "2.0" {
		t.Fatalf("unexpected apiVersion %q", envelope.APIVersion)
	}
	if err := sonic.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestGetStandings_AfterRefresh(t *testing.T) {
	router := newTestRouter(t)
	runRefresh(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var rows []map[string]any
	decodeData(t, rec.Body.Bytes(), &rows)
	if len(rows) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(rows))
	}
	if got, _ := rows[0]["TEAM"].(string); got != "Chennai Super Kings" {
		t.Fatalf("expected winner on top, got %v", rows[0]["TEAM"])
	}
	if got, _ := rows[0]["POS"].(float64); got != 1 {
		t.Fatalf("expected POS=1, got %v", rows[0]["POS"])
	}
	if got, _ := rows[0]["PTS"].(float64); got != 2 {
		t.Fatalf("expected PTS=2, got %v", rows[0]["PTS"])
	}
	if got, _ := rows[0]["RECENT_FORM"].(string); got != "W" {
		t.Fatalf("expected RECENT_FORM=W, got %v", rows[0]["RECENT_FORM"])
	}
}

func TestListPastMatches_KeepsScoreboardShape(t *testing.T) {
	router := newTestRouter(t)
	runRefresh(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var items []map[string]any
	decodeData(t, rec.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 past match, got %d", len(items))
	}
	if got, _ := items[0]["Team_1"].(string); got != "Mumbai Indians - 182/5 (20.0 ov)" {
		t.Fatalf("unexpected Team_1 display: %v", items[0]["Team_1"])
	}
	if got, _ := items[0]["Result"].(string); got != "Chennai Super Kings won by 6 wickets" {
		t.Fatalf("unexpected Result: %v", items[0]["Result"])
	}
}

func TestListUpcomingMatches_CarriesProbability(t *testing.T) {
	router := newTestRouter(t)
	runRefresh(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/upcoming-matches", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var items []map[string]any
	decodeData(t, rec.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 upcoming match, got %d", len(items))
	}
	prob, ok := items[0]["Probability"].(map[string]any)
	if !ok {
		t.Fatalf("expected Probability object, got %v", items[0]["Probability"])
	}
	p1, _ := prob["Team_1"].(float64)
	p2, _ := prob["Team_2"].(float64)
	if p1+p2 < 99.99 || p1+p2 > 100.01 {
		t.Fatalf("expected probability split summing to 100, got %v + %v", p1, p2)
	}
	if _, ok := items[0]["head_to_head"].(map[string]any); !ok {
		t.Fatalf("expected head_to_head object")
	}
}

func TestGetMetadata_NotFoundBeforeRefresh(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/metadata", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 before first refresh, got %d", rec.Code)
	}
}

func TestGetMetadata_AfterRefresh(t *testing.T) {
	router := newTestRouter(t)
	runRefresh(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/metadata", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var meta map[string]any
	decodeData(t, rec.Body.Bytes(), &meta)
	if got, _ := meta["lastUpdated"].(string); got == "" {
		t.Fatalf("expected lastUpdated set, got %v", meta["lastUpdated"])
	}
	if got, _ := meta["lastPastMatch"].(string); got != "2026-04-10T19:30:00Z" {
		t.Fatalf("unexpected lastPastMatch: %v", meta["lastPastMatch"])
	}
}

func TestRunRefreshJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRunRefreshJob_ReportsCounts(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh?force=true", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result map[string]any
	decodeData(t, rec.Body.Bytes(), &result)
	if got, _ := result["status"].(string); got != "ok" {
		t.Fatalf("expected status ok, got %v", result["status"])
	}
	if got, _ := result["forced"].(bool); !got {
		t.Fatalf("expected forced=true")
	}
	if got, _ := result["pastInserted"].(float64); got != 1 {
		t.Fatalf("expected pastInserted=1, got %v", result["pastInserted"])
	}
	if got, _ := result["fixturesInserted"].(float64); got != 1 {
		t.Fatalf("expected fixturesInserted=1, got %v", result["fixturesInserted"])
	}
}
