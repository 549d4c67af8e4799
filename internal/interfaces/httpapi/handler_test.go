package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prasetyadi/volley-club/internal/infrastructure/repository/memory"
	"github.com/prasetyadi/volley-club/internal/platform/logging"
	"github.com/prasetyadi/volley-club/internal/usecase"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	playerRepo := memory.NewPlayerRepository()
	sessionRepo := memory.NewSessionRepository(playerRepo)

	playerSvc := usecase.NewPlayerService(playerRepo)
	sessionSvc := usecase.NewSessionService(playerRepo, sessionRepo)
	dashboardSvc := usecase.NewDashboardService(playerRepo, sessionRepo)

	staticDir := t.TempDir()
	err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<!DOCTYPE html><title>Volley Club</title>"), 0o644)
	require.NoError(t, err)

	handler := NewHandler(playerSvc, sessionSvc, dashboardSvc, "dev", logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, staticDir)
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "dev", body["environment"])
	require.NotEmpty(t, body["timestamp"])
}

func TestPlayerLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/players", map[string]any{
		"player_id":   "P1",
		"full_name":   "Ann",
		"skill_level": "Intermediate",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	require.Equal(t, "P1", created["player_id"])
	id := int64(created["id"].(float64))
	require.Positive(t, id)

	rec = doJSON(t, router, http.MethodGet, "/api/players-list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody(t, rec)
	require.EqualValues(t, 1, listed["count"])
	require.Len(t, listed["players"], 1)

	rec = doJSON(t, router, http.MethodPut, "/api/players/1", map[string]any{
		"player_id": "P1",
		"full_name": "Ann Chen",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/players/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)["player"].(map[string]any)
	require.Equal(t, "Ann Chen", got["full_name"])

	rec = doJSON(t, router, http.MethodDelete, "/api/players/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/players/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, decodeBody(t, rec), "error")
}

func TestCreatePlayerValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing full_name", map[string]any{"player_id": "P1"}},
		{"missing player_id", map[string]any{"full_name": "Ann"}},
		{"bad skill level", map[string]any{"player_id": "P1", "full_name": "Ann", "skill_level": "Pro"}},
		{"unknown field", map[string]any{"player_id": "P1", "full_name": "Ann", "nickname": "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/players", tt.payload)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			require.Contains(t, decodeBody(t, rec), "error")
		})
	}
}

func TestCreatePlayerDuplicateIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/players", map[string]any{"player_id": "P1", "full_name": "Ann"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/players", map[string]any{"player_id": "P1", "full_name": "Impostor"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "P1")
}

func TestCheckPlayerID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/players", map[string]any{"player_id": "P1", "full_name": "Ann"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/check-player-id/P1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["exists"])

	rec = doJSON(t, router, http.MethodGet, "/api/check-player-id/P9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeBody(t, rec)["exists"])
}

func TestSessionDuplicateDateIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions", map[string]any{"session_date": "2024-03-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sessions", map[string]any{"session_date": "2024-03-01"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "2024-03-01")
}

// The end-to-end flow from the club's usual intake: create a session date,
// register Ann, record her stats, then read the roster and the dashboard.
func TestRecordStatsEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions", map[string]any{"session_date": "2024-03-01"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Positive(t, decodeBody(t, rec)["session_id"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/api/players", map[string]any{"player_id": "P1", "full_name": "Ann"})
	require.Equal(t, http.StatusCreated, rec.Code)
	annID := int64(decodeBody(t, rec)["id"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/api/player-sessions", map[string]any{
		"player_id":    annID,
		"session_date": "2024-03-01",
		"points":       10,
		"saves":        2,
		"is_mvp":       true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	players := decodeBody(t, rec)["players"].([]any)
	require.Len(t, players, 1)
	ann := players[0].(map[string]any)
	require.EqualValues(t, 1, ann["sessions_attended_count"])
	require.EqualValues(t, 10, ann["total_points_scored"])
	require.EqualValues(t, 2, ann["total_saves"])
	require.EqualValues(t, 1, ann["mvp_awards_count"])
	require.InDelta(t, 10.0, ann["avg_points_per_session"], 0.001)

	rec = doJSON(t, router, http.MethodGet, "/api/players/1/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody(t, rec)["sessions"].([]any)
	require.Len(t, history, 1)
	entry := history[0].(map[string]any)
	require.Equal(t, "2024-03-01", entry["session_date"])
	require.EqualValues(t, 10, entry["points"])

	rec = doJSON(t, router, http.MethodGet, "/api/sessions/1/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	participants := decodeBody(t, rec)["players"].([]any)
	require.Len(t, participants, 1)
	require.Equal(t, "Ann", participants[0].(map[string]any)["full_name"])

	rec = doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decodeBody(t, rec)
	require.EqualValues(t, 1, dashboard["total_players"])
	require.EqualValues(t, 1, dashboard["total_sessions"])
	require.EqualValues(t, 1, dashboard["total_mvps"])
	topMVPs := dashboard["top_mvps"].([]any)
	require.Len(t, topMVPs, 1)
	require.Equal(t, "P1", topMVPs[0].(map[string]any)["player_id"])
}

func TestRecordStatsUnknownPlayerIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/player-sessions", map[string]any{
		"player_id":    99,
		"session_date": "2024-03-01",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnmatchedAPIRouteIsJSON404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not found", decodeBody(t, rec)["error"])
}

func TestUnmatchedPathServesIndex(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/some/client/route", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Volley Club")
}

func TestInvalidPathIDIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/players/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
