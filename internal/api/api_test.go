package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/skyjoscore/internal/api"
	"github.com/mcoot/skyjoscore/internal/api/apierr"
	"github.com/mcoot/skyjoscore/internal/api/response"
	"github.com/mcoot/skyjoscore/internal/factory"
	"github.com/mcoot/skyjoscore/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
		ChartService:      app.ChartService,
		ExportService:     app.ExportService,
		ShareService:      app.ShareService,
		Clock:             app.Clock,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createSession creates a configured session and returns its code
func (ts *testServer) createSession(t *testing.T, players []string, totalRounds int) string {
	t.Helper()

	body := map[string]any{"players": players, "total_rounds": totalRounds}
	rr := ts.request(http.MethodPost, "/api/v1/sessions", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Code
}

func (ts *testServer) submitRound(t *testing.T, code string, scores map[string]int) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(http.MethodPost, "/api/v1/sessions/"+code+"/rounds", map[string]any{"scores": scores})
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateEmptySession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "setup", resp.Phase)
	assert.Empty(t, resp.Players)
	assert.NotEmpty(t, resp.Code)
}

func TestCreateConfiguredSession(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"players": []string{"Alice", "Bob", "Carol"}, "total_rounds": 5}
	rr := ts.request(http.MethodPost, "/api/v1/sessions", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "in_progress", resp.Phase)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, resp.Players)
	assert.Equal(t, 5, resp.TotalRounds)
	assert.Equal(t, 1, resp.CurrentRound)
	assert.Equal(t, 5, resp.RoundsRemaining)
}

func TestCreateSessionDefaultsRoundCount(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"players": []string{"Alice", "Bob"}}
	rr := ts.request(http.MethodPost, "/api/v1/sessions", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TotalRounds)
}

func TestCreateSessionValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{"one player", map[string]any{"players": []string{"Solo"}}, apierr.CodePlayerCountRange},
		{"nine players", map[string]any{
			"players": []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9"},
		}, apierr.CodePlayerCountRange},
		{"duplicate names", map[string]any{"players": []string{"Alice", "Alice"}}, apierr.CodeDuplicatePlayerName},
		{"empty name", map[string]any{"players": []string{"Alice", ""}}, apierr.CodeEmptyPlayerName},
		{"negative rounds", map[string]any{"players": []string{"A", "B"}, "total_rounds": -1}, apierr.CodeInvalidRoundCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/sessions", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.wantCode, errorCode(t, rr))
		})
	}
}

func TestGetSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeSessionNotFound, errorCode(t, rr))
}

func TestConfigureExistingSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	body := map[string]any{"players": []string{"Alice", "Bob"}, "total_rounds": 3}
	rr = ts.request(http.MethodPut, "/api/v1/sessions/"+created.Code+"/config", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "in_progress", resp.Phase)
	assert.Equal(t, 3, resp.TotalRounds)
}

func TestSubmitRoundFlow(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 2)

	// Round 1
	rr := ts.submitRound(t, code, map[string]int{"A": 5, "B": 3})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "in_progress", resp.Phase)
	require.Len(t, resp.Standings, 2)
	assert.Equal(t, response.Standing{Rank: 1, Player: "B", Total: 3}, resp.Standings[0])
	assert.Equal(t, response.Standing{Rank: 2, Player: "A", Total: 5}, resp.Standings[1])
	assert.Nil(t, resp.Winner)

	// Round 2 completes the game
	rr = ts.submitRound(t, code, map[string]int{"A": 1, "B": 10})
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Phase)
	assert.Equal(t, response.Standing{Rank: 1, Player: "A", Total: 6}, resp.Standings[0])
	assert.Equal(t, response.Standing{Rank: 2, Player: "B", Total: 13}, resp.Standings[1])
	require.NotNil(t, resp.Winner)
	assert.Equal(t, "A", resp.Winner.Player)
}

func TestSubmitRoundValidation(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 2)

	rr := ts.submitRound(t, code, map[string]int{"A": 5})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeMissingPlayerScore, errorCode(t, rr))

	rr = ts.submitRound(t, code, map[string]int{"A": 5, "B": 3, "C": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownPlayerScore, errorCode(t, rr))
}

func TestSubmitRoundAfterCompletionRejected(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 1)

	rr := ts.submitRound(t, code, map[string]int{"A": 5, "B": 3})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.submitRound(t, code, map[string]int{"A": 1, "B": 2})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeSessionCompleted, errorCode(t, rr))
}

func TestStandingsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"Alice", "Bob"}, 10)

	rr := ts.submitRound(t, code, map[string]int{"Alice": -2, "Bob": 12})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/sessions/"+code+"/standings", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var standings []response.Standing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, response.Standing{Rank: 1, Player: "Alice", Total: -2}, standings[0])
}

func TestChartEndpoint(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"Alice", "Bob"}, 10)

	_ = ts.submitRound(t, code, map[string]int{"Alice": 5, "Bob": 3})
	_ = ts.submitRound(t, code, map[string]int{"Alice": -2, "Bob": 7})

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+code+"/chart", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Chart
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Series, 2)
	assert.Equal(t, "Alice", resp.Series[0].Player)
	require.Len(t, resp.Series[0].Points, 2)
	assert.Equal(t, 5, resp.Series[0].Points[0].Cumulative)
	assert.Equal(t, 3, resp.Series[0].Points[1].Cumulative)
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 2)

	_ = ts.submitRound(t, code, map[string]int{"A": 5, "B": 3})
	_ = ts.submitRound(t, code, map[string]int{"A": 1, "B": 10})

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+code+"/export", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "skyjo_scores_")

	expected := "Round,A,B\n" +
		"Round 1,5,3\n" +
		"Round 2,1,10\n" +
		"Total,6,13\n"
	assert.Equal(t, expected, rr.Body.String())
}

func TestShareAndImport(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"Alice", "Bob"}, 10)
	_ = ts.submitRound(t, code, map[string]int{"Alice": 5, "Bob": -2})

	rr := ts.request(http.MethodGet, "/api/v1/sessions/"+code+"/share", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var shareResp response.Share
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &shareResp))
	require.NotEmpty(t, shareResp.Snapshot)

	// Import on the same server yields a fresh session with the same state
	rr = ts.request(http.MethodPost, "/api/v1/sessions/import", map[string]string{"snapshot": shareResp.Snapshot})
	require.Equal(t, http.StatusCreated, rr.Code)

	var imported response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &imported))
	assert.NotEqual(t, code, imported.Code)
	assert.Equal(t, "in_progress", imported.Phase)
	assert.Equal(t, []string{"Alice", "Bob"}, imported.Players)
	require.Len(t, imported.Rounds, 1)
	assert.Equal(t, -2, imported.Rounds[0]["Bob"])
}

func TestImportRejectsBadSnapshot(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/import", map[string]string{"snapshot": "garbage"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidSnapshot, errorCode(t, rr))
}

func TestResetEndpoint(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 10)
	_ = ts.submitRound(t, code, map[string]int{"A": 5, "B": 3})

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+code+"/reset", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "setup", resp.Phase)
	assert.Empty(t, resp.Players)
	assert.Empty(t, resp.Rounds)
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t)
	code := ts.createSession(t, []string{"A", "B"}, 10)

	rr := ts.request(http.MethodDelete, "/api/v1/sessions/"+code, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/sessions/"+code, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
