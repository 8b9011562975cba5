package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePageRendersForms(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form#new-game")
	assertContainsElement(t, doc, "form#resume-game")
	assertContainsElement(t, doc, "form#import-game")
	assertContainsElement(t, doc, "#new-game textarea[name=players]")

	// Default round count pre-filled
	value, _ := doc.Find("#new-game input[name=total_rounds]").Attr("value")
	assert.Equal(t, "10", value)
}

func TestCreateGameFromHomePage(t *testing.T) {
	ts := newWebTestServer(t)

	code := ts.createGame([]string{"Alice", "Bob"}, 10)
	require.NotEmpty(t, code)
	assert.Equal(t, code, ts.cookies.sessionCode(), "game code should be remembered in a cookie")

	rr := ts.get("/session/" + code)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#session-code", code)
	assertContainsText(t, doc, "#progress", "Round 1 of 10")
	assertContainsElement(t, doc, "form#score-form")
	assertContainsElement(t, doc, "#score-form input[name=score_Alice]")
	assertContainsElement(t, doc, "#score-form input[name=score_Bob]")

	// Nothing recorded yet, so no standings or export link
	assertNotContainsElement(t, doc, "#standings")
	assertNotContainsElement(t, doc, "#export-link")
}

func TestCreateGameRejectsSinglePlayer(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"players": {"Alice"}, "total_rounds": {"10"}}
	rr := ts.post("/session", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "between 2 and 8 players")
}

func TestCreateGameRejectsDuplicateNames(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"players": {"Alice\nAlice"}, "total_rounds": {"10"}}
	rr := ts.post("/session", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "unique")
}

func TestScoreSubmissionShowsStandings(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)

	rr := ts.submitScores(code, map[string]int{"Alice": 12, "Bob": -2})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-success", "Round 1 recorded")
	assertContainsText(t, doc, "#progress", "Round 2 of 10")

	// Bob leads with the lower total
	rows := doc.Find("#standings tbody tr")
	require.Equal(t, 2, rows.Length())
	first := rows.First()
	assert.Contains(t, first.Find(".player").Text(), "Bob")
	assert.Contains(t, first.Find(".total").Text(), "-2")

	assertContainsElement(t, doc, "#score-table")
	assertContainsElement(t, doc, "#chart svg")
	assertContainsElement(t, doc, "#export-link")
	assertContainsElement(t, doc, "#share-snapshot")
}

func TestMissingScoreRejected(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)

	form := url.Values{"score_Alice": {"5"}}
	rr := ts.post("/session/"+code+"/scores", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Enter a score for Bob")
	// Round was not recorded
	assertContainsText(t, doc, "#progress", "Round 1 of 10")
}

func TestFinalRoundShowsWinnerBanner(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 2)

	rr := ts.submitScores(code, map[string]int{"Alice": 5, "Bob": 3})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.submitScores(code, map[string]int{"Alice": 1, "Bob": 10})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#winner-banner", "Alice wins with 6 points")
	// Game over, no more score entry
	assertNotContainsElement(t, doc, "form#score-form")
}

func TestExportDownloadsCSV(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)
	_ = ts.submitScores(code, map[string]int{"Alice": 5, "Bob": 3})

	rr := ts.get("/session/" + code + "/export")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "skyjo_scores_")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Round,Alice,Bob\n"))
	assert.Contains(t, rr.Body.String(), "Round 1,5,3\n")
}

func TestResetClearsGame(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)
	_ = ts.submitScores(code, map[string]int{"Alice": 5, "Bob": 3})

	rr := ts.post("/session/"+code+"/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "form#config-form")
	assertNotContainsElement(t, doc, "#standings")
}

func TestResumeGameByCode(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)

	// A second browser resumes by code
	other := newCookieJar()
	ts.cookies = other
	rr := ts.post("/session/join", url.Values{"code": {strings.ToLower(code)}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/session/"+code, rr.Header().Get("Location"))
	assert.Equal(t, code, other.sessionCode())
}

func TestResumeUnknownCodeShowsError(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/session/join", url.Values{"code": {"XXXXXX"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "No game found")
}

func TestShareSnapshotImport(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)
	_ = ts.submitScores(code, map[string]int{"Alice": 5, "Bob": 3})

	rr := ts.get("/session/" + code)
	require.Equal(t, http.StatusOK, rr.Code)
	snapshot := parseHTML(rr.Body).Find("#share-snapshot").Text()
	require.NotEmpty(t, snapshot)

	rr = ts.post("/session/import", url.Values{"snapshot": {snapshot}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// Imported copy gets a fresh code
	location := rr.Header().Get("Location")
	require.Contains(t, location, "/session/")
	importedCode := strings.TrimPrefix(location, "/session/")
	assert.NotEqual(t, code, importedCode)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-success", "Game imported")
	assertContainsText(t, doc, "#progress", "Round 2 of 10")
}

func TestImportRejectsGarbage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/session/import", url.Values{"snapshot": {"not-a-snapshot"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "share code could not be read")
}

func TestLeaveForgetsGame(t *testing.T) {
	ts := newWebTestServer(t)
	code := ts.createGame([]string{"Alice", "Bob"}, 10)
	require.Equal(t, code, ts.cookies.sessionCode())

	rr := ts.post("/session/leave", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, ts.cookies.sessionCode())
}

func TestUnknownGamePageRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/session/XXXXXX")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}
