package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"techpulse/internal/models"
	"techpulse/internal/state"
	"techpulse/internal/structures"
	"techpulse/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{Persistence: structures.Persistence{Timezone: "UTC"}}
}

func newTestStateController(t *testing.T) (*StateController, *state.Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	store := state.NewStore(testConfig(), p, &mockLogger{}, &testutil.MockMetrics{})
	store.SetClock(func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) })
	return NewStateController(&mockLogger{}, store), store, p
}

const articleBody = `{"id":"gnews-1","title":"Go 1.25","url":"https://example.com/go","source":{"name":"The Register"},"apiSource":"GNews"}`

func TestAddBookmark_Created(t *testing.T) {
	sc, store, p := newTestStateController(t)

	rr := httptest.NewRecorder()
	sc.AddBookmark(rr, httptest.NewRequest(http.MethodPost, "/bookmarks", strings.NewReader(articleBody)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"url":"https://example.com/go","bookmarked":true}`, rr.Body.String())
	assert.True(t, store.IsBookmarked("https://example.com/go"))
	assert.Equal(t, 1, p.saves)
}

func TestAddBookmark_Idempotent(t *testing.T) {
	sc, store, _ := newTestStateController(t)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		sc.AddBookmark(rr, httptest.NewRequest(http.MethodPost, "/bookmarks", strings.NewReader(articleBody)))
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	assert.Len(t, store.Snapshot().Bookmarks, 1)
}

func TestAddBookmark_BadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", "nope", "invalid_article"},
		{"empty", "", "invalid_article"},
		{"no url", `{"title":"x"}`, "missing_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, store, _ := newTestStateController(t)
			rr := httptest.NewRecorder()
			sc.AddBookmark(rr, httptest.NewRequest(http.MethodPost, "/bookmarks", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"`+tt.code+`"}`, rr.Body.String())
			assert.Empty(t, store.Snapshot().Bookmarks)
		})
	}
}

func TestAddBookmark_OversizedBody(t *testing.T) {
	sc, _, _ := newTestStateController(t)
	big := `{"url":"` + strings.Repeat("x", maxRequestBodySize) + `"}`

	rr := httptest.NewRecorder()
	sc.AddBookmark(rr, httptest.NewRequest(http.MethodPost, "/bookmarks", strings.NewReader(big)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRemoveAndCheckBookmark(t *testing.T) {
	sc, store, _ := newTestStateController(t)
	store.AddBookmark(models.Article{URL: "https://example.com/go"})

	rr := httptest.NewRecorder()
	sc.CheckBookmark(rr, httptest.NewRequest(http.MethodGet, "/bookmarks/check?url=https://example.com/go", nil))
	assert.JSONEq(t, `{"url":"https://example.com/go","bookmarked":true}`, rr.Body.String())

	rr = httptest.NewRecorder()
	sc.RemoveBookmark(rr, httptest.NewRequest(http.MethodDelete, "/bookmarks?url=https://example.com/go", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, store.IsBookmarked("https://example.com/go"))

	rr = httptest.NewRecorder()
	sc.RemoveBookmark(rr, httptest.NewRequest(http.MethodDelete, "/bookmarks?url=https://example.com/unknown", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBookmarkURLRequired(t *testing.T) {
	sc, _, _ := newTestStateController(t)

	rr := httptest.NewRecorder()
	sc.CheckBookmark(rr, httptest.NewRequest(http.MethodGet, "/bookmarks/check", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	sc.RemoveBookmark(rr, httptest.NewRequest(http.MethodDelete, "/bookmarks", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordRead_UpdatesHistoryAndAnalytics(t *testing.T) {
	sc, store, _ := newTestStateController(t)

	rr := httptest.NewRecorder()
	sc.RecordRead(rr, httptest.NewRequest(http.MethodPost, "/history", strings.NewReader(articleBody)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var analytics models.Analytics
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analytics))
	assert.Equal(t, 1, analytics.ArticlesRead)
	assert.Equal(t, 1, analytics.ReadingStreak)
	assert.Equal(t, "2024-05-01", analytics.LastReadDate)
	assert.Equal(t, map[string]int{"The Register": 1}, analytics.TopCategories)

	history := store.Snapshot().ReadingHistory
	require.Len(t, history, 1)
	assert.Equal(t, "https://example.com/go", history[0].URL)
}

func TestGetHistoryAndClear(t *testing.T) {
	sc, store, _ := newTestStateController(t)
	store.AddToHistory(models.Article{URL: "https://example.com/a"})

	rr := httptest.NewRecorder()
	sc.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/history", nil))
	var history []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	assert.Len(t, history, 1)

	rr = httptest.NewRecorder()
	sc.ClearHistory(rr, httptest.NewRequest(http.MethodDelete, "/history", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, store.Snapshot().ReadingHistory)
}

func TestUpdatePreferences(t *testing.T) {
	sc, _, _ := newTestStateController(t)

	rr := httptest.NewRecorder()
	sc.UpdatePreferences(rr, httptest.NewRequest(http.MethodPost, "/preferences", strings.NewReader(`{"categories":["ai","crypto"]}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"categories":["ai","crypto"],"notifications":true,"readingSpeed":200}`, rr.Body.String())
}

func TestUpdatePreferences_Rejects(t *testing.T) {
	sc, store, _ := newTestStateController(t)

	for _, body := range []string{`{"readingSpeed":0}`, `[1,2]`} {
		rr := httptest.NewRecorder()
		sc.UpdatePreferences(rr, httptest.NewRequest(http.MethodPost, "/preferences", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	assert.Equal(t, models.DefaultPreferences(), store.Snapshot().Preferences)
}

func TestToggleDarkMode(t *testing.T) {
	sc, _, _ := newTestStateController(t)

	rr := httptest.NewRecorder()
	sc.ToggleDarkMode(rr, httptest.NewRequest(http.MethodPost, "/dark-mode", nil))
	assert.JSONEq(t, `{"darkMode":false}`, rr.Body.String())

	rr = httptest.NewRecorder()
	sc.ToggleDarkMode(rr, httptest.NewRequest(http.MethodPost, "/dark-mode", nil))
	assert.JSONEq(t, `{"darkMode":true}`, rr.Body.String())
}

func TestGetState(t *testing.T) {
	sc, store, _ := newTestStateController(t)
	store.AddBookmark(models.Article{URL: "https://example.com/a"})

	rr := httptest.NewRecorder()
	sc.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.True(t, snap.DarkMode)
	assert.Len(t, snap.Bookmarks, 1)
}
