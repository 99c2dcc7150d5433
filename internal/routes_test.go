package internal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"techpulse/internal/aggregator"
	"techpulse/internal/controllers"
	"techpulse/internal/enrichment"
	"techpulse/internal/models"
	"techpulse/internal/search"
	"techpulse/internal/sources"
	"techpulse/internal/state"
	"techpulse/internal/structures"
	"techpulse/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeTestPersister struct{}

func (p *routeTestPersister) Save(_ models.Snapshot) error { return nil }
func (p *routeTestPersister) Load() (models.Snapshot, bool, error) {
	return models.DefaultSnapshot(), false, nil
}

type routeFixture struct {
	handler http.Handler
	metrics *testutil.MockMetrics
	store   *state.Store
}

func newRouteFixture(t *testing.T) routeFixture {
	t.Helper()
	conf := &structures.Config{Persistence: structures.Persistence{Timezone: "UTC"}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}

	agg := aggregator.NewAggregator(conf, []sources.Adapter{}, &testutil.MockCache{}, logger, metrics)
	store := state.NewStore(conf, &routeTestPersister{}, logger, metrics)
	ac := controllers.NewApiController(logger, agg, search.NewDebouncer(conf, logger))
	sc := controllers.NewStateController(logger, store)
	ai := controllers.NewAIController(logger, enrichment.NewGeminiClient(conf, logger))
	hc := controllers.NewHealthController(agg, store)

	router := InitRoutes(ac, sc, ai)
	return routeFixture{
		handler: NewHandler(router, hc, conf, logger, metrics),
		metrics: metrics,
		store:   store,
	}
}

func (f routeFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersEveryPath(t *testing.T) {
	conf := &structures.Config{}
	logger := &testutil.MockLogger{}
	agg := aggregator.NewAggregator(conf, nil, &testutil.MockCache{}, logger, &testutil.MockMetrics{})
	store := state.NewStore(conf, &routeTestPersister{}, logger, &testutil.MockMetrics{})

	router := InitRoutes(
		controllers.NewApiController(logger, agg, search.NewDebouncer(conf, logger)),
		controllers.NewStateController(logger, store),
		controllers.NewAIController(logger, enrichment.NewGeminiClient(conf, logger)),
	)
	routes := router.GetRoutes()

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	assert.Equal(t, []string{
		"/feed", "/search", "/sources",
		"/state", "/bookmarks", "/bookmarks/check", "/history", "/preferences", "/dark-mode",
		"/ai/status", "/ai/summarize", "/ai/chat", "/ai/analyze", "/ai/digest",
	}, urls)
}

func TestHandler_MethodEnforcement(t *testing.T) {
	f := newRouteFixture(t)

	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPost, "/feed", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodGet, "/dark-mode", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPut, "/bookmarks", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodGet, "/ai/chat", "").Code)
}

func TestHandler_BookmarkFlow(t *testing.T) {
	f := newRouteFixture(t)
	body := `{"url":"https://example.com/a","title":"A","source":{"name":"Wired"}}`

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/bookmarks", body).Code)
	rr := f.do(http.MethodGet, "/bookmarks/check?url=https://example.com/a", "")
	assert.JSONEq(t, `{"url":"https://example.com/a","bookmarked":true}`, rr.Body.String())

	require.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/bookmarks?url=https://example.com/a", "").Code)
	assert.False(t, f.store.IsBookmarked("https://example.com/a"))
}

func TestHandler_FeedWithoutSources(t *testing.T) {
	f := newRouteFixture(t)

	rr := f.do(http.MethodGet, "/feed?category=ai", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalArticles":0`)
}

func TestHandler_AIWithoutKey(t *testing.T) {
	f := newRouteFixture(t)

	assert.JSONEq(t, `{"configured":false}`, f.do(http.MethodGet, "/ai/status", "").Body.String())
	rr := f.do(http.MethodPost, "/ai/summarize", `{"url":"https://example.com/a"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_HealthIsNotInstrumented(t *testing.T) {
	f := newRouteFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
	assert.Zero(t, f.metrics.Requests)

	f.do(http.MethodGet, "/state", "")
	f.do(http.MethodPost, "/dark-mode", "")
	assert.Equal(t, 2, f.metrics.Requests)
}

func TestHandler_MetricsEndpointDisabled(t *testing.T) {
	f := newRouteFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/metrics", "").Code)
}
