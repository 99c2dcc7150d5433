package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"techpulse/internal/aggregator"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/search"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Query    string           `json:"query"`
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
}

type sourcesResponse struct {
	Sources     []models.SourceInfo `json:"sources"`
	MultiSource bool                `json:"multiSource"`
	Categories  []models.Category   `json:"categories"`
}

// ApiController serves the news feed: category pages, debounced search and
// the list of configured sources.
type ApiController struct {
	logger     providers.Logger
	aggregator aggregator.AggregatorInterface
	debouncer  search.DebouncerInterface
}

func NewApiController(logger providers.Logger, agg aggregator.AggregatorInterface, debouncer search.DebouncerInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		aggregator: agg,
		debouncer:  debouncer,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

// getPage reads page as a plain decimal; anything else is page 1.
func getPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (ac *ApiController) GetFeed(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	result := ac.aggregator.Aggregate(r.Context(), category, getPage(r))
	writeJSON(w, http.StatusOK, result)
}

// Search runs through the debouncer keyed by the client parameter, so a
// burst of keystrokes from one client only reaches the providers once.
func (ac *ApiController) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing_query")
		return
	}
	page := getPage(r)

	articles, err := ac.debouncer.Do(r.Context(), r.URL.Query().Get("client"), query, func(ctx context.Context, q string) []models.Article {
		return ac.aggregator.SearchAllSources(ctx, q, page)
	})
	switch {
	case errors.Is(err, search.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded")
		return
	case err != nil:
		ac.logger.Debugf(providers.TypeGet, "search %q abandoned: %s", query, err)
		writeError(w, http.StatusRequestTimeout, "cancelled")
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Articles: articles, Total: len(articles)})
}

func (ac *ApiController) GetSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sourcesResponse{
		Sources:     ac.aggregator.ActiveSources(),
		MultiSource: ac.aggregator.IsMultiSourceEnabled(),
		Categories:  ac.aggregator.Categories(),
	})
}
