package controllers

import (
	"net/http"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/state"
)

type bookmarkStatus struct {
	URL        string `json:"url"`
	Bookmarked bool   `json:"bookmarked"`
}

type darkModeResponse struct {
	DarkMode bool `json:"darkMode"`
}

type StateController struct {
	logger providers.Logger
	store  state.StoreInterface
}

func NewStateController(logger providers.Logger, store state.StoreInterface) *StateController {
	return &StateController{logger: logger, store: store}
}

// decodeArticle reads an article body; one without a URL cannot be keyed.
func (sc *StateController) decodeArticle(w http.ResponseWriter, r *http.Request) (models.Article, bool) {
	var article models.Article
	if err := decodeBody(w, r, &article); err != nil {
		sc.logger.Debugf(providers.TypePost, "bad article body on %s: %s", r.URL.Path, err)
		writeError(w, http.StatusBadRequest, "invalid_article")
		return article, false
	}
	if article.URL == "" {
		writeError(w, http.StatusBadRequest, "missing_url")
		return article, false
	}
	return article, true
}

func (sc *StateController) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.store.Snapshot())
}

func (sc *StateController) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.store.Snapshot().Bookmarks)
}

func (sc *StateController) AddBookmark(w http.ResponseWriter, r *http.Request) {
	article, ok := sc.decodeArticle(w, r)
	if !ok {
		return
	}
	sc.store.AddBookmark(article)
	writeJSON(w, http.StatusCreated, bookmarkStatus{URL: article.URL, Bookmarked: true})
}

func (sc *StateController) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing_url")
		return
	}
	sc.store.RemoveBookmark(url)
	writeJSON(w, http.StatusOK, bookmarkStatus{URL: url, Bookmarked: false})
}

func (sc *StateController) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing_url")
		return
	}
	writeJSON(w, http.StatusOK, bookmarkStatus{URL: url, Bookmarked: sc.store.IsBookmarked(url)})
}

func (sc *StateController) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.store.Snapshot().ReadingHistory)
}

// RecordRead is what opening an article does: it lands in history and
// counts towards the analytics of its source.
func (sc *StateController) RecordRead(w http.ResponseWriter, r *http.Request) {
	article, ok := sc.decodeArticle(w, r)
	if !ok {
		return
	}
	sc.store.AddToHistory(article)
	sc.store.TrackArticleRead(article.Source.Name)
	writeJSON(w, http.StatusCreated, sc.store.Snapshot().Analytics)
}

func (sc *StateController) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sc.store.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

func (sc *StateController) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var patch models.PreferencesPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_preferences")
		return
	}
	if patch.ReadingSpeed != nil && *patch.ReadingSpeed <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_reading_speed")
		return
	}
	writeJSON(w, http.StatusOK, sc.store.UpdatePreferences(patch))
}

func (sc *StateController) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, darkModeResponse{DarkMode: sc.store.ToggleDarkMode()})
}
