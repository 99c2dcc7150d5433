package controllers

import (
	"errors"
	"net/http"
	"strings"
	"techpulse/internal/enrichment"
	"techpulse/internal/models"
	"techpulse/internal/providers"
)

type aiStatusResponse struct {
	Configured bool `json:"configured"`
}

type chatRequest struct {
	Article  models.Article `json:"article"`
	Question string         `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type digestRequest struct {
	Articles []models.Article `json:"articles"`
	Limit    int              `json:"limit"`
}

type AIController struct {
	logger providers.Logger
	client enrichment.Client
}

func NewAIController(logger providers.Logger, client enrichment.Client) *AIController {
	return &AIController{logger: logger, client: client}
}

// requireConfigured answers 503 when no model key is set.
func (ai *AIController) requireConfigured(w http.ResponseWriter) bool {
	if ai.client.Configured() {
		return true
	}
	writeError(w, http.StatusServiceUnavailable, "ai_not_configured")
	return false
}

func (ai *AIController) writeEnrichmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enrichment.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "ai_not_configured")
	case errors.Is(err, enrichment.ErrNoArticles):
		writeError(w, http.StatusBadRequest, "no_articles")
	case errors.Is(err, enrichment.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, "ai_malformed_response")
	default:
		writeError(w, http.StatusBadGateway, "ai_unavailable")
	}
}

func (ai *AIController) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aiStatusResponse{Configured: ai.client.Configured()})
}

func (ai *AIController) Summarize(w http.ResponseWriter, r *http.Request) {
	if !ai.requireConfigured(w) {
		return
	}
	var article models.Article
	if err := decodeBody(w, r, &article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_article")
		return
	}
	summary, err := ai.client.Summarize(r.Context(), article)
	if err != nil {
		ai.writeEnrichmentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (ai *AIController) Chat(w http.ResponseWriter, r *http.Request) {
	if !ai.requireConfigured(w) {
		return
	}
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_chat_request")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "missing_question")
		return
	}
	answer, err := ai.client.Chat(r.Context(), req.Article, req.Question)
	if err != nil {
		ai.writeEnrichmentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (ai *AIController) Analyze(w http.ResponseWriter, r *http.Request) {
	if !ai.requireConfigured(w) {
		return
	}
	var article models.Article
	if err := decodeBody(w, r, &article); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_article")
		return
	}
	writeJSON(w, http.StatusOK, ai.client.Analyze(r.Context(), article))
}

func (ai *AIController) Digest(w http.ResponseWriter, r *http.Request) {
	if !ai.requireConfigured(w) {
		return
	}
	var req digestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_digest_request")
		return
	}
	digest, err := ai.client.Digest(r.Context(), req.Articles, req.Limit)
	if err != nil {
		ai.writeEnrichmentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, digest)
}
