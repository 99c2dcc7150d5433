package enrichment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	ChatApology = "Sorry, I couldn't generate a response right now."

	minKeyLength      = 10
	summaryFallbackN  = 500
	defaultDigestSize = 5
	defaultTimeout    = 30 * time.Second
)

var (
	ErrNotConfigured     = errors.New("ai enrichment is not configured")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrNoArticles        = errors.New("no articles to digest")
)

type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	Sentiment string   `json:"sentiment"`
	ReadTime  string   `json:"readTime"`
	Topics    []string `json:"topics"`
}

type Analysis struct {
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
	Category  string   `json:"category"`
}

type DigestStory struct {
	Title    string `json:"title"`
	OneLiner string `json:"oneLiner"`
}

type Digest struct {
	Headline       string        `json:"headline"`
	Overview       string        `json:"overview"`
	Stories        []DigestStory `json:"stories"`
	TrendingTopics []string      `json:"trendingTopics"`
}

// Client enriches articles with model output. Summarize, Chat and Digest
// return ErrNotConfigured without a key; callers check Configured first.
type Client interface {
	Configured() bool
	Summarize(ctx context.Context, a models.Article) (Summary, error)
	Chat(ctx context.Context, a models.Article, question string) (string, error)
	Analyze(ctx context.Context, a models.Article) Analysis
	Digest(ctx context.Context, articles []models.Article, limit int) (Digest, error)
}

type GeminiClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
	logger   providers.Logger
}

func NewGeminiClient(conf *structures.Config, logger providers.Logger) *GeminiClient {
	timeout := conf.AI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GeminiClient{
		apiKey:   conf.AI.APIKey,
		endpoint: conf.AI.Endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *GeminiClient) Configured() bool {
	return len(c.apiKey) > minKeyLength
}

func (c *GeminiClient) Summarize(ctx context.Context, a models.Article) (Summary, error) {
	if !c.Configured() {
		return Summary{}, ErrNotConfigured
	}

	text, err := c.generate(ctx, buildSummarizePrompt(a), generationConfig{
		Temperature:     0.3,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 500,
	}, defaultSafety)
	if err != nil {
		c.logger.Errorf(providers.TypeAI, "summarize %s: %v", a.URL, err)
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}

	var raw struct {
		Summary   string      `json:"summary"`
		KeyPoints []string    `json:"keyPoints"`
		Sentiment string      `json:"sentiment"`
		ReadTime  interface{} `json:"readTime"`
		Topics    []string    `json:"topics"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		c.logger.Warnf(providers.TypeAI, "summarize %s: unparseable answer, using raw text", a.URL)
		return Summary{
			Summary:   truncateRunes(text, summaryFallbackN),
			KeyPoints: []string{},
			Sentiment: SentimentNeutral,
			ReadTime:  "2-3",
			Topics:    []string{},
		}, nil
	}

	return Summary{
		Summary:   raw.Summary,
		KeyPoints: nonNil(raw.KeyPoints),
		Sentiment: normalizeSentiment(raw.Sentiment),
		ReadTime:  cast.ToString(raw.ReadTime),
		Topics:    nonNil(raw.Topics),
	}, nil
}

// Chat answers with ChatApology instead of an error when the model fails.
func (c *GeminiClient) Chat(ctx context.Context, a models.Article, question string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	text, err := c.generate(ctx, buildChatPrompt(a, question), generationConfig{
		Temperature:     0.4,
		MaxOutputTokens: 300,
	}, nil)
	if err != nil {
		c.logger.Errorf(providers.TypeAI, "chat %s: %v", a.URL, err)
		return ChatApology, nil
	}
	return strings.TrimSpace(text), nil
}

func defaultAnalysis() Analysis {
	return Analysis{Sentiment: SentimentNeutral, Topics: []string{}, Category: "technology"}
}

// Analyze never fails; any problem yields the neutral default.
func (c *GeminiClient) Analyze(ctx context.Context, a models.Article) Analysis {
	if !c.Configured() {
		return defaultAnalysis()
	}

	text, err := c.generate(ctx, buildAnalyzePrompt(a), generationConfig{
		Temperature:     0.1,
		MaxOutputTokens: 150,
	}, nil)
	if err != nil {
		c.logger.Warnf(providers.TypeAI, "analyze %s: %v", a.URL, err)
		return defaultAnalysis()
	}

	var out Analysis
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		c.logger.Warnf(providers.TypeAI, "analyze %s: %v", a.URL, err)
		return defaultAnalysis()
	}
	out.Sentiment = normalizeSentiment(out.Sentiment)
	out.Topics = nonNil(out.Topics)
	if out.Category == "" {
		out.Category = "technology"
	}
	return out
}

// Digest is all-or-nothing: an unparseable answer is an error.
func (c *GeminiClient) Digest(ctx context.Context, articles []models.Article, limit int) (Digest, error) {
	if !c.Configured() {
		return Digest{}, ErrNotConfigured
	}
	if limit <= 0 {
		limit = defaultDigestSize
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if len(articles) == 0 {
		return Digest{}, ErrNoArticles
	}

	text, err := c.generate(ctx, buildDigestPrompt(articles), generationConfig{
		Temperature:     0.5,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 800,
	}, nil)
	if err != nil {
		c.logger.Errorf(providers.TypeAI, "digest: %v", err)
		return Digest{}, fmt.Errorf("digest: %w", err)
	}

	var out Digest
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		c.logger.Errorf(providers.TypeAI, "digest: %v", err)
		return Digest{}, fmt.Errorf("digest: %w: %v", ErrMalformedResponse, err)
	}
	out.TrendingTopics = nonNil(out.TrendingTopics)
	if out.Stories == nil {
		out.Stories = []DigestStory{}
	}
	return out, nil
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

var defaultSafety = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, cfg generationConfig, safety []safetySetting) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
		SafetySettings:   safety,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+url.QueryEscape(c.apiKey), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(b, &ae) == nil && ae.Error.Message != "" {
			return "", fmt.Errorf("gemini %d: %s", resp.StatusCode, ae.Error.Message)
		}
		return "", fmt.Errorf("gemini %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 || gr.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrEmptyResponse
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
