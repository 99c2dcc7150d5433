package enrichment

import (
	"fmt"
	"strings"
	"techpulse/internal/models"
)

const summarizePrompt = `You are a professional news summarizer. Summarize the following news article in a clear, concise way.

Title: %s

Content: %s

Source: %s

Provide a response in the following JSON format:
{
  "summary": "A 2-3 sentence summary of the key points",
  "keyPoints": ["Point 1", "Point 2", "Point 3"],
  "sentiment": "positive/negative/neutral",
  "readTime": "estimated read time in minutes for full article",
  "topics": ["topic1", "topic2"]
}

Return ONLY valid JSON, no markdown or extra text.`

const digestPrompt = `You are a tech news editor. Create a brief digest of these top tech news stories:

%s

Provide a response in the following JSON format:
{
  "headline": "A catchy headline summarizing today's tech news",
  "overview": "A 2-3 sentence overview of the major themes",
  "stories": [
    {
      "title": "Brief title",
      "oneLiner": "One line summary"
    }
  ],
  "trendingTopics": ["topic1", "topic2", "topic3"]
}

Return ONLY valid JSON.`

const analyzePrompt = `Analyze this news headline and return JSON with sentiment (positive/negative/neutral), topics array, and primary category:

"%s"

Return format: {"sentiment": "...", "topics": [...], "category": "..."}
Return ONLY valid JSON.`

const chatPrompt = `Based on this news article, answer the user's question:

Article Title: %s
Article Content: %s
Source: %s

User Question: %s

Provide a helpful, concise answer based on the article content. If the answer isn't in the article, say so and provide relevant context if possible.`

func articleBody(a models.Article, fallback string) string {
	if a.Description != nil {
		return *a.Description
	}
	if a.Content != nil {
		return *a.Content
	}
	return fallback
}

func sourceName(a models.Article) string {
	if a.Source.Name == "" {
		return "Unknown"
	}
	return a.Source.Name
}

func buildSummarizePrompt(a models.Article) string {
	return fmt.Sprintf(summarizePrompt, a.TitleText(), articleBody(a, "No content available"), sourceName(a))
}

func buildChatPrompt(a models.Article, question string) string {
	return fmt.Sprintf(chatPrompt, a.TitleText(), articleBody(a, "Limited content available"), sourceName(a), question)
}

func buildAnalyzePrompt(a models.Article) string {
	return fmt.Sprintf(analyzePrompt, a.TitleText())
}

func buildDigestPrompt(articles []models.Article) string {
	items := make([]string, len(articles))
	for i, a := range articles {
		desc := "No description"
		if a.Description != nil {
			desc = truncateRunes(*a.Description, 200)
		}
		items[i] = fmt.Sprintf("%d. %q - %s", i+1, a.TitleText(), desc)
	}
	return fmt.Sprintf(digestPrompt, strings.Join(items, "\n\n"))
}
