package enrichment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var fenceRe = regexp.MustCompile("```(?:json)?\\n?")

// stripFences removes markdown code fences the model wraps JSON in.
func stripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}

func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
