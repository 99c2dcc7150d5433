package models

import (
	"sort"
	"strings"
)

const fingerprintLength = 50

// Fingerprint lower-cases the title, keeps only [a-z0-9] and truncates the
// result to 50 characters. Unrelated titles sharing a long prefix collide.
func Fingerprint(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(min(len(lower), fingerprintLength))
	for i := 0; i < len(lower) && b.Len() < fingerprintLength; i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// RemoveDuplicates keeps the first article per title fingerprint in input
// order. Articles without a usable title are dropped.
func RemoveDuplicates(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		fp := Fingerprint(a.TitleText())
		if fp == "" {
			continue
		}
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, a)
	}
	return out
}

// SortByPublished orders newest first. Articles without a timestamp go last
// and keep their relative order.
func SortByPublished(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PublishedAt, articles[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
