package models

import "time"

type ArticleSource struct {
	Name string  `json:"name"`
	ID   *string `json:"id,omitempty"`
	URL  *string `json:"url,omitempty"`
}

// Article is the provider-neutral shape every adapter produces. Optional text
// is nil when the provider did not report it, never an empty string.
type Article struct {
	ID           string        `json:"id"`
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Content      *string       `json:"content"`
	URL          string        `json:"url"`
	ImageURL     *string       `json:"urlToImage"`
	PublishedAt  *time.Time    `json:"publishedAt"`
	Source       ArticleSource `json:"source"`
	ProviderName string        `json:"apiSource"`
	Author       *string       `json:"author,omitempty"`
	Category     []string      `json:"category,omitempty"`
	Keywords     []string      `json:"keywords,omitempty"`
	FetchedAt    time.Time     `json:"fetchedAt"`
}

// Clone copies the slices so the result can be handed to another goroutine.
// Pointer fields are shared; nothing mutates through them.
func (a Article) Clone() Article {
	if a.Category != nil {
		a.Category = append([]string(nil), a.Category...)
	}
	if a.Keywords != nil {
		a.Keywords = append([]string(nil), a.Keywords...)
	}
	return a
}

func (a Article) TitleText() string {
	if a.Title == nil {
		return ""
	}
	return *a.Title
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
