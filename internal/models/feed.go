package models

// Query selects either a provider-native category or a free-text search.
// When Text is set it wins over Category.
type Query struct {
	Category string
	Text     string
	Page     int
}

type FetchResult struct {
	Articles []Article
	Total    int
}

type AggregateResult struct {
	Articles      []Article      `json:"articles"`
	TotalArticles int            `json:"totalArticles"`
	SourceStats   map[string]int `json:"sourceStats"`
	SourcesUsed   []string       `json:"sourcesUsed"`
}

type SourceInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Category maps a feed id to a native provider category, or to a search
// query when Query is non-empty.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Native string `json:"native,omitempty"`
	Query  string `json:"query,omitempty"`
}
