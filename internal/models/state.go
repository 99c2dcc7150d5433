package models

import (
	"maps"
	"time"
)

const (
	SnapshotVersion = 1
	HistoryLimit    = 100
	DateLayout      = "2006-01-02"
)

type Bookmark struct {
	Article
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

type HistoryEntry struct {
	Article
	ReadAt    time.Time `json:"readAt"`
	ReadCount int       `json:"readCount"`
}

// Analytics.TopCategories is keyed by source name.
type Analytics struct {
	ArticlesRead     int            `json:"articlesRead"`
	TotalReadingTime int            `json:"totalReadingTime"`
	TopCategories    map[string]int `json:"topCategories"`
	ReadingStreak    int            `json:"readingStreak"`
	LastReadDate     string         `json:"lastReadDate"`
}

type Preferences struct {
	Categories    []string `json:"categories"`
	Notifications bool     `json:"notifications"`
	ReadingSpeed  int      `json:"readingSpeed"`
}

// PreferencesPatch is a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	Categories    *[]string `json:"categories,omitempty"`
	Notifications *bool     `json:"notifications,omitempty"`
	ReadingSpeed  *int      `json:"readingSpeed,omitempty"`
}

func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	if patch.Categories != nil {
		p.Categories = append([]string{}, (*patch.Categories)...)
	}
	if patch.Notifications != nil {
		p.Notifications = *patch.Notifications
	}
	if patch.ReadingSpeed != nil {
		p.ReadingSpeed = *patch.ReadingSpeed
	}
	return p
}

type Snapshot struct {
	Version        int            `json:"version"`
	DarkMode       bool           `json:"darkMode"`
	Bookmarks      []Bookmark     `json:"bookmarks"`
	ReadingHistory []HistoryEntry `json:"readingHistory"`
	Preferences    Preferences    `json:"preferences"`
	Analytics      Analytics      `json:"analytics"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Categories:    []string{"technology"},
		Notifications: true,
		ReadingSpeed:  200,
	}
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Version:        SnapshotVersion,
		DarkMode:       true,
		Bookmarks:      []Bookmark{},
		ReadingHistory: []HistoryEntry{},
		Preferences:    DefaultPreferences(),
		Analytics:      Analytics{TopCategories: map[string]int{}},
	}
}

// Clone returns a deep copy safe to hand out while the owner keeps mutating.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Bookmarks = make([]Bookmark, len(s.Bookmarks))
	for i, b := range s.Bookmarks {
		b.Article = b.Article.Clone()
		out.Bookmarks[i] = b
	}
	out.ReadingHistory = make([]HistoryEntry, len(s.ReadingHistory))
	for i, h := range s.ReadingHistory {
		h.Article = h.Article.Clone()
		out.ReadingHistory[i] = h
	}
	out.Preferences.Categories = append([]string{}, s.Preferences.Categories...)
	out.Analytics.TopCategories = maps.Clone(s.Analytics.TopCategories)
	if out.Analytics.TopCategories == nil {
		out.Analytics.TopCategories = map[string]int{}
	}
	return out
}
