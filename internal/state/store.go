package state

import (
	"sync"
	"techpulse/internal/models"
	"techpulse/internal/persistence/interfaces"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
	"time"

	"go.uber.org/atomic"
)

type StoreInterface interface {
	ToggleDarkMode() bool
	AddBookmark(article models.Article)
	RemoveBookmark(url string)
	IsBookmarked(url string) bool
	AddToHistory(article models.Article)
	ClearHistory()
	TrackArticleRead(sourceName string)
	UpdatePreferences(patch models.PreferencesPatch) models.Preferences
	Snapshot() models.Snapshot
}

// Store is the only writer of bookmarks, history, preferences and
// analytics. Every mutation persists the full snapshot before returning.
// A failed write keeps the in-memory state and marks the store dirty; the
// next mutation or the scheduler retries it.
type Store struct {
	mu       sync.Mutex
	snapshot models.Snapshot

	persister interfaces.SnapshotPersisterInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time
	location  *time.Location
	dirty     atomic.Bool
}

func NewStore(conf *structures.Config, persister interfaces.SnapshotPersisterInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Store {
	loc, err := time.LoadLocation(conf.Persistence.Timezone)
	if err != nil {
		logger.Warnf(providers.TypeState, "Unknown timezone %q, using local time: %s", conf.Persistence.Timezone, err)
		loc = time.Local
	}
	return &Store{
		snapshot:  models.DefaultSnapshot(),
		persister: persister,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		location:  loc,
	}
}

// SetClock replaces the time source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load replaces the in-memory state with the persisted snapshot. A missing
// or unreadable file leaves the defaults in place.
func (s *Store) Load() error {
	snapshot, found, err := s.persister.Load()
	if err != nil {
		s.logger.Errorf(providers.TypeState, "Could not restore state, starting from defaults: %s", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.reportSizes()
	if found {
		s.logger.Infof(providers.TypeState, "Restored state: %d bookmarks, %d history entries", len(snapshot.Bookmarks), len(snapshot.ReadingHistory))
	}
	return nil
}

func (s *Store) Dirty() bool {
	return s.dirty.Load()
}

// Flush writes the current snapshot regardless of the dirty flag.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if err := s.persister.Save(s.snapshot); err != nil {
		s.dirty.Store(true)
		s.logger.Errorf(providers.TypeState, "Snapshot write failed, keeping in-memory state: %s", err)
		return err
	}
	s.dirty.Store(false)
	return nil
}

// mutate applies fn under the lock and persists the result.
func (s *Store) mutate(fn func(snap *models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snapshot)
	s.reportSizes()
	_ = s.persistLocked()
}

func (s *Store) reportSizes() {
	s.metrics.SetStateSize("bookmarks", len(s.snapshot.Bookmarks))
	s.metrics.SetStateSize("history", len(s.snapshot.ReadingHistory))
}

func (s *Store) ToggleDarkMode() bool {
	var on bool
	s.mutate(func(snap *models.Snapshot) {
		snap.DarkMode = !snap.DarkMode
		on = snap.DarkMode
	})
	return on
}

func (s *Store) AddBookmark(article models.Article) {
	s.mutate(func(snap *models.Snapshot) {
		if indexOfBookmark(snap.Bookmarks, article.URL) >= 0 {
			return
		}
		b := models.Bookmark{Article: article.Clone(), BookmarkedAt: s.now().UTC()}
		snap.Bookmarks = append([]models.Bookmark{b}, snap.Bookmarks...)
	})
}

func (s *Store) RemoveBookmark(url string) {
	s.mutate(func(snap *models.Snapshot) {
		if i := indexOfBookmark(snap.Bookmarks, url); i >= 0 {
			snap.Bookmarks = append(snap.Bookmarks[:i:i], snap.Bookmarks[i+1:]...)
		}
	})
}

func (s *Store) IsBookmarked(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfBookmark(s.snapshot.Bookmarks, url) >= 0
}

// AddToHistory moves a re-read article to the front with a bumped count;
// a new article enters at the front. The list keeps the 100 most recent.
func (s *Store) AddToHistory(article models.Article) {
	s.mutate(func(snap *models.Snapshot) {
		entry := models.HistoryEntry{Article: article.Clone(), ReadAt: s.now().UTC(), ReadCount: 1}

		rest := snap.ReadingHistory
		if i := indexOfHistory(rest, article.URL); i >= 0 {
			entry.ReadCount = max(rest[i].ReadCount, 1) + 1
			rest = append(rest[:i:i], rest[i+1:]...)
		}

		history := make([]models.HistoryEntry, 0, min(len(rest)+1, models.HistoryLimit))
		history = append(history, entry)
		history = append(history, rest...)
		if len(history) > models.HistoryLimit {
			history = history[:models.HistoryLimit]
		}
		snap.ReadingHistory = history
	})
}

func (s *Store) ClearHistory() {
	s.mutate(func(snap *models.Snapshot) {
		snap.ReadingHistory = []models.HistoryEntry{}
	})
}

// TrackArticleRead counts a read for sourceName and advances the streak:
// unchanged on a repeat read today, +1 when the last read was yesterday,
// otherwise back to 1.
func (s *Store) TrackArticleRead(sourceName string) {
	s.mutate(func(snap *models.Snapshot) {
		now := s.now().In(s.location)
		today := now.Format(models.DateLayout)
		yesterday := now.AddDate(0, 0, -1).Format(models.DateLayout)

		a := &snap.Analytics
		if a.TopCategories == nil {
			a.TopCategories = map[string]int{}
		}
		a.TopCategories[sourceName]++
		a.ArticlesRead++

		switch a.LastReadDate {
		case today:
		case yesterday:
			a.ReadingStreak++
		default:
			a.ReadingStreak = 1
		}
		a.LastReadDate = today
	})
}

func (s *Store) UpdatePreferences(patch models.PreferencesPatch) models.Preferences {
	var out models.Preferences
	s.mutate(func(snap *models.Snapshot) {
		snap.Preferences = snap.Preferences.Merge(patch)
		out = snap.Preferences
		out.Categories = append([]string{}, out.Categories...)
	})
	return out
}

func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

func indexOfBookmark(list []models.Bookmark, url string) int {
	for i := range list {
		if list[i].URL == url {
			return i
		}
	}
	return -1
}

func indexOfHistory(list []models.HistoryEntry, url string) int {
	for i := range list {
		if list[i].URL == url {
			return i
		}
	}
	return -1
}
