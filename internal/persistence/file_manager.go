package persistence

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"techpulse/internal/models"
	"techpulse/internal/persistence/interfaces"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const (
	// legacyDateLayout is how unversioned snapshots stored lastReadDate.
	legacyDateLayout = "Mon Jan 02 2006"
	corruptSuffix    = ".corrupt"
)

type FileManager struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// Save writes the snapshot to a temp file, syncs it and renames it over the
// previous one, so a crash leaves either the old or the new snapshot.
func (f *FileManager) Save(snapshot models.Snapshot) error {
	start := time.Now()
	err := f.save(snapshot)
	if err != nil {
		f.metrics.IncPersistenceFailures()
		return err
	}
	f.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (f *FileManager) save(snapshot models.Snapshot) error {
	snapshot.Version = models.SnapshotVersion
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// Load returns the stored snapshot merged over the defaults. Plain JSON
// without a version field is accepted and migrated. A file that cannot be
// decoded is moved aside to <path>.corrupt so the next Save cannot replace it.
func (f *FileManager) Load() (models.Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSnapshot(), false, nil
		}
		return models.DefaultSnapshot(), false, err
	}

	snapshot, err := f.decode(data)
	if err != nil {
		return models.DefaultSnapshot(), false, f.quarantine(err)
	}

	switch {
	case snapshot.Version == 0:
		f.logger.Warnf(providers.TypeState, "Unversioned snapshot found, migrating to version %d", models.SnapshotVersion)
		migrateLegacy(&snapshot)
	case snapshot.Version > models.SnapshotVersion:
		f.logger.Warnf(providers.TypeState, "Snapshot version %d is newer than %d, unknown fields are ignored", snapshot.Version, models.SnapshotVersion)
	}

	fillDefaults(&snapshot)
	snapshot.Version = models.SnapshotVersion
	return snapshot, true, nil
}

func (f *FileManager) decode(data []byte) (models.Snapshot, error) {
	payload := data
	if bytes.HasPrefix(data, zstdMagic) {
		var err error
		payload, err = f.compressor.Decompress(data)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("decompress snapshot: %w", err)
		}
	}

	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if header.Version == 0 {
		var err error
		payload, err = normalizeLegacyTimes(payload)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("decode legacy snapshot: %w", err)
		}
	}

	snapshot := models.DefaultSnapshot()
	snapshot.Version = 0
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

// quarantine renames the unreadable file and returns cause, annotated with
// the new location when the rename worked.
func (f *FileManager) quarantine(cause error) error {
	target := f.path + corruptSuffix
	if err := os.Rename(f.path, target); err != nil {
		f.logger.Errorf(providers.TypeState, "Could not move unreadable snapshot aside: %s", err)
		return cause
	}
	f.logger.Warnf(providers.TypeState, "Unreadable snapshot moved to %s", target)
	return fmt.Errorf("%w (kept as %s)", cause, target)
}

// normalizeLegacyTimes rewrites the timestamps of an unversioned snapshot.
// Those files carry each provider's raw publishedAt, so every known layout
// is accepted and anything else becomes null. Unparseable bookmarkedAt and
// readAt values are dropped.
func normalizeLegacyTimes(payload []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	fixEntries(doc["bookmarks"], "bookmarkedAt")
	fixEntries(doc["readingHistory"], "readAt")
	return json.Marshal(doc)
}

func fixEntries(list interface{}, stampField string) {
	entries, ok := list.([]interface{})
	if !ok {
		return
	}
	for _, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if v, present := entry["publishedAt"]; present {
			entry["publishedAt"] = nil
			if ts := legacyTime(v); ts != nil {
				entry["publishedAt"] = ts.Format(time.RFC3339Nano)
			}
		}
		if v, present := entry[stampField]; present {
			delete(entry, stampField)
			if ts := legacyTime(v); ts != nil {
				entry[stampField] = ts.Format(time.RFC3339Nano)
			}
		}
	}
}

func legacyTime(v interface{}) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return models.ParseTimestamp(s)
}

func migrateLegacy(s *models.Snapshot) {
	if d := s.Analytics.LastReadDate; d != "" {
		if ts, err := time.Parse(legacyDateLayout, d); err == nil {
			s.Analytics.LastReadDate = ts.Format(models.DateLayout)
		}
	}
	for i := range s.ReadingHistory {
		if s.ReadingHistory[i].ReadCount < 1 {
			s.ReadingHistory[i].ReadCount = 1
		}
	}
}

// fillDefaults replaces collections an older or hand-edited file left null.
func fillDefaults(s *models.Snapshot) {
	def := models.DefaultSnapshot()
	if s.Bookmarks == nil {
		s.Bookmarks = def.Bookmarks
	}
	if s.ReadingHistory == nil {
		s.ReadingHistory = def.ReadingHistory
	}
	if len(s.ReadingHistory) > models.HistoryLimit {
		s.ReadingHistory = s.ReadingHistory[:models.HistoryLimit]
	}
	if s.Preferences.Categories == nil {
		s.Preferences.Categories = def.Preferences.Categories
	}
	if s.Preferences.ReadingSpeed <= 0 {
		s.Preferences.ReadingSpeed = def.Preferences.ReadingSpeed
	}
	if s.Analytics.TopCategories == nil {
		s.Analytics.TopCategories = def.Analytics.TopCategories
	}
}
