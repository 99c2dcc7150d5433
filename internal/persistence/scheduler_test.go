package persistence

import (
	"errors"
	"techpulse/internal/structures"
	"techpulse/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type fakeStore struct {
	loads    atomic.Int32
	flushes  atomic.Int32
	dirty    atomic.Bool
	flushErr error
}

func (f *fakeStore) Load() error {
	f.loads.Inc()
	return nil
}

func (f *fakeStore) Flush() error {
	f.flushes.Inc()
	if f.flushErr != nil {
		return f.flushErr
	}
	f.dirty.Store(false)
	return nil
}

func (f *fakeStore) Dirty() bool {
	return f.dirty.Load()
}

func schedulerConfig() *structures.Config {
	return &structures.Config{Persistence: structures.Persistence{
		FilePath:     "/tmp/techpulse.json.zst",
		SaveInterval: 50 * time.Millisecond,
	}}
}

func TestScheduler_RestoreLoadsStore(t *testing.T) {
	store := &fakeStore{}
	s := NewScheduler(schedulerConfig(), &testutil.MockLogger{}, store)

	require.NoError(t, s.Restore())
	assert.Equal(t, int32(1), store.loads.Load())
}

func TestScheduler_PersistFlushes(t *testing.T) {
	store := &fakeStore{}
	s := NewScheduler(schedulerConfig(), &testutil.MockLogger{}, store)

	require.NoError(t, s.Persist())
	assert.Equal(t, int32(1), store.flushes.Load())
}

func TestScheduler_PersistReturnsError(t *testing.T) {
	store := &fakeStore{flushErr: errors.New("read-only file system")}
	logger := &testutil.MockLogger{}
	s := NewScheduler(schedulerConfig(), logger, store)

	assert.Error(t, s.Persist())
	assert.True(t, logger.Contains("error", "read-only"))
}

func TestScheduler_RetriesOnlyWhenDirty(t *testing.T) {
	store := &fakeStore{}
	s := NewScheduler(schedulerConfig(), &testutil.MockLogger{}, store)
	s.Init()
	defer s.Stop()

	time.Sleep(1200 * time.Millisecond)
	assert.Zero(t, store.flushes.Load(), "clean store is not rewritten")

	store.dirty.Store(true)
	assert.Eventually(t, func() bool {
		return store.flushes.Load() >= 1 && !store.Dirty()
	}, 3*time.Second, 20*time.Millisecond)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(schedulerConfig(), &testutil.MockLogger{}, &fakeStore{})
	assert.NotPanics(t, s.Stop)
}
