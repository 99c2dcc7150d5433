package persistence

import (
	"sync"
	"techpulse/internal/persistence/interfaces"
	"techpulse/internal/providers"
	"techpulse/internal/structures"

	"github.com/roylee0704/gron"
)

// Scheduler restores the store at startup, retries failed writes on a
// fixed interval and forces a final write on shutdown.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  interfaces.SnapshotStoreInterface
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if !s.store.Dirty() {
			return
		}
		if err := s.store.Flush(); err != nil {
			s.logger.Errorf(providers.TypeState, "Retrying snapshot write failed: %s", err)
			return
		}
		s.logger.Infof(providers.TypeState, "Persisted pending state to %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.store.Load()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeState, "Persisting state to file...")
	if err := s.store.Flush(); err != nil {
		s.logger.Errorf(providers.TypeState, "Error while persisting state: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store interfaces.SnapshotStoreInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
	}
}
