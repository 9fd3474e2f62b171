package prompt

import (
	"context"
	"sync"

	"dbpd/internal/prompt/interfaces"
	"dbpd/internal/providers"
	"dbpd/internal/structures"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  *PersistentStore
	status *DefaultStatusCache
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.store.Flush(); err != nil {
			s.logger.Errorf(providers.TypeEngine, "Error while flushing state: %s", err)
			return
		}
	})

	s.cron.AddFunc(gron.Every(s.config.Status.RefreshInterval), func() {
		if err := s.status.Refresh(context.Background()); err != nil {
			s.logger.Warnf(providers.TypeEngine, "Scheduled status refresh failed: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeEngine, "Default-browser status refreshed")
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the persisted state and performs the first status probe.
// A failed probe is not fatal: the cache starts from its zero value and
// the scheduled refresh keeps trying.
func (s *Scheduler) Restore() error {
	if err := s.store.Restore(); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeEngine, "State restored from %s", s.config.Persistence.FilePath)

	if err := s.status.Refresh(context.Background()); err != nil {
		s.logger.Warnf(providers.TypeEngine, "Initial default-browser probe failed: %s", err)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeEngine, "Persisting prompt state to file...")
	if err := s.store.Persist(); err != nil {
		s.logger.Errorf(providers.TypeEngine, "Error while persisting state: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *PersistentStore, status *DefaultStatusCache) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
		status: status,
	}
}
