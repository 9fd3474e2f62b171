package prompt

import (
	"fmt"
	"sync"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/providers"
	"dbpd/internal/structures"

	"go.uber.org/atomic"
)

// ActivityStorage is the persistence contract the tracker writes through.
// An empty store yields the zero UserActivity, never an error.
type ActivityStorage interface {
	CurrentActivity() models.UserActivity
	SaveActivity(activity models.UserActivity) error
	DeleteActivity() error
}

// HistoryStorage is the persistence contract the coordinator records into.
type HistoryStorage interface {
	LoadHistory() models.PromptHistory
	SaveHistory(history models.PromptHistory) error
}

// PersistentStore backs both storage contracts with the in-memory state
// store and a write-through to the state file. Memory is updated first, so
// a failed file write surfaces an error while the entities stay current;
// the dirty flag makes the scheduler retry the write on its next pass.
type PersistentStore struct {
	store   *models.StateStore
	files   *StateFileManager
	path    string
	metrics providers.MetricsProviderInterface
	logger  providers.Logger

	fileMu sync.Mutex
	dirty  atomic.Bool
}

func NewPersistentStore(conf *structures.Config, store *models.StateStore, files *StateFileManager, metrics providers.MetricsProviderInterface, logger providers.Logger) *PersistentStore {
	return &PersistentStore{
		store:   store,
		files:   files,
		path:    conf.Persistence.FilePath,
		metrics: metrics,
		logger:  logger,
	}
}

func (p *PersistentStore) CurrentActivity() models.UserActivity {
	return p.store.Activity()
}

func (p *PersistentStore) SaveActivity(activity models.UserActivity) error {
	p.store.SetActivity(activity)
	return p.write()
}

func (p *PersistentStore) DeleteActivity() error {
	p.store.ClearActivity()
	return p.write()
}

func (p *PersistentStore) LoadHistory() models.PromptHistory {
	return p.store.History()
}

func (p *PersistentStore) SaveHistory(history models.PromptHistory) error {
	p.store.SetHistory(history)
	return p.write()
}

func (p *PersistentStore) write() error {
	p.fileMu.Lock()
	defer p.fileMu.Unlock()

	start := time.Now()
	activity, history := p.store.Snapshot()
	state := models.PromptState{Activity: &activity, History: &history}

	if err := p.files.Save(p.path, state); err != nil {
		p.dirty.Store(true)
		return fmt.Errorf("persist state: %w", err)
	}

	p.dirty.Store(false)
	p.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// Flush retries the write-through after an earlier failure. No-op while
// the file already matches memory.
func (p *PersistentStore) Flush() error {
	if !p.dirty.Load() {
		return nil
	}
	p.logger.Warnf(providers.TypeEngine, "Retrying failed state write")
	return p.write()
}

// Persist writes unconditionally; used on shutdown.
func (p *PersistentStore) Persist() error {
	return p.write()
}

// Restore loads the state file into memory, replacing both entities.
func (p *PersistentStore) Restore() error {
	state, err := p.files.Load(p.path)
	if err != nil {
		return err
	}

	var activity models.UserActivity
	var history models.PromptHistory
	if state.Activity != nil {
		activity = *state.Activity
	}
	if state.History != nil {
		history = *state.History
	}
	p.store.Replace(activity, history)
	return nil
}
