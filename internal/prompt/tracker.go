package prompt

import (
	"fmt"
	"sync"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/providers"
)

// ActivityTracker turns raw "application became active" ticks into a count
// of distinct calendar days. A day counts at most once no matter how many
// ticks arrive; the mutex keeps concurrent ticks from double-counting.
type ActivityTracker struct {
	mu      sync.Mutex
	storage ActivityStorage
	loc     *time.Location
	logger  providers.Logger
}

func NewActivityTracker(storage ActivityStorage, loc *time.Location, logger providers.Logger) *ActivityTracker {
	return &ActivityTracker{
		storage: storage,
		loc:     loc,
		logger:  logger,
	}
}

// RecordTick counts now's calendar day once. A tick on the already-counted
// day returns the current record without a storage write. A failed write
// surfaces to the caller and is not retried here; the next tick on the same
// day is then free to try again via the storage's own recovery.
func (t *ActivityTracker) RecordTick(now time.Time) (models.UserActivity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := models.DayOf(now, t.loc)
	current := t.storage.CurrentActivity()
	if current.SameDay(day) {
		return current, nil
	}

	next := models.UserActivity{
		LastActiveDay: day,
		ActiveDays:    current.ActiveDays + 1,
	}
	if err := t.storage.SaveActivity(next); err != nil {
		return next, fmt.Errorf("record active day: %w", err)
	}

	t.logger.Debugf(providers.TypeEngine, "Active day %s recorded, total %d", day.Format("2006-01-02"), next.ActiveDays)
	return next, nil
}

// Current returns the persisted activity; the zero value when nothing has
// been recorded yet.
func (t *ActivityTracker) Current() models.UserActivity {
	return t.storage.CurrentActivity()
}

func (t *ActivityTracker) ActiveDays() int {
	return t.storage.CurrentActivity().ActiveDays
}

// Reset deletes the persisted activity. The next tick counts from zero.
func (t *ActivityTracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.storage.DeleteActivity(); err != nil {
		return fmt.Errorf("reset activity: %w", err)
	}
	t.logger.Infof(providers.TypeEngine, "Activity counter reset")
	return nil
}
