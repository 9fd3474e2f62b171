package models

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateStore_ZeroOnCreate(t *testing.T) {
	s := NewStateStore()
	assert.True(t, s.Activity().IsZero())
	assert.True(t, s.History().IsZero())
	assert.Equal(t, 0, s.ActiveDays())
	assert.Equal(t, 0, s.TimesShown())
}

func TestStateStore_SetAndGetActivity(t *testing.T) {
	s := NewStateStore()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.SetActivity(UserActivity{LastActiveDay: day, ActiveDays: 4})

	got := s.Activity()
	assert.Equal(t, 4, got.ActiveDays)
	assert.True(t, got.LastActiveDay.Equal(day))
	assert.Equal(t, 4, s.ActiveDays())
}

func TestStateStore_ClearActivity(t *testing.T) {
	s := NewStateStore()
	s.SetActivity(UserActivity{ActiveDays: 12})
	s.ClearActivity()
	assert.True(t, s.Activity().IsZero())
}

func TestStateStore_SetAndGetHistory(t *testing.T) {
	s := NewStateStore()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s.SetHistory(PromptHistory{TimesShown: 2, LastShownDay: day, LastVariant: VariantReminder})

	got := s.History()
	assert.Equal(t, 2, got.TimesShown)
	assert.Equal(t, VariantReminder, got.LastVariant)
	assert.Equal(t, 2, s.TimesShown())
}

func TestStateStore_SnapshotPairsUnderOneLock(t *testing.T) {
	s := NewStateStore()
	s.SetActivity(UserActivity{ActiveDays: 7})
	s.SetHistory(PromptHistory{TimesShown: 1})

	a, h := s.Snapshot()
	assert.Equal(t, 7, a.ActiveDays)
	assert.Equal(t, 1, h.TimesShown)
}

func TestStateStore_Replace(t *testing.T) {
	s := NewStateStore()
	s.SetActivity(UserActivity{ActiveDays: 1})

	s.Replace(UserActivity{ActiveDays: 9}, PromptHistory{TimesShown: 3, PermanentlyDismissed: true})

	assert.Equal(t, 9, s.ActiveDays())
	assert.Equal(t, 3, s.TimesShown())
	assert.True(t, s.History().PermanentlyDismissed)
}

func TestStateStore_ReadsAreCopies(t *testing.T) {
	s := NewStateStore()
	s.SetActivity(UserActivity{ActiveDays: 5})

	got := s.Activity()
	got.ActiveDays = 999

	assert.Equal(t, 5, s.ActiveDays())
}

func TestStateStore_ConcurrentAccess(t *testing.T) {
	s := NewStateStore()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetActivity(UserActivity{ActiveDays: n})
		}(i)
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Snapshot()
			s.TimesShown()
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, s.ActiveDays(), 0)
}
