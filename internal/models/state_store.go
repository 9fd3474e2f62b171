package models

import "sync"

// StateStore is the in-memory holder of the two persisted engine entities.
// All reads and writes go through value copies; callers never share storage
// with the store.
type StateStore struct {
	mu       sync.RWMutex
	activity UserActivity
	history  PromptHistory
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) Activity() UserActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activity
}

func (s *StateStore) SetActivity(a UserActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = a
}

func (s *StateStore) ClearActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = UserActivity{}
}

func (s *StateStore) History() PromptHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history
}

func (s *StateStore) SetHistory(h PromptHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = h
}

// Snapshot returns both entities under one lock so a persistence write sees
// a consistent pair.
func (s *StateStore) Snapshot() (UserActivity, PromptHistory) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activity, s.history
}

func (s *StateStore) Replace(a UserActivity, h PromptHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = a
	s.history = h
}

func (s *StateStore) ActiveDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activity.ActiveDays
}

func (s *StateStore) TimesShown() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.TimesShown
}
