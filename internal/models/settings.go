package models

import "fmt"

// PromptSettings are the remotely tuned knobs of the prompt feature. A value
// is read once per evaluation and never mutated by the engine.
type PromptSettings struct {
	Enabled            bool       `json:"enabled"`
	MinActiveDays      int        `json:"min_active_days"`
	MinInstallAgeDays  int        `json:"min_install_age_days"`
	ReshowIntervalDays int        `json:"reshow_interval_days"`
	MaxTimesShown      int        `json:"max_times_shown"`
	EligibleUserTypes  []UserType `json:"eligible_user_types"`
}

// DefaultPromptSettings is what the engine runs with when no remote snapshot
// exists yet: feature off, and the shipped thresholds once it comes on.
func DefaultPromptSettings() PromptSettings {
	return PromptSettings{
		Enabled:            false,
		MinActiveDays:      10,
		MinInstallAgeDays:  7,
		ReshowIntervalDays: 14,
		MaxTimesShown:      2,
		EligibleUserTypes:  []UserType{UserTypeExisting, UserTypeReturning},
	}
}

func (s PromptSettings) Validate() error {
	if s.MinActiveDays < 0 {
		return fmt.Errorf("minActiveDays must not be negative, got %d", s.MinActiveDays)
	}
	if s.MinInstallAgeDays < 0 {
		return fmt.Errorf("minInstallAgeDays must not be negative, got %d", s.MinInstallAgeDays)
	}
	if s.ReshowIntervalDays < 0 {
		return fmt.Errorf("reshowIntervalDays must not be negative, got %d", s.ReshowIntervalDays)
	}
	if s.MaxTimesShown < 0 {
		return fmt.Errorf("maxTimesShown must not be negative, got %d", s.MaxTimesShown)
	}
	for _, t := range s.EligibleUserTypes {
		if _, err := ParseUserType(string(t)); err != nil {
			return err
		}
	}
	return nil
}

func (s PromptSettings) Eligible(t UserType) bool {
	for _, e := range s.EligibleUserTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slice storage with the receiver.
func (s PromptSettings) Clone() PromptSettings {
	out := s
	if s.EligibleUserTypes != nil {
		out.EligibleUserTypes = make([]UserType, len(s.EligibleUserTypes))
		copy(out.EligibleUserTypes, s.EligibleUserTypes)
	}
	return out
}
