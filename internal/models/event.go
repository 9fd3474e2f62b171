package models

import "time"

// PromptEvent is the analytics payload emitted once per completed
// presentation, after the history write has been attempted.
type PromptEvent struct {
	ID         string    `json:"id"`
	CycleID    string    `json:"cycle_id"`
	Variant    Variant   `json:"variant"`
	Outcome    Outcome   `json:"outcome"`
	TimesShown int       `json:"times_shown"`
	OccurredAt time.Time `json:"occurred_at"`
}
