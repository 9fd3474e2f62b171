package models

import "time"

// CycleSummary describes the result of one finished evaluation cycle.
type CycleSummary struct {
	CycleID    string    `json:"cycle_id"`
	Decision   Decision  `json:"decision"`
	Outcome    Outcome   `json:"outcome,omitempty"`
	Recorded   bool      `json:"recorded"`
	FinishedAt time.Time `json:"finished_at"`
}

// EngineSnapshot is the read-only introspection view served over HTTP.
type EngineSnapshot struct {
	Activity         UserActivity   `json:"activity"`
	History          PromptHistory  `json:"history"`
	Settings         PromptSettings `json:"settings"`
	IsDefaultBrowser bool           `json:"is_default_browser"`
	UserType         UserType       `json:"user_type"`
	InstallDay       time.Time      `json:"install_day,omitempty"`
	InstallKnown     bool           `json:"install_known"`
	Onboarded        bool           `json:"onboarded"`
	CoordinatorState string         `json:"coordinator_state"`
	LastCycle        *CycleSummary  `json:"last_cycle,omitempty"`
}
