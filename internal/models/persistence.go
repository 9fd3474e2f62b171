package models

// StateVersion is the current on-disk envelope version.
const StateVersion = 2

// PromptState is the versioned persistence envelope for the engine state.
// It is a JSON superset of the unversioned legacy layout: legacy files
// unmarshal into this struct with Version left at zero and migrate on
// the next save.
type PromptState struct {
	Version  int            `json:"version"`
	Activity *UserActivity  `json:"activity,omitempty"`
	History  *PromptHistory `json:"history,omitempty"`
}
