package models

import "time"

// PromptHistory is the persisted record of past prompt presentations.
// PermanentlyDismissed never reverts to false once set.
type PromptHistory struct {
	TimesShown           int       `json:"times_shown"`
	LastShownDay         time.Time `json:"last_shown_day"`
	PermanentlyDismissed bool      `json:"permanently_dismissed"`
	LastVariant          Variant   `json:"last_variant,omitempty"`
}

func (h PromptHistory) IsZero() bool {
	return h.TimesShown == 0 && h.LastShownDay.IsZero() && !h.PermanentlyDismissed && h.LastVariant == ""
}

// Recorded returns the history advanced by one presentation that ended with
// the given outcome on the given day. The permanent flag only ever latches on.
func (h PromptHistory) Recorded(day time.Time, variant Variant, outcome Outcome) PromptHistory {
	next := h
	next.TimesShown++
	next.LastShownDay = day
	next.LastVariant = variant
	if outcome == OutcomeDismissedPermanently {
		next.PermanentlyDismissed = true
	}
	return next
}
