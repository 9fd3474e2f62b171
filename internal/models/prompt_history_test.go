package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromptHistory_IsZero(t *testing.T) {
	assert.True(t, PromptHistory{}.IsZero())
	assert.False(t, PromptHistory{TimesShown: 1}.IsZero())
	assert.False(t, PromptHistory{PermanentlyDismissed: true}.IsZero())
}

func TestPromptHistory_RecordedIncrements(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := PromptHistory{}.Recorded(day, VariantFirstPrompt, OutcomeDismissed)

	assert.Equal(t, 1, h.TimesShown)
	assert.True(t, h.LastShownDay.Equal(day))
	assert.Equal(t, VariantFirstPrompt, h.LastVariant)
	assert.False(t, h.PermanentlyDismissed)
}

func TestPromptHistory_RecordedLatchesPermanentFlag(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := PromptHistory{}.Recorded(day, VariantFirstPrompt, OutcomeDismissedPermanently)
	assert.True(t, h.PermanentlyDismissed)

	// the flag survives any later outcome
	later := h.Recorded(day.AddDate(0, 0, 30), VariantReminder, OutcomeAccepted)
	assert.True(t, later.PermanentlyDismissed)
	assert.Equal(t, 2, later.TimesShown)
}

func TestPromptHistory_RecordedDoesNotMutateReceiver(t *testing.T) {
	h := PromptHistory{TimesShown: 1}
	_ = h.Recorded(time.Now(), VariantReminder, OutcomeAccepted)
	assert.Equal(t, 1, h.TimesShown)
}
