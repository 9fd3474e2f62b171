package providers

import (
	"testing"
	"time"

	"dbpd/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarConfig(tz string) *structures.Config {
	return &structures.Config{
		Prompt: structures.PromptConfig{Timezone: tz},
	}
}

func TestCalendarProvider_EmptyTimezoneIsLocal(t *testing.T) {
	loc, err := NewCalendarProvider(calendarConfig(""))
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestCalendarProvider_UTC(t *testing.T) {
	loc, err := NewCalendarProvider(calendarConfig("UTC"))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestCalendarProvider_NamedZone(t *testing.T) {
	loc, err := NewCalendarProvider(calendarConfig("America/New_York"))
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestCalendarProvider_InvalidZone(t *testing.T) {
	loc, err := NewCalendarProvider(calendarConfig("Not/AZone"))
	require.Error(t, err)
	assert.Nil(t, loc)
	assert.Contains(t, err.Error(), "invalid timezone")
}
