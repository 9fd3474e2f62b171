package providers

import (
	"fmt"
	"time"

	"dbpd/internal/structures"
)

// NewCalendarProvider resolves the location used for calendar-day bucketing.
// An empty timezone means the device-local calendar.
func NewCalendarProvider(conf *structures.Config) (*time.Location, error) {
	if conf.Prompt.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(conf.Prompt.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", conf.Prompt.Timezone, err)
	}
	return loc, nil
}
