package providers

import (
	"bytes"
	"net/http"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/structures"

	json "github.com/goccy/go-json"
)

type EventSinkInterface interface {
	Fire(event models.PromptEvent)
}

// EventSink records every prompt event in the engine log and, when an
// analytics endpoint is configured, ships it as JSON without blocking the
// caller. Delivery failures only log; a recorded outcome is never rolled
// back because its event got lost.
type EventSink struct {
	endpoint string
	client   *http.Client
	logger   Logger
}

func NewEventSink(conf *structures.Config, logger Logger) EventSinkInterface {
	timeout := conf.Analytics.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &EventSink{
		endpoint: conf.Analytics.Endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (s *EventSink) Fire(event models.PromptEvent) {
	s.logger.Infof(TypeEngine, "Prompt event: cycle=%s variant=%s outcome=%s times_shown=%d",
		event.CycleID, event.Variant, event.Outcome, event.TimesShown)

	if s.endpoint == "" {
		return
	}
	go s.deliver(event)
}

func (s *EventSink) deliver(event models.PromptEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(TypeEngine, "Prompt event not encodable: %v", err)
		return
	}

	resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.Warnf(TypeEngine, "Prompt event delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Warnf(TypeEngine, "Prompt event rejected by %s: %s", s.endpoint, resp.Status)
	}
}
