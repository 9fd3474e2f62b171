package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dbpd/internal/models"
)

var (
	ErrNoPendingPrompt    = errors.New("no prompt is pending")
	ErrUnknownPrompt      = errors.New("unknown prompt id")
	ErrPresentationActive = errors.New("a presentation is already active")
	ErrPresenterClosed    = errors.New("presenter is closed")
)

// PendingPrompt is the presentation currently waiting for the host UI.
type PendingPrompt struct {
	ID          string         `json:"id"`
	Variant     models.Variant `json:"variant"`
	RequestedAt time.Time      `json:"requested_at"`
}

type PresenterInterface interface {
	Present(ctx context.Context, id string, variant models.Variant) (models.Outcome, error)
	Pending() (PendingPrompt, bool)
	Resolve(id string, outcome models.Outcome) error
	Close()
}

type presentation struct {
	id          string
	variant     models.Variant
	requestedAt time.Time
	outcome     chan models.Outcome
	resolved    bool
}

// HostPresenter is the rendezvous between a blocking presentation request
// and the host application polling over HTTP. Present parks until the host
// resolves the prompt, the context ends, or the presenter shuts down; the
// latter two count as abandonment and return an error.
type HostPresenter struct {
	mu     sync.Mutex
	active *presentation
	closed bool
	quit   chan struct{}
	logger Logger
}

func NewPresenterProvider(logger Logger) PresenterInterface {
	return &HostPresenter{
		quit:   make(chan struct{}),
		logger: logger,
	}
}

func (p *HostPresenter) Present(ctx context.Context, id string, variant models.Variant) (models.Outcome, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrPresenterClosed
	}
	if p.active != nil {
		p.mu.Unlock()
		return "", ErrPresentationActive
	}
	pres := &presentation{
		id:          id,
		variant:     variant,
		requestedAt: time.Now(),
		outcome:     make(chan models.Outcome, 1),
	}
	p.active = pres
	p.mu.Unlock()

	p.logger.Infof(TypeEngine, "Prompt %s (%s) awaiting host UI", id, variant)

	defer func() {
		p.mu.Lock()
		if p.active == pres {
			p.active = nil
		}
		p.mu.Unlock()
	}()

	select {
	case out := <-pres.outcome:
		return out, nil
	case <-ctx.Done():
		// an outcome that raced the cancellation still wins
		select {
		case out := <-pres.outcome:
			return out, nil
		default:
		}
		return "", fmt.Errorf("presentation %s: %w", id, ctx.Err())
	case <-p.quit:
		return "", ErrPresenterClosed
	}
}

func (p *HostPresenter) Pending() (PendingPrompt, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil || p.active.resolved || p.closed {
		return PendingPrompt{}, false
	}
	return PendingPrompt{
		ID:          p.active.id,
		Variant:     p.active.variant,
		RequestedAt: p.active.requestedAt,
	}, true
}

func (p *HostPresenter) Resolve(id string, outcome models.Outcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil || p.active.resolved {
		return ErrNoPendingPrompt
	}
	if p.active.id != id {
		return ErrUnknownPrompt
	}
	p.active.resolved = true
	p.active.outcome <- outcome
	return nil
}

// Close aborts a parked Present. Safe to call more than once.
func (p *HostPresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.quit)
}
