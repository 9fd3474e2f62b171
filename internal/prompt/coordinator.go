package prompt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/providers"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

var ErrEvaluationInProgress = errors.New("an evaluation cycle is already in progress")

type coordState int32

const (
	stateIdle coordState = iota
	stateEvaluating
	statePresenting
	stateRecording
)

func (s coordState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateEvaluating:
		return "evaluating"
	case statePresenting:
		return "presenting"
	case stateRecording:
		return "recording"
	}
	return "unknown"
}

// CycleResult summarizes one finished evaluation cycle.
type CycleResult struct {
	CycleID    string
	Decision   models.Decision
	Outcome    models.Outcome
	Recorded   bool
	FinishedAt time.Time
}

// Coordinator owns the evaluation state machine. At most one cycle runs at
// a time: Trigger reserves the machine, Run drives the reserved cycle to
// completion and always releases it. All history writes in the subsystem
// happen here, inside a reserved cycle, which is what keeps them serialized.
type Coordinator struct {
	tracker    *ActivityTracker
	status     *DefaultStatusCache
	flags      providers.FlagsProviderInterface
	userTypes  providers.UserTypeProviderInterface
	installs   providers.InstallDateProviderInterface
	onboarding providers.OnboardingProviderInterface
	presenter  providers.PresenterInterface
	events     providers.EventSinkInterface
	history    HistoryStorage
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
	loc        *time.Location

	state atomic.Int32

	mu         sync.Mutex
	lastResult *CycleResult
}

func NewCoordinator(
	tracker *ActivityTracker,
	status *DefaultStatusCache,
	flags providers.FlagsProviderInterface,
	userTypes providers.UserTypeProviderInterface,
	installs providers.InstallDateProviderInterface,
	onboarding providers.OnboardingProviderInterface,
	presenter providers.PresenterInterface,
	events providers.EventSinkInterface,
	history HistoryStorage,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
	loc *time.Location,
) *Coordinator {
	return &Coordinator{
		tracker:    tracker,
		status:     status,
		flags:      flags,
		userTypes:  userTypes,
		installs:   installs,
		onboarding: onboarding,
		presenter:  presenter,
		events:     events,
		history:    history,
		metrics:    metrics,
		logger:     logger,
		loc:        loc,
	}
}

// Trigger reserves the coordinator for one cycle. The caller must follow
// up with Run, which releases it whatever happens.
func (c *Coordinator) Trigger() error {
	if !c.state.CompareAndSwap(int32(stateIdle), int32(stateEvaluating)) {
		return ErrEvaluationInProgress
	}
	return nil
}

// Run executes the cycle reserved by Trigger. ctx ending while a prompt is
// on screen abandons the presentation: nothing is recorded and the next
// cycle may present again.
func (c *Coordinator) Run(ctx context.Context, cycleID string, now time.Time) (*CycleResult, error) {
	defer c.state.Store(int32(stateIdle))

	result := &CycleResult{CycleID: cycleID}
	defer func() {
		result.FinishedAt = time.Now()
		c.mu.Lock()
		c.lastResult = result
		c.mu.Unlock()
	}()

	if !c.onboarding.IsOnboardingCompleted() {
		result.Decision = models.SuppressDecision(models.ReasonOnboardingIncomplete)
		c.metrics.IncSuppressionsTotal(string(models.ReasonOnboardingIncomplete))
		c.logger.Debugf(providers.TypeEngine, "Evaluation %s skipped: onboarding incomplete", cycleID)
		return result, nil
	}

	today := models.DayOf(now, c.loc)

	var installDay time.Time
	installKnown := false
	if d, ok := c.installs.InstallDate(); ok {
		installDay = models.DayOf(d, c.loc)
		installKnown = true
	}

	inputs := DecisionInputs{
		Settings:     c.flags.Settings(),
		IsDefault:    c.status.IsDefaultBrowser(),
		UserType:     c.userTypes.CurrentUserType(),
		InstallDay:   installDay,
		InstallKnown: installKnown,
		Today:        today,
		Activity:     c.tracker.Current(),
		History:      c.history.LoadHistory(),
	}

	decision := Decide(inputs)
	result.Decision = decision
	c.metrics.IncEvaluationsTotal()

	if !decision.Show() {
		c.metrics.IncSuppressionsTotal(string(decision.Reason))
		c.logger.Infof(providers.TypeEngine, "Evaluation %s: no prompt (%s)", cycleID, decision.Reason)
		return result, nil
	}

	c.state.Store(int32(statePresenting))
	c.logger.Infof(providers.TypeEngine, "Evaluation %s: presenting %s", cycleID, decision.Variant)

	outcome, err := c.presenter.Present(ctx, cycleID, decision.Variant)
	if err != nil {
		// abandoned: history untouched, counter not inflated
		c.logger.Warnf(providers.TypeEngine, "Presentation %s abandoned: %v", cycleID, err)
		return result, nil
	}
	result.Outcome = outcome

	c.state.Store(int32(stateRecording))

	updated := inputs.History.Recorded(today, decision.Variant, outcome)
	saveErr := c.history.SaveHistory(updated)
	if saveErr == nil {
		result.Recorded = true
		c.logger.Infof(providers.TypeEngine, "Evaluation %s: %s recorded, shown %d time(s)", cycleID, outcome, updated.TimesShown)
	} else {
		c.logger.Errorf(providers.TypeEngine, "Recording %s failed: %v", cycleID, saveErr)
	}

	c.metrics.IncPresentationsTotal(string(decision.Variant), string(outcome))
	c.events.Fire(models.PromptEvent{
		ID:         uuid.NewString(),
		CycleID:    cycleID,
		Variant:    decision.Variant,
		Outcome:    outcome,
		TimesShown: updated.TimesShown,
		OccurredAt: now,
	})

	if saveErr != nil {
		return result, fmt.Errorf("record prompt outcome: %w", saveErr)
	}
	return result, nil
}

// State names the machine's current position for introspection.
func (c *Coordinator) State() string {
	return coordState(c.state.Load()).String()
}

// LastResult returns a copy of the most recently finished cycle, or nil
// when none has finished yet.
func (c *Coordinator) LastResult() *CycleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResult == nil {
		return nil
	}
	cp := *c.lastResult
	return &cp
}
