package services

import (
	"context"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/prompt"
	"dbpd/internal/providers"

	"github.com/google/uuid"
)

type PromptServiceInterface interface {
	RecordTick(now time.Time) (models.UserActivity, error)
	TriggerEvaluation(now time.Time) (string, error)
	PendingPrompt() (providers.PendingPrompt, bool)
	ResolvePrompt(id string, outcome models.Outcome) error
	ResetActivity() error
	Snapshot() models.EngineSnapshot
	ActiveDays() int
	TimesShown() int
	CoordinatorState() string
	Close()
}

// PromptService is the facade the HTTP surface talks to. It owns the
// context evaluation cycles run on; closing the service abandons whatever
// presentation is in flight.
type PromptService struct {
	tracker     *prompt.ActivityTracker
	coordinator *prompt.Coordinator
	status      *prompt.DefaultStatusCache
	flags       providers.FlagsProviderInterface
	userTypes   providers.UserTypeProviderInterface
	installs    providers.InstallDateProviderInterface
	onboarding  providers.OnboardingProviderInterface
	presenter   providers.PresenterInterface
	history     prompt.HistoryStorage
	logger      providers.Logger
	loc         *time.Location

	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewPromptService(
	tracker *prompt.ActivityTracker,
	coordinator *prompt.Coordinator,
	status *prompt.DefaultStatusCache,
	flags providers.FlagsProviderInterface,
	userTypes providers.UserTypeProviderInterface,
	installs providers.InstallDateProviderInterface,
	onboarding providers.OnboardingProviderInterface,
	presenter providers.PresenterInterface,
	history prompt.HistoryStorage,
	logger providers.Logger,
	loc *time.Location,
) PromptServiceInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &PromptService{
		tracker:     tracker,
		coordinator: coordinator,
		status:      status,
		flags:       flags,
		userTypes:   userTypes,
		installs:    installs,
		onboarding:  onboarding,
		presenter:   presenter,
		history:     history,
		logger:      logger,
		loc:         loc,
		baseCtx:     ctx,
		cancel:      cancel,
	}
}

func (s *PromptService) RecordTick(now time.Time) (models.UserActivity, error) {
	return s.tracker.RecordTick(now)
}

// TriggerEvaluation starts one evaluation cycle in the background and
// returns its id immediately. A cycle already in flight is refused with
// prompt.ErrEvaluationInProgress.
func (s *PromptService) TriggerEvaluation(now time.Time) (string, error) {
	if err := s.coordinator.Trigger(); err != nil {
		return "", err
	}

	cycleID := uuid.NewString()
	go func() {
		if _, err := s.coordinator.Run(s.baseCtx, cycleID, now); err != nil {
			s.logger.Errorf(providers.TypeEngine, "Evaluation %s finished with error: %v", cycleID, err)
		}
	}()
	return cycleID, nil
}

func (s *PromptService) PendingPrompt() (providers.PendingPrompt, bool) {
	return s.presenter.Pending()
}

func (s *PromptService) ResolvePrompt(id string, outcome models.Outcome) error {
	return s.presenter.Resolve(id, outcome)
}

func (s *PromptService) ResetActivity() error {
	return s.tracker.Reset()
}

func (s *PromptService) Snapshot() models.EngineSnapshot {
	installDay, known := s.installs.InstallDate()

	snap := models.EngineSnapshot{
		Activity:         s.tracker.Current(),
		History:          s.history.LoadHistory(),
		Settings:         s.flags.Settings(),
		IsDefaultBrowser: s.status.IsDefaultBrowser(),
		UserType:         s.userTypes.CurrentUserType(),
		InstallKnown:     known,
		Onboarded:        s.onboarding.IsOnboardingCompleted(),
		CoordinatorState: s.coordinator.State(),
	}
	if known {
		snap.InstallDay = models.DayOf(installDay, s.loc)
	}
	if last := s.coordinator.LastResult(); last != nil {
		snap.LastCycle = &models.CycleSummary{
			CycleID:    last.CycleID,
			Decision:   last.Decision,
			Outcome:    last.Outcome,
			Recorded:   last.Recorded,
			FinishedAt: last.FinishedAt,
		}
	}
	return snap
}

func (s *PromptService) ActiveDays() int {
	return s.tracker.ActiveDays()
}

func (s *PromptService) TimesShown() int {
	return s.history.LoadHistory().TimesShown
}

func (s *PromptService) CoordinatorState() string {
	return s.coordinator.State()
}

// Close cancels the evaluation context and shuts the presenter rendezvous.
// A prompt still on screen is abandoned and records nothing.
func (s *PromptService) Close() {
	s.cancel()
	s.presenter.Close()
}
