package providers

import (
	"os"

	"dbpd/internal/structures"
)

type OnboardingProviderInterface interface {
	IsOnboardingCompleted() bool
}

// MarkerFileOnboardingProvider treats the existence of the marker file the
// host application drops after its first-run flow as onboarding completion.
type MarkerFileOnboardingProvider struct {
	path string
}

func NewOnboardingProvider(conf *structures.Config) OnboardingProviderInterface {
	return &MarkerFileOnboardingProvider{path: conf.Prompt.OnboardingMarkerPath}
}

func (p *MarkerFileOnboardingProvider) IsOnboardingCompleted() bool {
	_, err := os.Stat(p.path)
	return err == nil
}
