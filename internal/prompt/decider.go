package prompt

import (
	"time"

	"dbpd/internal/models"
)

// DecisionInputs is everything one eligibility evaluation looks at. The
// collaborators resolve ambiguity before the values land here: unknown
// install dates arrive as InstallKnown=false, flag outages as the last
// settings that validated.
type DecisionInputs struct {
	Settings     models.PromptSettings
	IsDefault    bool
	UserType     models.UserType
	InstallDay   time.Time
	InstallKnown bool
	Today        time.Time
	Activity     models.UserActivity
	History      models.PromptHistory
}

// Decide runs the eligibility chain in fixed priority order and returns the
// first suppression that applies, or the variant to show when every check
// passes. Pure: no I/O, no clock reads, deterministic for equal inputs.
func Decide(in DecisionInputs) models.Decision {
	// 1. feature switch
	if !in.Settings.Enabled {
		return models.SuppressDecision(models.ReasonDisabled)
	}

	// 2. nothing to ask for
	if in.IsDefault {
		return models.SuppressDecision(models.ReasonAlreadyDefault)
	}

	// 3. user segment
	if !in.Settings.Eligible(in.UserType) {
		return models.SuppressDecision(models.ReasonUserTypeNotEligible)
	}

	// 4. install age; unknown counts as too fresh
	if !in.InstallKnown || models.DaysBetween(in.InstallDay, in.Today) < in.Settings.MinInstallAgeDays {
		return models.SuppressDecision(models.ReasonInstallAge)
	}

	// 5. engagement floor
	if in.Activity.ActiveDays < in.Settings.MinActiveDays {
		return models.SuppressDecision(models.ReasonNotEnoughActiveDays)
	}

	// 6. the user said never
	if in.History.PermanentlyDismissed {
		return models.SuppressDecision(models.ReasonPermanentlyDismissed)
	}

	// 7. lifetime cap
	if in.History.TimesShown >= in.Settings.MaxTimesShown {
		return models.SuppressDecision(models.ReasonMaxTimesShown)
	}

	// 8. cooldown since the last showing
	if !in.History.LastShownDay.IsZero() && models.DaysBetween(in.History.LastShownDay, in.Today) < in.Settings.ReshowIntervalDays {
		return models.SuppressDecision(models.ReasonReshowCooldown)
	}

	// 9. eligible; pick the variant
	if in.History.TimesShown == 0 {
		return models.ShowDecision(models.VariantFirstPrompt)
	}
	return models.ShowDecision(models.VariantReminder)
}
