package models

import "fmt"

// Variant selects the wording of a presented prompt.
type Variant string

const (
	VariantFirstPrompt Variant = "first_prompt"
	VariantReminder    Variant = "reminder"
)

// Outcome is the terminal result of a presentation reported by the host UI.
type Outcome string

const (
	OutcomeAccepted             Outcome = "accepted"
	OutcomeDismissed            Outcome = "dismissed"
	OutcomeDismissedPermanently Outcome = "dismissed_permanently"
)

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeAccepted, OutcomeDismissed, OutcomeDismissedPermanently:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("unknown prompt outcome %q", s)
}

// UserType buckets the profile by how established it is on this device.
type UserType string

const (
	UserTypeNew       UserType = "new"
	UserTypeExisting  UserType = "existing"
	UserTypeReturning UserType = "returning"
)

func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case UserTypeNew, UserTypeExisting, UserTypeReturning:
		return UserType(s), nil
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// Reason explains why an evaluation decided against showing a prompt, or why
// the coordinator refused to start one.
type Reason string

const (
	ReasonDisabled             Reason = "disabled"
	ReasonAlreadyDefault       Reason = "already_default"
	ReasonUserTypeNotEligible  Reason = "user_type_not_eligible"
	ReasonInstallAge           Reason = "install_age"
	ReasonNotEnoughActiveDays  Reason = "not_enough_active_days"
	ReasonPermanentlyDismissed Reason = "permanently_dismissed"
	ReasonMaxTimesShown        Reason = "max_times_shown"
	ReasonReshowCooldown       Reason = "reshow_cooldown"
	ReasonOnboardingIncomplete Reason = "onboarding_incomplete"
)

// Decision is the outcome of one eligibility evaluation. A zero Variant means
// no prompt; Reason then names the first failed check. Decisions are computed
// fresh each evaluation and never persisted.
type Decision struct {
	Variant Variant `json:"variant,omitempty"`
	Reason  Reason  `json:"reason,omitempty"`
}

func (d Decision) Show() bool {
	return d.Variant != ""
}

func ShowDecision(v Variant) Decision {
	return Decision{Variant: v}
}

func SuppressDecision(r Reason) Decision {
	return Decision{Reason: r}
}
