package providers

import (
	"time"

	"dbpd/internal/models"
	"dbpd/internal/structures"
)

type UserTypeProviderInterface interface {
	CurrentUserType() models.UserType
}

// InstallAgeUserTypeProvider buckets the profile by install age: new until
// the threshold has passed, existing afterwards. An unknown install date
// counts as new. Returning users cannot be detected from install age alone
// and only arrive through the config override, which always wins.
type InstallAgeUserTypeProvider struct {
	installs  InstallDateProviderInterface
	threshold int
	override  models.UserType
	loc       *time.Location
}

func NewUserTypeProvider(conf *structures.Config, installs InstallDateProviderInterface, loc *time.Location, logger Logger) UserTypeProviderInterface {
	p := &InstallAgeUserTypeProvider{
		installs:  installs,
		threshold: conf.Prompt.NewUserThresholdDays,
		loc:       loc,
	}

	if conf.Prompt.UserTypeOverride != "" {
		t, err := models.ParseUserType(conf.Prompt.UserTypeOverride)
		if err != nil {
			logger.Warnf(TypeApp, "Ignoring invalid userTypeOverride: %v", err)
		} else {
			logger.Infof(TypeApp, "User type pinned to %q by config", t)
			p.override = t
		}
	}

	return p
}

func (p *InstallAgeUserTypeProvider) CurrentUserType() models.UserType {
	if p.override != "" {
		return p.override
	}

	installed, ok := p.installs.InstallDate()
	if !ok {
		return models.UserTypeNew
	}

	age := models.DaysBetween(models.DayOf(installed, p.loc), models.DayOf(time.Now(), p.loc))
	if age < p.threshold {
		return models.UserTypeNew
	}
	return models.UserTypeExisting
}
