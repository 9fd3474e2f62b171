package providers

import (
	"sync"

	"dbpd/internal/models"
	"dbpd/internal/structures"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type FlagsProviderInterface interface {
	IsEnabled() bool
	Settings() models.PromptSettings
}

// FileFlagsProvider reads prompt settings from the remote-config snapshot
// the host application drops on disk. A missing or invalid snapshot never
// propagates: the provider keeps serving the last settings that validated,
// which on a fresh install means the feature is off.
type FileFlagsProvider struct {
	mu      sync.RWMutex
	current models.PromptSettings
	v       *viper.Viper
	logger  Logger
}

func NewFlagsProvider(conf *structures.Config, logger Logger) FlagsProviderInterface {
	fp := &FileFlagsProvider{
		current: models.DefaultPromptSettings(),
		logger:  logger,
	}

	fp.v = viper.New()
	fp.v.SetConfigFile(conf.Flags.FilePath)

	if err := fp.reload(); err != nil {
		logger.Warnf(TypeApp, "Flags snapshot not loaded, prompt stays disabled: %v", err)
	} else {
		logger.Infof(TypeApp, "Flags snapshot loaded from %s", conf.Flags.FilePath)
	}

	if conf.Flags.Watch {
		fp.v.OnConfigChange(func(_ fsnotify.Event) {
			if err := fp.reload(); err != nil {
				fp.logger.Warnf(TypeApp, "Flags reload rejected, keeping previous settings: %v", err)
				return
			}
			fp.logger.Infof(TypeApp, "Flags snapshot reloaded")
		})
		fp.v.WatchConfig()
	}

	return fp
}

func (fp *FileFlagsProvider) reload() error {
	if err := fp.v.ReadInConfig(); err != nil {
		return err
	}

	defaults := models.DefaultPromptSettings()
	next := models.PromptSettings{
		Enabled:            fp.v.GetBool("enabled"),
		MinActiveDays:      intOrDefault(fp.v, "minActiveDays", defaults.MinActiveDays),
		MinInstallAgeDays:  intOrDefault(fp.v, "minInstallAgeDays", defaults.MinInstallAgeDays),
		ReshowIntervalDays: intOrDefault(fp.v, "reshowIntervalDays", defaults.ReshowIntervalDays),
		MaxTimesShown:      intOrDefault(fp.v, "maxTimesShown", defaults.MaxTimesShown),
	}

	if raw := fp.v.Get("eligibleUserTypes"); raw == nil {
		next.EligibleUserTypes = defaults.EligibleUserTypes
	} else {
		types := make([]models.UserType, 0)
		for _, s := range cast.ToStringSlice(raw) {
			t, err := models.ParseUserType(s)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
		next.EligibleUserTypes = types
	}

	if err := next.Validate(); err != nil {
		return err
	}

	fp.mu.Lock()
	fp.current = next
	fp.mu.Unlock()
	return nil
}

func intOrDefault(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	return v.GetInt(key)
}

func (fp *FileFlagsProvider) IsEnabled() bool {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return fp.current.Enabled
}

func (fp *FileFlagsProvider) Settings() models.PromptSettings {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return fp.current.Clone()
}
