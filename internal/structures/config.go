package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// PromptConfig carries the device-local facts the engine needs: which
// calendar the user lives in and where the install/onboarding markers sit.
type PromptConfig struct {
	Timezone             string `yaml:"timezone"`
	InstallStampPath     string `yaml:"installStampPath" validate:"required|unixPath"`
	OnboardingMarkerPath string `yaml:"onboardingMarkerPath" validate:"required|unixPath"`
	NewUserThresholdDays int    `yaml:"newUserThresholdDays" validate:"uint"`
	UserTypeOverride     string `yaml:"userTypeOverride"`
}

// StatusConfig controls the OS default-browser probe.
type StatusConfig struct {
	DesktopEntry    string        `yaml:"desktopEntry" validate:"required"`
	ProbeTimeout    time.Duration `yaml:"probeTimeout" validate:"required|min:1"`
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"required|min:1"`
}

// FlagsConfig points at the remote-config snapshot file the host app
// drops on disk. Watch enables live reload on rewrite.
type FlagsConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Watch    bool   `yaml:"watch"`
}

type AnalyticsConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Prompt      PromptConfig    `yaml:"prompt"`
	Status      StatusConfig    `yaml:"status"`
	Flags       FlagsConfig     `yaml:"flags"`
	Analytics   AnalyticsConfig `yaml:"analytics"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
