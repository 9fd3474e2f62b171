package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"dbpd/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "DBPD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "DBPD_SAVE_INTERVAL")
	viper.BindEnv("status.desktopEntry", "DBPD_DESKTOP_ENTRY")
	viper.BindEnv("status.refreshInterval", "DBPD_STATUS_REFRESH_INTERVAL")
	viper.BindEnv("flags.filePath", "DBPD_FLAGS_FILE")
	viper.BindEnv("analytics.endpoint", "DBPD_ANALYTICS_ENDPOINT")
	viper.BindEnv("cache.enabled", "DBPD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "DBPD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "DefaultBrowserPromptDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
