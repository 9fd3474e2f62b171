//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"dbpd/internal"
	"dbpd/internal/controllers"
	"dbpd/internal/models"
	"dbpd/internal/prompt"
	"dbpd/internal/providers"
	"dbpd/internal/services"
	"dbpd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCalendarProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewFlagsProvider,
		providers.NewStatusProvider,
		providers.NewInstallDateProvider,
		providers.NewOnboardingProvider,
		providers.NewUserTypeProvider,
		providers.NewPresenterProvider,
		providers.NewEventSink,

		models.NewStateStore,
		prompt.NewZstdCompressor,
		prompt.NewStateFileManager,
		prompt.NewPersistentStore,
		wire.Bind(new(prompt.ActivityStorage), new(*prompt.PersistentStore)),
		wire.Bind(new(prompt.HistoryStorage), new(*prompt.PersistentStore)),
		prompt.NewActivityTracker,
		prompt.NewDefaultStatusCache,
		prompt.NewCoordinator,
		prompt.NewScheduler,
		services.NewPromptService,
		controllers.NewPromptController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
