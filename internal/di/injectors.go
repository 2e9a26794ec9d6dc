//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"mindbloom/internal"
	"mindbloom/internal/controllers"
	"mindbloom/internal/progress"
	"mindbloom/internal/providers"
	"mindbloom/internal/services"
	"mindbloom/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewStoreProvider,

		progress.NewMoodReader,
		progress.NewStressReader,
		progress.NewHabitReader,
		progress.NewSleepReader,
		progress.NewAggregator,
		progress.NewEnricher,
		progress.NewHistory,
		progress.NewZstdCompressor,
		progress.NewSnapshotManager,
		progress.NewScheduler,

		services.NewProgressService,
		services.NewNotificationService,
		services.NewTrackingService,

		controllers.NewProgressController,
		controllers.NewNotificationController,
		controllers.NewTrackingController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
