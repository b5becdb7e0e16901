//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	v1routes "meetingmind/internal/api/v1/routes"
	"meetingmind/internal/api/v1/services"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/config"
)

var infrastructureSet = wire.NewSet(
	provideLogger,
	provideStore,
	wire.Bind(new(repository.Store), new(*repository.SQLStore)),
	provideObjectStorage,
	provideRedis,
	metrics.New,
	provideMemoryBroker,
	provideRelay,
	provideBroker,
	provideRateLimits,
	provideClock,
	provideRetry,
	provideTranscriber,
	provideLanguageModel,
)

var serviceSet = wire.NewSet(
	services.NewEventPublisher,
	provideMeetingService,
	provideTranscriptionService,
	services.NewSummaryService,
	services.NewTranslationService,
	services.NewCommentService,
	provideShareService,
	services.NewNotesService,
	services.NewTemplateService,
	services.NewInsightsService,
	services.NewExportService,
	provideConfigService,
)

func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, func(), error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		provideRealtimeHandler,
		wire.Struct(new(v1routes.ServiceContainer), "*"),
		provideServer,
		NewApplication,
	)
	return nil, nil, nil
}
