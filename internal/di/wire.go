//go:build wireinject
// +build wireinject

package di

import (
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/config"
	"MacroPulse/pkg/server"

	"github.com/google/wire"
)

var briefingSet = wire.NewSet(
	// Ambient
	ProvideLogger,
	ProvideMetrics,
	ProvideCache,

	// Providers
	ProvideMacroSource,
	ProvideMarketSource,
	ProvideHeadlineSource,

	// Sinks
	ProvideArchive,
	ProvidePublisher,
	ProvideDispatcher,

	ProvideBriefingUseCase,
)

// InitializeApp wires up all dependencies and returns the application.
// The cleanup closes the cache, archive and publisher; call it after Run returns.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		briefingSet,
		ProvideScheduler,
		ProvideHTTPHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil, nil
}

// InitializeBriefing wires the pipeline for one-shot terminal use.
func InitializeBriefing(cfg *config.Config) (*usecase.BriefingUseCase, func(), error) {
	wire.Build(briefingSet)
	return &usecase.BriefingUseCase{}, nil, nil
}
