//go:build wireinject
// +build wireinject

package di

import (
	"AlphaPlan/pkg/config"
	"AlphaPlan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideEngineConfig,

		// Serializer targets
		ProvidePlanStore,

		// Pipeline stages
		ProvideNormalizer,
		ProvideSynthesizer,
		ProvideAllocator,
		ProvideSizer,
		ProvideGovernor,

		ProvidePipeline,
		ProvideApp,
	)
	return &server.App{}, nil
}
