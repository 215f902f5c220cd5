package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
	internalrepo "AlphaPlan/internal/repository"
	"AlphaPlan/internal/services/allocation"
	"AlphaPlan/internal/usecase"
	"AlphaPlan/pkg/config"
	"AlphaPlan/pkg/logger"
	"AlphaPlan/pkg/metrics"
	"AlphaPlan/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideEngineConfig re-checks the engine bounds so a library caller that
// skipped config.Load still gets a typed ConfigurationError at startup.
func ProvideEngineConfig(cfg *config.Config) (*config.Engine, error) {
	if err := cfg.Engine.Check(); err != nil {
		return nil, &models.ConfigurationError{Reason: err.Error()}
	}
	return &cfg.Engine, nil
}

// ProvidePlanStore wires the serializer targets: the file artifact always,
// plus the Redis mirror when enabled.
func ProvidePlanStore(cfg *config.Config, log *logger.Logger) (domrepo.PlanStore, error) {
	fileStore := internalrepo.NewFilePlanStore(cfg.Artifact.Path, log)
	if !cfg.Redis.Enabled {
		return fileStore, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return internalrepo.NewMultiPlanStore(fileStore, internalrepo.NewRedisPlanStore(client, cfg.Redis.Key)), nil
}

// ProvideNormalizer creates the signal normalizer stage.
func ProvideNormalizer(eng *config.Engine, log *logger.Logger, m domrepo.Metrics) *allocation.Normalizer {
	return allocation.NewNormalizer(eng, log, m)
}

// ProvideSynthesizer creates the view synthesizer stage.
func ProvideSynthesizer(eng *config.Engine) *allocation.Synthesizer {
	return allocation.NewSynthesizer(eng)
}

// ProvideAllocator creates the posterior allocator stage.
func ProvideAllocator(eng *config.Engine, log *logger.Logger) *allocation.Allocator {
	return allocation.NewAllocator(eng, log)
}

// ProvideSizer creates the capital sizer stage.
func ProvideSizer(eng *config.Engine) *allocation.Sizer {
	return allocation.NewSizer(eng)
}

// ProvideGovernor creates the risk governor stage.
func ProvideGovernor(eng *config.Engine, log *logger.Logger) *allocation.Governor {
	return allocation.NewGovernor(eng, log)
}

// ProvidePipeline assembles the full optimization pipeline.
func ProvidePipeline(
	normalizer *allocation.Normalizer,
	synthesizer *allocation.Synthesizer,
	allocator *allocation.Allocator,
	sizer *allocation.Sizer,
	governor *allocation.Governor,
	store domrepo.PlanStore,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.PlanPipeline {
	return usecase.NewPlanPipeline(normalizer, synthesizer, allocator, sizer, governor, store, m, log)
}

// ProvideApp creates the application wrapper.
func ProvideApp(cfg *config.Config, pipeline *usecase.PlanPipeline, store domrepo.PlanStore, log *logger.Logger) *server.App {
	return server.New(cfg, pipeline, store, log)
}
