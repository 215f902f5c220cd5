package server

import (
	"context"
	"errors"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
	"AlphaPlan/internal/usecase"
	"AlphaPlan/pkg/config"
	applogger "AlphaPlan/pkg/logger"
)

// App bundles the configured pipeline with its run lifecycle. The engine
// itself never touches network or disk; the caller hands it a fully prepared
// RunInput and the plan store is the only persistence it knows about.
type App struct {
	cfg      *config.Config
	pipeline *usecase.PlanPipeline
	store    domrepo.PlanStore
	log      *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, pipeline *usecase.PlanPipeline, store domrepo.PlanStore, log *applogger.Logger) *App {
	return &App{cfg: cfg, pipeline: pipeline, store: store, log: log}
}

// Run executes exactly one optimization run and returns the persisted plan.
// Timeout and cancellation are the caller's responsibility via ctx.
func (a *App) Run(ctx context.Context, input *models.RunInput) (*models.TradePlan, error) {
	a.log.Info("starting optimization run",
		applogger.Strings("universe", input.Universe),
		applogger.Int("observations", len(input.Observations)),
		applogger.Float64("drawdown", input.Drawdown))

	plan, err := a.pipeline.Run(ctx, input)
	if err != nil {
		var runErr *models.RunError
		if errors.As(err, &runErr) {
			a.log.Error("run failed",
				applogger.String("stage", runErr.Stage), applogger.Error(runErr.Err))
		} else {
			a.log.Error("run failed", applogger.Error(err))
		}
		return nil, err
	}
	return plan, nil
}

// Close releases the plan store.
func (a *App) Close() error {
	return a.store.Close()
}
