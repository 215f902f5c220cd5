package repository

import (
	"context"

	"AlphaPlan/internal/domain/models"
)

// PlanStore persists a complete trade plan. Every Save fully replaces the
// previous plan (latest-plan semantics, no append log).
type PlanStore interface {
	Save(ctx context.Context, plan *models.TradePlan) error
	Close() error
}

type Metrics interface {
	RecordRun(outcome string)
	RecordStageFailure(stage string)
	RecordStageLatency(stage string, seconds float64)
	RecordDiscardedObservation(reason string)
	RecordGrossExposure(v float64)
}
