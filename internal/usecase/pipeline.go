package usecase

import (
	"context"
	"math"
	"time"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
	"AlphaPlan/internal/services/allocation"
	"AlphaPlan/pkg/logger"
)

// Stage names the pipeline states. Transitions are strictly forward; any
// failure is terminal.
type Stage string

const (
	StageIngested   Stage = "INGESTED"
	StageNormalized Stage = "NORMALIZED"
	StageViewed     Stage = "VIEWED"
	StageAllocated  Stage = "ALLOCATED"
	StageSized      Stage = "SIZED"
	StageGoverned   Stage = "GOVERNED"
	StageSerialized Stage = "SERIALIZED"
	StageFailed     Stage = "FAILED"
)

// PlanPipeline executes one optimization run end to end:
// normalize -> synthesize views -> posterior blend -> size -> govern ->
// serialize. Each run owns its own universe-indexed state; nothing is shared
// across concurrent runs. A failing stage means no artifact is written.
type PlanPipeline struct {
	normalizer  *allocation.Normalizer
	synthesizer *allocation.Synthesizer
	allocator   *allocation.Allocator
	sizer       *allocation.Sizer
	governor    *allocation.Governor
	store       domrepo.PlanStore
	metrics     domrepo.Metrics
	log         *logger.Logger
	now         func() time.Time
}

func NewPlanPipeline(
	normalizer *allocation.Normalizer,
	synthesizer *allocation.Synthesizer,
	allocator *allocation.Allocator,
	sizer *allocation.Sizer,
	governor *allocation.Governor,
	store domrepo.PlanStore,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *PlanPipeline {
	return &PlanPipeline{
		normalizer:  normalizer,
		synthesizer: synthesizer,
		allocator:   allocator,
		sizer:       sizer,
		governor:    governor,
		store:       store,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
	}
}

// Run executes the pipeline for one input snapshot. It returns either a
// complete, persisted TradePlan or a RunError naming the stage that failed —
// never a truncated plan.
func (p *PlanPipeline) Run(ctx context.Context, input *models.RunInput) (*models.TradePlan, error) {
	if len(input.Universe) == 0 {
		return nil, p.fail(StageIngested, &models.EmptyUniverseError{})
	}

	signals, err := timed(p, StageNormalized, func() ([]models.NormalizedSignal, error) {
		return p.normalizer.Normalize(ctx, input.Universe, input.Observations)
	})
	if err != nil {
		return nil, p.fail(StageNormalized, err)
	}

	views, _ := timed(p, StageViewed, func() ([]models.InvestorView, error) {
		return p.synthesizer.Synthesize(signals), nil
	})

	estimate, err := timed(p, StageAllocated, func() (*models.PosteriorEstimate, error) {
		return p.allocator.Allocate(&input.Prior, views)
	})
	if err != nil {
		return nil, p.fail(StageAllocated, err)
	}

	sized, _ := timed(p, StageSized, func() ([]models.PositionSize, error) {
		return p.sizer.Size(input.Universe, estimate, signals), nil
	})

	governed, _ := timed(p, StageGoverned, func() ([]models.PositionSize, error) {
		return p.governor.Govern(sized, input.Drawdown, input.MacroSentiment), nil
	})

	plan := &models.TradePlan{
		Universe:    input.Universe,
		Positions:   governed,
		RiskSummary: summarize(governed),
		GeneratedAt: p.now().UTC(),
	}

	start := time.Now()
	saveErr := p.store.Save(ctx, plan)
	p.metrics.RecordStageLatency(string(StageSerialized), time.Since(start).Seconds())
	if saveErr != nil {
		return nil, p.fail(StageSerialized, saveErr)
	}

	p.metrics.RecordRun("ok")
	p.metrics.RecordGrossExposure(plan.RiskSummary.GrossExposure)
	p.log.Info("trade plan serialized",
		logger.Int("assets", len(plan.Positions)),
		logger.Float64("gross_exposure", plan.RiskSummary.GrossExposure),
		logger.Float64("max_position", plan.RiskSummary.MaxPosition))
	return plan, nil
}

func (p *PlanPipeline) fail(stage Stage, err error) error {
	p.metrics.RecordStageFailure(string(stage))
	p.metrics.RecordRun("failed")
	p.log.Error("run moved to FAILED", logger.String("stage", string(stage)), logger.Error(err))
	return &models.RunError{Stage: string(stage), Err: err}
}

// timed records stage latency around fn.
func timed[T any](p *PlanPipeline, stage Stage, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	p.metrics.RecordStageLatency(string(stage), time.Since(start).Seconds())
	return v, err
}

func summarize(positions []models.PositionSize) models.RiskSummary {
	var s models.RiskSummary
	for _, p := range positions {
		abs := math.Abs(p.Fraction)
		s.GrossExposure += abs
		if abs > s.MaxPosition {
			s.MaxPosition = abs
		}
	}
	return s
}
