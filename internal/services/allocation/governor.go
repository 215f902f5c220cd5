package allocation

import (
	"math"

	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/config"
	"AlphaPlan/pkg/logger"
)

// Governor applies the hard risk constraints. They always win over the
// Kelly-derived fraction: soft multipliers (risk appetite, macro sentiment)
// run first, then the per-position clamp, the dust filter, the aggregate
// shrink, and finally drawdown damping.
type Governor struct {
	cfg *config.Engine
	log *logger.Logger
}

func NewGovernor(cfg *config.Engine, log *logger.Logger) *Governor {
	return &Governor{cfg: cfg, log: log}
}

// Govern produces the final fractions from the raw Kelly sizes. Input order
// is preserved; the aggregate shrink is uniform so relative weights survive.
func (g *Governor) Govern(positions []models.PositionSize, drawdown, macroSentiment float64) []models.PositionSize {
	mult := riskLevelMultiplier(g.cfg.RiskLevel) * macroMultiplier(macroSentiment)

	out := make([]models.PositionSize, len(positions))
	copy(out, positions)
	for i := range out {
		f := out[i].RawFraction * mult
		f = clamp(f, -g.cfg.MaxPosition, g.cfg.MaxPosition)
		if math.Abs(f) < g.cfg.MinPosition {
			f = 0 // too small to trade
		}
		out[i].Fraction = f
	}

	var gross float64
	for _, p := range out {
		gross += math.Abs(p.Fraction)
	}
	if gross > g.cfg.MaxAggregateExposure {
		scale := g.cfg.MaxAggregateExposure / gross
		for i := range out {
			out[i].Fraction *= scale
		}
		g.log.Warn("aggregate exposure ceiling hit, shrinking positions",
			logger.Float64("gross", gross), logger.Float64("scale", scale))
	}

	if drawdown > g.cfg.DrawdownThreshold {
		for i := range out {
			out[i].Fraction *= g.cfg.DrawdownDamping
		}
		g.log.Warn("drawdown above threshold, damping all positions",
			logger.Float64("drawdown", drawdown), logger.Float64("damping", g.cfg.DrawdownDamping))
	}

	return out
}

// riskLevelMultiplier buckets user risk appetite: conservative books trade a
// quarter of the sized fraction, aggressive books one and a half.
func riskLevelMultiplier(level float64) float64 {
	switch {
	case level < 0.25:
		return 0.25
	case level < 0.5:
		return 0.5
	case level < 0.75:
		return 1.0
	default:
		return 1.5
	}
}

// macroMultiplier maps macro sentiment in [-1, 1] to a portfolio-wide scaling
// in [0.3, 1.8], neutral at 1.
func macroMultiplier(m float64) float64 {
	return clamp(1+0.5*m, 0.3, 1.8)
}
