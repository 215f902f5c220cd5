package allocation

import (
	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/config"
)

// Sizer converts posterior return and variance into signed capital fractions
// using the continuous-form Kelly rule f = mu / sigma^2, damped by the
// configured fractional-Kelly multiplier. The sign carries the direction:
// negative means short.
type Sizer struct {
	cfg *config.Engine
}

func NewSizer(cfg *config.Engine) *Sizer {
	return &Sizer{cfg: cfg}
}

// Size computes the per-asset Kelly fraction from the diagonal of the
// posterior covariance. A variance at or below variance_epsilon yields a zero
// position: the signal is degenerate, not infinitely attractive.
func (s *Sizer) Size(universe models.AssetUniverse, est *models.PosteriorEstimate, signals []models.NormalizedSignal) []models.PositionSize {
	out := make([]models.PositionSize, len(universe))
	for i, asset := range universe {
		variance := est.Covariance[i][i]
		var f float64
		if variance > s.cfg.VarianceEpsilon {
			f = s.cfg.KellyFraction * est.Returns[i] / variance
		}
		out[i] = models.PositionSize{
			Asset:       asset,
			RawFraction: f,
			Fraction:    f,
			Confidence:  signals[i].Confidence,
		}
	}
	return out
}
