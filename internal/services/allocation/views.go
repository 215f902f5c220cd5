package allocation

import (
	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/config"
)

// Synthesizer maps normalized signals into view space: the Q vector of
// implied excess-return deltas and the diagonal of the view-uncertainty
// matrix Omega, both ordered by the universe.
type Synthesizer struct {
	cfg *config.Engine
}

func NewSynthesizer(cfg *config.Engine) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Synthesize builds one absolute view per signal. Variance is the inverse of
// confidence scaled by variance_scale; the confidence floor guarantees Omega
// stays strictly positive-diagonal, so the posterior blend is always solvable.
func (s *Synthesizer) Synthesize(signals []models.NormalizedSignal) []models.InvestorView {
	views := make([]models.InvestorView, len(signals))
	for i, sig := range signals {
		confidence := sig.Confidence
		if confidence < s.cfg.MinConfidenceFloor {
			confidence = s.cfg.MinConfidenceFloor
		}
		views[i] = models.InvestorView{
			Asset:    sig.Asset,
			Delta:    s.cfg.SentimentSensitivity * sig.Sentiment,
			Variance: s.cfg.VarianceScale / confidence,
		}
	}
	return views
}
