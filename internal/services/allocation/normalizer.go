package allocation

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"AlphaPlan/internal/domain/models"
	domrepo "AlphaPlan/internal/domain/repository"
	"AlphaPlan/pkg/config"
	"AlphaPlan/pkg/logger"
)

// Normalizer fuses raw per-source observations into one canonical signal per
// universe asset. Bad observations are dropped, never fatal: one rogue source
// must not block the run.
type Normalizer struct {
	cfg     *config.Engine
	log     *logger.Logger
	metrics domrepo.Metrics
}

func NewNormalizer(cfg *config.Engine, log *logger.Logger, m domrepo.Metrics) *Normalizer {
	return &Normalizer{cfg: cfg, log: log, metrics: m}
}

// Normalize produces one NormalizedSignal per universe asset, in universe
// order. Assets without any usable observation get sentiment 0 at the
// confidence floor: "no information", not "certainly neutral".
func (n *Normalizer) Normalize(ctx context.Context, universe models.AssetUniverse, obs []models.SignalObservation) ([]models.NormalizedSignal, error) {
	if len(universe) == 0 {
		return nil, &models.EmptyUniverseError{}
	}

	index := universe.Index()
	grouped := make([][]models.SignalObservation, len(universe))
	for _, o := range obs {
		idx, ok := index[o.Asset]
		if !ok {
			n.log.Warn("observation outside universe, discarding",
				logger.String("asset", o.Asset), logger.String("source", o.Source))
			n.metrics.RecordDiscardedObservation("unknown_asset")
			continue
		}
		if err := validateObservation(o); err != nil {
			n.log.Warn("discarding invalid observation", logger.Error(err))
			n.metrics.RecordDiscardedObservation("out_of_bounds")
			continue
		}
		grouped[idx] = append(grouped[idx], o)
	}

	// Per-asset fusion is independent; fan out and rejoin before the
	// allocator needs the full vector.
	out := make([]models.NormalizedSignal, len(universe))
	g, _ := errgroup.WithContext(ctx)
	for i, asset := range universe {
		g.Go(func() error {
			out[i] = n.fuse(asset, grouped[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// validateObservation returns an InvalidSignalError when a declared bound is
// violated.
func validateObservation(o models.SignalObservation) error {
	if math.IsNaN(o.Sentiment) || o.Sentiment < -1 || o.Sentiment > 1 {
		return &models.InvalidSignalError{Asset: o.Asset, Source: o.Source, Field: "sentiment", Value: o.Sentiment}
	}
	if math.IsNaN(o.Confidence) || o.Confidence < 0 || o.Confidence > 1 {
		return &models.InvalidSignalError{Asset: o.Asset, Source: o.Source, Field: "confidence", Value: o.Confidence}
	}
	return nil
}

// fuse computes the confidence-weighted mean sentiment and the aggregated
// confidence for one asset.
func (n *Normalizer) fuse(asset string, obs []models.SignalObservation) models.NormalizedSignal {
	floor := n.cfg.MinConfidenceFloor
	if len(obs) == 0 {
		return models.NormalizedSignal{Asset: asset, Sentiment: 0, Confidence: floor}
	}

	var weightSum, weighted float64
	for _, o := range obs {
		w := o.Confidence * n.sourceWeight(o.Source)
		weightSum += w
		weighted += w * o.Sentiment
	}
	sentiment := 0.0
	if weightSum > 0 {
		sentiment = weighted / weightSum
	}

	// Aggregate confidence as the complement product: several mediocre
	// sources can add up, but the result never exceeds 1.
	residual := 1.0
	for _, o := range obs {
		residual *= 1 - clamp(o.Confidence*n.sourceWeight(o.Source), 0, 1)
	}
	confidence := clamp(1-residual, floor, 1)

	return models.NormalizedSignal{
		Asset:      asset,
		Sentiment:  clamp(sentiment, -1, 1),
		Confidence: confidence,
	}
}

func (n *Normalizer) sourceWeight(source string) float64 {
	if w, ok := n.cfg.SourceWeights[source]; ok {
		return w
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
