package models

import "time"

// AssetUniverse is the ordered set of asset ids for one run. The order
// defines vector and matrix indexing for every downstream stage and is
// immutable once a run starts.
type AssetUniverse []string

// Index maps each asset id to its position in the universe.
func (u AssetUniverse) Index() map[string]int {
	idx := make(map[string]int, len(u))
	for i, asset := range u {
		idx[asset] = i
	}
	return idx
}

// MarketPrior is the per-run equilibrium snapshot: expected excess returns
// (Pi) and a symmetric PSD covariance matrix (Sigma) over the universe.
// Read-only input, sourced externally.
type MarketPrior struct {
	Equilibrium []float64
	Covariance  [][]float64
}

// PosteriorEstimate holds the blended expected excess returns and covariance
// after combining the prior with the view set.
type PosteriorEstimate struct {
	Returns    []float64
	Covariance [][]float64
}

// PositionSize is the sizing decision for a single asset. Fraction is the
// signed share of capital after governing; negative means short.
type PositionSize struct {
	Asset       string
	Fraction    float64
	RawFraction float64 // Kelly fraction before risk clipping
	Confidence  float64
}

// RiskSummary aggregates the exposure figures a plan reader checks first.
type RiskSummary struct {
	GrossExposure float64 // sum of absolute fractions
	MaxPosition   float64 // largest absolute single fraction
}

// TradePlan is the terminal artifact of a run. Once serialized it is
// immutable; a new run writes a new plan, it never mutates a prior one.
type TradePlan struct {
	Universe    AssetUniverse
	Positions   []PositionSize // universe order
	RiskSummary RiskSummary
	GeneratedAt time.Time
}

// RunInput bundles everything a single optimization run consumes. Supplied
// in-memory by external collaborators; the engine performs no I/O on it.
type RunInput struct {
	Universe       AssetUniverse
	Prior          MarketPrior
	Observations   []SignalObservation
	Drawdown       float64 // current peak-to-trough drawdown, [0, 1]
	MacroSentiment float64 // [-1, 1], 0 = neutral
}
