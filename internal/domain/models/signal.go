package models

import "time"

// SignalObservation is one raw reading from an upstream collector
// (news, social, on-chain) for a single asset. Consumed once, never mutated.
type SignalObservation struct {
	Asset      string
	Sentiment  float64 // bounded [-1, 1]
	Confidence float64 // bounded [0, 1]
	Source     string  // "news", "social", "onchain"
	ObservedAt time.Time
}

// NormalizedSignal is the per-asset fusion of all observations for one run:
// confidence-weighted mean sentiment plus an aggregated confidence.
type NormalizedSignal struct {
	Asset      string
	Sentiment  float64 // canonical [-1, 1]
	Confidence float64 // [floor, 1]
}

// InvestorView is one absolute view in Black-Litterman terms: the implied
// excess-return delta (a Q entry) and its variance (a diagonal Omega entry).
type InvestorView struct {
	Asset    string
	Delta    float64
	Variance float64 // strictly positive
}
