package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/util"
)

// runInputFile is the JSON shape the orchestrator feeds the engine with:
// universe, equilibrium prior, raw observations and the external risk
// context (drawdown, macro sentiment).
type runInputFile struct {
	Universe []string `json:"universe"`
	Prior    struct {
		Equilibrium []float64   `json:"equilibrium"`
		Covariance  [][]float64 `json:"covariance"`
	} `json:"prior"`
	Observations []struct {
		Asset      string  `json:"asset"`
		Sentiment  float64 `json:"sentiment"`
		Confidence float64 `json:"confidence"`
		Source     string  `json:"source"`
		ObservedAt string  `json:"observed_at"`
	} `json:"observations"`
	Drawdown       float64 `json:"drawdown"`
	MacroSentiment float64 `json:"macro_sentiment"`
}

// LoadRunInput reads a run-input snapshot from disk. Observation timestamps
// accept RFC3339 or unix seconds; missing ones default to the load time.
func LoadRunInput(path string) (*models.RunInput, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run input: %w", err)
	}

	var f runInputFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse run input: %w", err)
	}

	now := time.Now().UTC()
	input := &models.RunInput{
		Universe: models.AssetUniverse(f.Universe),
		Prior: models.MarketPrior{
			Equilibrium: f.Prior.Equilibrium,
			Covariance:  f.Prior.Covariance,
		},
		Drawdown:       f.Drawdown,
		MacroSentiment: f.MacroSentiment,
	}
	for _, o := range f.Observations {
		input.Observations = append(input.Observations, models.SignalObservation{
			Asset:      o.Asset,
			Sentiment:  o.Sentiment,
			Confidence: o.Confidence,
			Source:     o.Source,
			ObservedAt: util.ParseTimeDefault(o.ObservedAt, now),
		})
	}
	return input, nil
}
