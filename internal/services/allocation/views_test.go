package allocation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"AlphaPlan/internal/domain/models"
)

func TestSynthesizeScalesSentiment(t *testing.T) {
	s := NewSynthesizer(testEngine())

	views := s.Synthesize([]models.NormalizedSignal{
		{Asset: "NEO", Sentiment: 0.8, Confidence: 0.9},
		{Asset: "GAS", Sentiment: -0.2, Confidence: 0.3},
	})
	require.Len(t, views, 2)

	require.InDelta(t, 0.25*0.8, views[0].Delta, 1e-12)
	require.InDelta(t, 0.05/0.9, views[0].Variance, 1e-12)
	require.InDelta(t, 0.25*-0.2, views[1].Delta, 1e-12)
	require.InDelta(t, 0.05/0.3, views[1].Variance, 1e-12)
}

func TestSynthesizeOmegaStrictlyPositive(t *testing.T) {
	s := NewSynthesizer(testEngine())

	// even a zero-confidence signal must not produce a singular Omega
	views := s.Synthesize([]models.NormalizedSignal{
		{Asset: "NEO", Sentiment: 0, Confidence: 0},
	})
	require.Greater(t, views[0].Variance, 0.0)
}

func TestSynthesizeHigherConfidenceLowerVariance(t *testing.T) {
	s := NewSynthesizer(testEngine())

	views := s.Synthesize([]models.NormalizedSignal{
		{Asset: "A", Sentiment: 0.5, Confidence: 0.3},
		{Asset: "B", Sentiment: 0.5, Confidence: 0.9},
	})
	require.Greater(t, views[0].Variance, views[1].Variance)
}
