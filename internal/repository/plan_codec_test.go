package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"AlphaPlan/internal/domain/models"
)

func samplePlan() *models.TradePlan {
	return &models.TradePlan{
		Universe: models.AssetUniverse{"NEO", "GAS"},
		Positions: []models.PositionSize{
			{Asset: "NEO", Fraction: 0.3, Confidence: 0.9},
			{Asset: "GAS", Fraction: -0.0123456789, Confidence: 0.3},
		},
		RiskSummary: models.RiskSummary{GrossExposure: 0.3123456789, MaxPosition: 0.3},
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestEncodePlanFormat(t *testing.T) {
	got := string(EncodePlan(samplePlan()))

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "# plan generated=2026-08-30T12:00:00Z gross=0.312346 max=0.300000", lines[0])
	require.Equal(t, "NEO 0.300000 0.900000", lines[1])
	require.Equal(t, "GAS -0.012346 0.300000", lines[2])
}

func TestEncodePlanNormalizesNegativeZero(t *testing.T) {
	plan := samplePlan()
	plan.Positions = []models.PositionSize{
		{Asset: "NEO", Fraction: negZero(), Confidence: 0.05},
	}
	got := string(EncodePlan(plan))
	require.Contains(t, got, "NEO 0.000000 0.050000")
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestEncodePlanDeterministic(t *testing.T) {
	require.Equal(t, EncodePlan(samplePlan()), EncodePlan(samplePlan()))
}
