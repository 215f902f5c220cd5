package allocation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/logger"
)

func TestAllocateScalarPosterior(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	prior := &models.MarketPrior{
		Equilibrium: []float64{0.0},
		Covariance:  [][]float64{{0.04}},
	}
	omega := 0.05 / 0.9
	views := []models.InvestorView{{Asset: "NEO", Delta: 0.2, Variance: omega}}

	est, err := a.Allocate(prior, views)
	require.NoError(t, err)

	// closed form for n=1: tauSigma = 0.002
	invTS := 1.0 / 0.002
	invO := 1.0 / omega
	blend := 1.0 / (invTS + invO)
	wantReturn := blend * (invTS*0.0 + invO*0.2)
	wantVar := 0.04 + blend

	require.InDelta(t, wantReturn, est.Returns[0], 1e-12)
	require.InDelta(t, wantVar, est.Covariance[0][0], 1e-12)
}

func TestAllocatePullsTowardViewWithConfidence(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	prior := &models.MarketPrior{
		Equilibrium: []float64{0.0},
		Covariance:  [][]float64{{0.04}},
	}

	weak, err := a.Allocate(prior, []models.InvestorView{{Asset: "NEO", Delta: 0.2, Variance: 0.5}})
	require.NoError(t, err)
	strong, err := a.Allocate(prior, []models.InvestorView{{Asset: "NEO", Delta: 0.2, Variance: 0.005}})
	require.NoError(t, err)

	// posterior sits between prior (0) and view (0.2); tighter view pulls harder
	require.Greater(t, weak.Returns[0], 0.0)
	require.Less(t, weak.Returns[0], 0.2)
	require.Greater(t, strong.Returns[0], weak.Returns[0])
}

func TestAllocateDiagonalIndependence(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	prior := &models.MarketPrior{
		Equilibrium: []float64{0.0, 0.0},
		Covariance:  [][]float64{{0.04, 0}, {0, 0.04}},
	}
	views := []models.InvestorView{
		{Asset: "NEO", Delta: 0.2, Variance: 0.05 / 0.9},
		{Asset: "GAS", Delta: -0.05, Variance: 0.05 / 0.3},
	}

	est, err := a.Allocate(prior, views)
	require.NoError(t, err)

	require.Greater(t, est.Returns[0], 0.0)
	require.Less(t, est.Returns[1], 0.0)
	// diagonal prior keeps the posterior diagonal
	require.InDelta(t, 0.0, est.Covariance[0][1], 1e-12)
	require.Greater(t, est.Covariance[0][0], 0.04)
}

func TestAllocateRidgeFallback(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	// singular but PSD covariance: Cholesky fails, ridge rescues the run
	prior := &models.MarketPrior{
		Equilibrium: []float64{0.01, 0.01},
		Covariance:  [][]float64{{0, 0}, {0, 0}},
	}
	views := []models.InvestorView{
		{Asset: "NEO", Delta: 0.2, Variance: 0.1},
		{Asset: "GAS", Delta: 0.1, Variance: 0.1},
	}

	est, err := a.Allocate(prior, views)
	require.NoError(t, err)
	for i := range est.Returns {
		require.False(t, math.IsNaN(est.Returns[i]))
		require.False(t, math.IsInf(est.Returns[i], 0))
	}
}

func TestAllocateSingularMatrixError(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	// negative variance cannot be rescued by a small ridge: corrupt prior
	prior := &models.MarketPrior{
		Equilibrium: []float64{0.0},
		Covariance:  [][]float64{{-1.0}},
	}
	views := []models.InvestorView{{Asset: "NEO", Delta: 0.2, Variance: 0.1}}

	_, err := a.Allocate(prior, views)
	var singErr *models.SingularMatrixError
	require.ErrorAs(t, err, &singErr)
}

func TestAllocateDimensionMismatch(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	prior := &models.MarketPrior{
		Equilibrium: []float64{0.0},
		Covariance:  [][]float64{{0.04}},
	}
	views := []models.InvestorView{
		{Asset: "NEO", Delta: 0.2, Variance: 0.1},
		{Asset: "GAS", Delta: 0.1, Variance: 0.1},
	}

	_, err := a.Allocate(prior, views)
	require.Error(t, err)
}

func TestAllocateNoViews(t *testing.T) {
	a := NewAllocator(testEngine(), logger.Nop())

	_, err := a.Allocate(&models.MarketPrior{}, nil)
	var emptyErr *models.EmptyUniverseError
	require.ErrorAs(t, err, &emptyErr)
}
