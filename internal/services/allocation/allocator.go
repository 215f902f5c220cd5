package allocation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"AlphaPlan/internal/domain/models"
	"AlphaPlan/pkg/config"
	"AlphaPlan/pkg/logger"
)

// Allocator blends the market-equilibrium prior with the synthesized views
// into posterior return and covariance estimates. One absolute view per
// universe asset means the pick matrix is the identity, so the
// Black-Litterman posterior reduces to
//
//	E[R|views] = [(tauS)^-1 + O^-1]^-1 [(tauS)^-1 Pi + O^-1 Q]
//	S_post     = S + [(tauS)^-1 + O^-1]^-1
//
// with every inversion done through Cholesky factorizations, never naively.
type Allocator struct {
	cfg *config.Engine
	log *logger.Logger
}

func NewAllocator(cfg *config.Engine, log *logger.Logger) *Allocator {
	return &Allocator{cfg: cfg, log: log}
}

// Allocate computes the posterior estimate for the run. An ill-conditioned
// prior covariance is ridge-regularized and logged rather than failing the
// run; a system that still will not factorize is corrupt prior data and
// surfaces as SingularMatrixError.
func (a *Allocator) Allocate(prior *models.MarketPrior, views []models.InvestorView) (*models.PosteriorEstimate, error) {
	n := len(views)
	if n == 0 {
		return nil, &models.EmptyUniverseError{}
	}
	if len(prior.Equilibrium) != n || len(prior.Covariance) != n {
		return nil, fmt.Errorf("prior dimension mismatch: %d assets, %d equilibrium returns, %d covariance rows",
			n, len(prior.Equilibrium), len(prior.Covariance))
	}

	sigma := mat.NewSymDense(n, nil)
	tauSigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if len(prior.Covariance[i]) != n {
			return nil, fmt.Errorf("prior covariance row %d has %d columns, want %d", i, len(prior.Covariance[i]), n)
		}
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, prior.Covariance[i][j])
			tauSigma.SetSym(i, j, a.cfg.Tau*prior.Covariance[i][j])
		}
	}

	invTauSigma, err := a.invertSPD(tauSigma, "tau-scaled prior covariance")
	if err != nil {
		return nil, err
	}

	// Omega is diagonal and strictly positive; its inverse is elementwise.
	invOmega := make([]float64, n)
	q := make([]float64, n)
	for i, v := range views {
		invOmega[i] = 1 / v.Variance
		q[i] = v.Delta
	}

	// M^-1 = (tauS)^-1 + O^-1
	mInv := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := invTauSigma.At(i, j)
			if i == j {
				v += invOmega[i]
			}
			mInv.SetSym(i, j, v)
		}
	}
	blend, err := a.invertSPD(mInv, "posterior precision")
	if err != nil {
		return nil, err
	}

	// rhs = (tauS)^-1 Pi + O^-1 Q
	pi := mat.NewVecDense(n, append([]float64(nil), prior.Equilibrium...))
	var rhs mat.VecDense
	rhs.MulVec(invTauSigma, pi)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, rhs.AtVec(i)+invOmega[i]*q[i])
	}

	var posterior mat.VecDense
	posterior.MulVec(blend, &rhs)

	est := &models.PosteriorEstimate{
		Returns:    make([]float64, n),
		Covariance: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		est.Returns[i] = posterior.AtVec(i)
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = sigma.At(i, j) + blend.At(i, j)
		}
		est.Covariance[i] = row
	}
	return est, nil
}

// invertSPD inverts a symmetric positive-definite matrix via Cholesky,
// falling back to a ridge-regularized copy when factorization fails.
func (a *Allocator) invertSPD(s *mat.SymDense, what string) (*mat.SymDense, error) {
	var chol mat.Cholesky
	if !chol.Factorize(s) {
		a.log.Warn("matrix ill-conditioned, applying ridge regularization (degraded precision)",
			logger.String("matrix", what), logger.Float64("ridge", a.cfg.RidgeEpsilon))
		n, _ := s.Dims()
		ridged := mat.NewSymDense(n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				v := s.At(i, j)
				if i == j {
					v += a.cfg.RidgeEpsilon
				}
				ridged.SetSym(i, j, v)
			}
		}
		if !chol.Factorize(ridged) {
			return nil, &models.SingularMatrixError{Op: what}
		}
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, &models.SingularMatrixError{Op: what}
	}
	return &inv, nil
}
