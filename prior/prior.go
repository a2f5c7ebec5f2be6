// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prior implements the base measures and hyperpriors
// used for a Dirichlet process mixture of normal components.
package prior

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// A Base is a base measure for the parameters
// of a normal mixture component.
//
// A cluster is summarized by its sufficient statistics:
// the number of observations assigned to it,
// their sum,
// and their sum of squares.
// With zero statistics,
// Posterior draws from the base measure itself
// and LogPredictive is the prior predictive
// (the marginal likelihood of the observation
// under the base measure).
type Base interface {
	// Posterior draws component parameters
	// conditioned on the sufficient statistics of a cluster.
	Posterior(rnd *rand.Rand, n int, sum, sumSq float64) (mean, variance float64)

	// LogPredictive returns the log density of an observation
	// under the posterior predictive distribution of a cluster
	// with the given sufficient statistics.
	LogPredictive(y float64, n int, sum, sumSq float64) float64

	// String output for the measure name and parameters.
	String() string
}

// Normal is a base measure with a normal prior on the component mean
// and a fixed component variance.
type Normal struct {
	// Param is the prior distribution of the component mean.
	Param distuv.Normal

	// Variance is the fixed component variance.
	Variance float64
}

// Posterior draws a component mean
// from its conjugate normal posterior.
// The component variance is the fixed variance of the measure.
func (nm Normal) Posterior(rnd *rand.Rand, n int, sum, sumSq float64) (mean, variance float64) {
	mu, tau := nm.posterior(n, sum)
	d := distuv.Normal{
		Mu:    mu,
		Sigma: math.Sqrt(tau),
		Src:   rnd,
	}
	return d.Rand(), nm.Variance
}

// LogPredictive returns the log density of the normal predictive
// of a cluster with the given sufficient statistics.
func (nm Normal) LogPredictive(y float64, n int, sum, sumSq float64) float64 {
	mu, tau := nm.posterior(n, sum)
	d := distuv.Normal{
		Mu:    mu,
		Sigma: math.Sqrt(nm.Variance + tau),
	}
	return d.LogProb(y)
}

// Posterior mean and variance of the component mean
// for a cluster with n observations that sum to sum.
func (nm Normal) posterior(n int, sum float64) (mu, tau float64) {
	t0 := nm.Param.Sigma * nm.Param.Sigma
	prec := 1/t0 + float64(n)/nm.Variance
	tau = 1 / prec
	mu = tau * (nm.Param.Mu/t0 + sum/nm.Variance)
	return mu, tau
}

// String output for the measure name and parameters.
func (nm Normal) String() string {
	return fmt.Sprintf("normal=%.6f,%.6f,%.6f", nm.Param.Mu, nm.Param.Sigma, nm.Variance)
}

// NormInvGamma is a conjugate normal-inverse-gamma base measure:
// the component variance is drawn from an inverse gamma distribution,
// and the component mean from a normal
// with variance scaled by the component variance
// (mean ~ N(Mu, variance/Kappa)).
type NormInvGamma struct {
	// Mu is the prior mean of the component mean.
	Mu float64

	// Kappa is the number of prior pseudo-observations
	// for the component mean.
	Kappa float64

	// Param is the prior distribution of the component variance.
	Param distuv.InverseGamma
}

// Posterior draws a component mean and variance
// from the conjugate normal-inverse-gamma posterior.
func (ng NormInvGamma) Posterior(rnd *rand.Rand, n int, sum, sumSq float64) (mean, variance float64) {
	mu, kappa, alpha, beta := ng.posterior(n, sum, sumSq)

	v := distuv.InverseGamma{
		Alpha: alpha,
		Beta:  beta,
		Src:   rnd,
	}
	variance = v.Rand()

	m := distuv.Normal{
		Mu:    mu,
		Sigma: math.Sqrt(variance / kappa),
		Src:   rnd,
	}
	return m.Rand(), variance
}

// LogPredictive returns the log density of the Student-t predictive
// of a cluster with the given sufficient statistics.
func (ng NormInvGamma) LogPredictive(y float64, n int, sum, sumSq float64) float64 {
	mu, kappa, alpha, beta := ng.posterior(n, sum, sumSq)
	d := distuv.StudentsT{
		Mu:    mu,
		Sigma: math.Sqrt(beta * (kappa + 1) / (alpha * kappa)),
		Nu:    2 * alpha,
	}
	return d.LogProb(y)
}

func (ng NormInvGamma) posterior(n int, sum, sumSq float64) (mu, kappa, alpha, beta float64) {
	mu = ng.Mu
	kappa = ng.Kappa
	alpha = ng.Param.Alpha
	beta = ng.Param.Beta
	if n == 0 {
		return mu, kappa, alpha, beta
	}

	nf := float64(n)
	mean := sum / nf
	kappa = ng.Kappa + nf
	mu = (ng.Kappa*ng.Mu + sum) / kappa
	alpha = ng.Param.Alpha + nf/2
	ss := sumSq - sum*sum/nf
	if ss < 0 {
		// rounding
		ss = 0
	}
	beta = ng.Param.Beta + ss/2 + ng.Kappa*nf*(mean-ng.Mu)*(mean-ng.Mu)/(2*kappa)
	return mu, kappa, alpha, beta
}

// String output for the measure name and parameters.
func (ng NormInvGamma) String() string {
	return fmt.Sprintf("norminvgamma=%.6f,%.6f,%.6f,%.6f", ng.Mu, ng.Kappa, ng.Param.Alpha, ng.Param.Beta)
}

// Gamma is a gamma hyperprior,
// used for the concentration parameter
// of a Dirichlet process.
type Gamma struct {
	// Shape of the gamma distribution.
	Shape float64

	// Rate of the gamma distribution.
	Rate float64
}

// Rand draws a value from the hyperprior.
func (g Gamma) Rand(rnd *rand.Rand) float64 {
	d := distuv.Gamma{
		Alpha: g.Shape,
		Beta:  g.Rate,
		Src:   rnd,
	}
	return d.Rand()
}

// Validate returns an error
// if the hyperprior parameters are not positive.
func (g Gamma) Validate() error {
	if g.Shape <= 0 || math.IsNaN(g.Shape) {
		return fmt.Errorf("invalid gamma hyperprior: shape %.6f", g.Shape)
	}
	if g.Rate <= 0 || math.IsNaN(g.Rate) {
		return fmt.Errorf("invalid gamma hyperprior: rate %.6f", g.Rate)
	}
	return nil
}

// String output for the hyperprior parameters.
func (g Gamma) String() string {
	return fmt.Sprintf("gamma=%.6f,%.6f", g.Shape, g.Rate)
}
