// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Scheme is a form of the Gibbs update
// for the cluster assignments.
type Scheme string

// Valid schemes.
const (
	// Marginal weights each active component
	// by the posterior predictive density of the observation
	// given the component sufficient statistics
	// (the collapsed update).
	Marginal Scheme = "marginal"

	// Direct weights each active component
	// by the density of the observation
	// at the current component parameters.
	Direct Scheme = "direct"
)

// Order is the update order of the observations
// in a sweep.
type Order string

// Valid orders.
const (
	// Fixed updates the observations in study order.
	Fixed Order = "fixed"

	// Random shuffles the observations on each sweep.
	Random Order = "random"
)

// Config are the run time options of a sampler chain.
type Config struct {
	// Iterations is the total number of sweeps.
	Iterations int

	// BurnIn is the number of sweeps discarded
	// before any sample is recorded.
	// It must be smaller than Iterations.
	BurnIn int

	// Thinning is the number of sweeps
	// between recorded samples.
	// It must be at least one.
	Thinning int

	// Seed of the random number generator.
	// Runs with the same seed,
	// data,
	// and configuration are reproducible.
	Seed uint64

	// Order of the observation updates in a sweep.
	// By default the order is fixed.
	Order Order

	// Scheme of the Gibbs update.
	// By default the update is marginal.
	Scheme Scheme
}

func (c Config) validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	if c.BurnIn < 0 || c.BurnIn >= c.Iterations {
		return fmt.Errorf("%w: burn-in %d with %d iterations", ErrInvalidConfig, c.BurnIn, c.Iterations)
	}
	if c.Thinning < 1 {
		return fmt.Errorf("%w: thinning %d", ErrInvalidConfig, c.Thinning)
	}
	switch c.Order {
	case Fixed, Random, "":
	default:
		return fmt.Errorf("%w: order %q", ErrInvalidConfig, c.Order)
	}
	switch c.Scheme {
	case Marginal, Direct, "":
	default:
		return fmt.Errorf("%w: scheme %q", ErrInvalidConfig, c.Scheme)
	}
	return nil
}

// Run starts a chain from scratch
// and makes the configured number of sweeps,
// recording a sample after each post burn-in sweep
// at the thinning interval.
// Each sweep is a full pass over the observations,
// a refresh of the component parameters,
// and an update of the concentration parameter.
//
// The context is checked between sweeps,
// never in the middle of one,
// so that a cancelled run returns the samples
// recorded up to that point
// together with the cause of the cancellation.
func (s *Sampler) Run(ctx context.Context, cfg Config) ([]Sample, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s.rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	s.degen = 0
	s.alpha = s.alpha0
	if err := s.init(); err != nil {
		return nil, err
	}

	var samples []Sample
	for it := range cfg.Iterations {
		if err := context.Cause(ctx); err != nil {
			return samples, err
		}

		if err := s.sweep(cfg.Scheme, cfg.Order); err != nil {
			return samples, err
		}
		if err := s.refresh(); err != nil {
			return samples, err
		}
		a, err := NextAlpha(s.rnd, s.alpha, s.comps.len(), len(s.vals), s.hyper.Shape, s.hyper.Rate)
		if err != nil {
			return samples, err
		}
		s.alpha = a

		if it < cfg.BurnIn {
			continue
		}
		if (it-cfg.BurnIn)%cfg.Thinning != 0 {
			continue
		}
		samples = append(samples, s.snapshot(it))
	}
	return samples, nil
}
