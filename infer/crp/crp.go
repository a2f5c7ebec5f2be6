// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package crp implements a Gibbs sampler
// for a Dirichlet process mixture of normal components
// using the Chinese restaurant process representation.
//
// Each observation is a study effect size
// assigned to a mixture component;
// a sweep resamples the assignment of every observation
// conditioned on all the others,
// refreshes the component parameters,
// and updates the concentration parameter
// of the Dirichlet process.
package crp

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/js-arias/dpmix/prior"
)

// Errors of the sampler.
var (
	// ErrInvalidComponent is an assignment
	// to a component without defined parameters.
	ErrInvalidComponent = errors.New("assignment to an undefined component")

	// ErrUnknownComponent is a parameter request
	// for a component without defined parameters.
	ErrUnknownComponent = errors.New("undefined component")

	// ErrNotEmpty is the removal of a component
	// with assigned observations.
	ErrNotEmpty = errors.New("component is not empty")

	// ErrInvalidConfig is an invalid run configuration,
	// detected before any sweep is made.
	ErrInvalidConfig = errors.New("invalid sampler configuration")
)

// Param is a collection of parameters
// for the initialization of a sampler.
type Param struct {
	// Values are the observed effect sizes,
	// one per study,
	// in study order.
	Values []float64

	// Base is the base measure
	// for the component parameters.
	Base prior.Base

	// Alpha is the initial value
	// of the concentration parameter.
	Alpha float64

	// Hyper is the gamma hyperprior
	// of the concentration parameter.
	Hyper prior.Gamma
}

// A Sampler is a single chain of a Gibbs sampler
// for a Dirichlet process mixture.
// It owns its stores
// and must not be shared between goroutines;
// for multiple chains use independent samplers
// with different seeds.
type Sampler struct {
	vals   []float64
	base   prior.Base
	hyper  prior.Gamma
	alpha  float64
	alpha0 float64

	asg   *assignments
	comps *components
	rnd   *rand.Rand

	degen int
}

// New creates a new sampler for the given parameters.
func New(p Param) (*Sampler, error) {
	if len(p.Values) == 0 {
		return nil, fmt.Errorf("%w: without observations", ErrInvalidConfig)
	}
	if p.Base == nil {
		return nil, fmt.Errorf("%w: without a base measure", ErrInvalidConfig)
	}
	if p.Alpha <= 0 {
		return nil, fmt.Errorf("%w: alpha %.6f", ErrInvalidConfig, p.Alpha)
	}
	if err := p.Hyper.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	vals := make([]float64, len(p.Values))
	copy(vals, p.Values)

	return &Sampler{
		vals:   vals,
		base:   p.Base,
		hyper:  p.Hyper,
		alpha:  p.Alpha,
		alpha0: p.Alpha,
		asg:    newAssignments(len(vals)),
		comps:  newComponents(),
	}, nil
}

// Alpha returns the current value
// of the concentration parameter.
func (s *Sampler) Alpha() float64 {
	return s.alpha
}

// Degeneracies returns the number of numerical degeneracies
// found during the sweeps of the sampler
// (weight vectors with all the mass lost to underflow,
// resolved with a uniform draw).
func (s *Sampler) Degeneracies() int {
	return s.degen
}

// Len returns the number of observations.
func (s *Sampler) Len() int {
	return len(s.vals)
}

// init assigns every observation to a single fresh component
// with parameters drawn from the base measure posterior
// given all the observations.
func (s *Sampler) init() error {
	s.asg = newAssignments(len(s.vals))
	s.comps = newComponents()

	var sum, sumSq float64
	for _, y := range s.vals {
		sum += y
		sumSq += y * y
	}
	mean, variance := s.base.Posterior(s.rnd, len(s.vals), sum, sumSq)
	id := s.comps.create(Params{Mean: mean, Variance: variance})
	for i, y := range s.vals {
		if err := s.asg.assign(i, id, y, s.comps); err != nil {
			return err
		}
	}
	return nil
}

// refresh redraws the parameters of every active component
// from the base measure posterior
// given the observations assigned to it.
func (s *Sampler) refresh() error {
	for _, id := range s.asg.active() {
		st := s.asg.stats[id]
		mean, variance := s.base.Posterior(s.rnd, st.n, st.sum, st.sumSq)
		if err := s.comps.set(id, Params{Mean: mean, Variance: variance}); err != nil {
			return err
		}
	}
	return nil
}
