// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/dpmix/infer/crp"
	"github.com/js-arias/dpmix/prior"
	"gonum.org/v1/gonum/stat/distuv"
)

func baseMeasure() prior.Base {
	return prior.Normal{
		Param: distuv.Normal{
			Mu:    0,
			Sigma: 10,
		},
		Variance: 1,
	}
}

func newSampler(t testing.TB, vals []float64, hyper prior.Gamma) *crp.Sampler {
	t.Helper()

	s, err := crp.New(crp.Param{
		Values: vals,
		Base:   baseMeasure(),
		Alpha:  1,
		Hyper:  hyper,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

var twoClusters = []float64{-10, -9, -11, 10, 11}

func TestInvariants(t *testing.T) {
	s := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})

	samples, err := s.Run(context.Background(), crp.Config{
		Iterations: 200,
		Thinning:   1,
		Seed:       42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 200 {
		t.Fatalf("samples: got %d, want 200", len(samples))
	}

	for _, sm := range samples {
		if len(sm.Assignments) != len(twoClusters) {
			t.Fatalf("sweep %d: got %d assignments, want %d", sm.Sweep, len(sm.Assignments), len(twoClusters))
		}

		// every observation belongs to exactly one active component
		count := make(map[int]int)
		for i, id := range sm.Assignments {
			if _, ok := sm.Components[id]; !ok {
				t.Errorf("sweep %d: observation %d assigned to component %d without parameters", sm.Sweep, i, id)
			}
			count[id]++
		}

		// no empty component persists between sweeps
		if len(count) != sm.Active() {
			t.Errorf("sweep %d: %d components with observations, %d active", sm.Sweep, len(count), sm.Active())
		}
		var sum int
		for id, n := range count {
			if n < 1 {
				t.Errorf("sweep %d: component %d without observations", sm.Sweep, id)
			}
			sum += n
		}
		if sum != len(twoClusters) {
			t.Errorf("sweep %d: %d assigned observations, want %d", sm.Sweep, sum, len(twoClusters))
		}

		if sm.Alpha <= 0 {
			t.Errorf("sweep %d: alpha %.6f, want a positive value", sm.Sweep, sm.Alpha)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := crp.Config{
		Iterations: 100,
		BurnIn:     20,
		Thinning:   2,
		Seed:       58,
		Order:      crp.Random,
	}

	s1 := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})
	r1, err := s1.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s2 := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})
	r2, err := s2.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("runs with the same seed differ")
	}
	if s1.Degeneracies() != s2.Degeneracies() {
		t.Errorf("degeneracies: got %d and %d with the same seed", s1.Degeneracies(), s2.Degeneracies())
	}
}

func TestSingleObservation(t *testing.T) {
	s := newSampler(t, []float64{1.5}, prior.Gamma{Shape: 1, Rate: 1})

	samples, err := s.Run(context.Background(), crp.Config{
		Iterations: 50,
		Thinning:   1,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, sm := range samples {
		if sm.Active() != 1 {
			t.Errorf("sweep %d: %d active components, want 1", sm.Sweep, sm.Active())
		}
	}
}

func TestConfig(t *testing.T) {
	tests := map[string]crp.Config{
		"no iterations":      {Thinning: 1},
		"burn-in too large":  {Iterations: 100, BurnIn: 100, Thinning: 1},
		"negative burn-in":   {Iterations: 100, BurnIn: -1, Thinning: 1},
		"no thinning":        {Iterations: 100},
		"invalid order":      {Iterations: 100, Thinning: 1, Order: "sorted"},
		"invalid scheme":     {Iterations: 100, Thinning: 1, Scheme: "collapsed"},
		"negative iteration": {Iterations: -5, Thinning: 1},
	}

	for name, cfg := range tests {
		s := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})
		samples, err := s.Run(context.Background(), cfg)
		if !errors.Is(err, crp.ErrInvalidConfig) {
			t.Errorf("%s: got error %v, want %v", name, err, crp.ErrInvalidConfig)
		}
		if samples != nil {
			t.Errorf("%s: got %d samples, want none", name, len(samples))
		}
	}
}

func TestCancellation(t *testing.T) {
	s := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples, err := s.Run(ctx, crp.Config{
		Iterations: 1000,
		Thinning:   1,
		Seed:       1,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want %v", err, context.Canceled)
	}
	if len(samples) != 0 {
		t.Errorf("got %d samples, want none", len(samples))
	}
}

// Two well separated clusters
// should give a posterior mode of two components.
func TestTwoClusters(t *testing.T) {
	for _, scheme := range []crp.Scheme{crp.Marginal, crp.Direct} {
		s := newSampler(t, twoClusters, prior.Gamma{Shape: 1, Rate: 1})
		samples, err := s.Run(context.Background(), crp.Config{
			Iterations: 2000,
			BurnIn:     500,
			Thinning:   1,
			Seed:       42,
			Scheme:     scheme,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", scheme, err)
		}
		if len(samples) != 1500 {
			t.Fatalf("%s: samples: got %d, want 1500", scheme, len(samples))
		}

		freq := make(map[int]int)
		for _, sm := range samples {
			freq[sm.Active()]++
		}
		mode, best := 0, 0
		for k, n := range freq {
			if n > best {
				mode, best = k, n
			}
		}
		if mode != 2 {
			t.Errorf("%s: mode of active components: got %d, want 2 (freqs: %v)", scheme, mode, freq)
		}
	}
}

// A hyperprior that favors large concentration values
// should give more active components,
// on average,
// than one favoring small values.
func TestConcentrationSensitivity(t *testing.T) {
	vals := []float64{-0.1, 0.1, 0.05, -0.05, 0, 0.2, -0.2, 0.15, -0.15, 0.08, -0.08, 0.03}

	mean := func(h prior.Gamma, seed uint64) float64 {
		s := newSampler(t, vals, h)
		samples, err := s.Run(context.Background(), crp.Config{
			Iterations: 1500,
			BurnIn:     200,
			Thinning:   1,
			Seed:       seed,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var sum float64
		for _, sm := range samples {
			sum += float64(sm.Active())
		}
		return sum / float64(len(samples))
	}

	small := prior.Gamma{Shape: 0.2, Rate: 4}
	large := prior.Gamma{Shape: 20, Rate: 0.5}
	for _, seed := range []uint64{1, 2, 3} {
		ms := mean(small, seed)
		ml := mean(large, seed)
		if ml <= ms+0.5 {
			t.Errorf("seed %d: mean active components %.3f with large alpha, %.3f with small alpha", seed, ml, ms)
		}
	}
}
