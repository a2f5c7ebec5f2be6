// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package prior_test

import (
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/js-arias/dpmix/prior"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestNormal(t *testing.T) {
	nm := prior.Normal{
		Param: distuv.Normal{
			Mu:    0,
			Sigma: 10,
		},
		Variance: 1,
	}

	// prior predictive: N(0, sqrt(1+100))
	got := nm.LogPredictive(2, 0, 0, 0)
	want := distuv.Normal{Mu: 0, Sigma: math.Sqrt(101)}.LogProb(2)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("prior predictive: got %.6f, want %.6f", got, want)
	}

	// posterior predictive for a cluster with 4 observations
	// summing 8
	prec := 1.0/100 + 4
	tau := 1 / prec
	mu := tau * (0 + 8)
	got = nm.LogPredictive(2, 4, 8, 20)
	want = distuv.Normal{Mu: mu, Sigma: math.Sqrt(1 + tau)}.LogProb(2)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("posterior predictive: got %.6f, want %.6f", got, want)
	}

	rnd := rand.New(rand.NewPCG(42, 42))
	mean, variance := nm.Posterior(rnd, 4, 8, 20)
	if variance != 1 {
		t.Errorf("posterior variance: got %.6f, want 1", variance)
	}

	// same seed, same draw
	rnd = rand.New(rand.NewPCG(42, 42))
	m2, _ := nm.Posterior(rnd, 4, 8, 20)
	if mean != m2 {
		t.Errorf("posterior draw: got %.6f and %.6f with the same seed", mean, m2)
	}
}

func TestNormInvGamma(t *testing.T) {
	ng := prior.NormInvGamma{
		Mu:    0,
		Kappa: 1,
		Param: distuv.InverseGamma{
			Alpha: 2,
			Beta:  2,
		},
	}

	// prior predictive: Student-t with 4 degrees of freedom,
	// location 0,
	// and scale sqrt(beta*(kappa+1)/(alpha*kappa))
	got := ng.LogPredictive(1.5, 0, 0, 0)
	want := distuv.StudentsT{
		Mu:    0,
		Sigma: math.Sqrt(2 * 2 / 2.0),
		Nu:    4,
	}.LogProb(1.5)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("prior predictive: got %.6f, want %.6f", got, want)
	}

	rnd := rand.New(rand.NewPCG(42, 42))
	_, variance := ng.Posterior(rnd, 3, 6, 14)
	if variance <= 0 {
		t.Errorf("posterior variance: got %.6f, want a positive value", variance)
	}

	rnd = rand.New(rand.NewPCG(42, 42))
	_, v2 := ng.Posterior(rnd, 3, 6, 14)
	if variance != v2 {
		t.Errorf("posterior draw: got %.6f and %.6f with the same seed", variance, v2)
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		def  string
		want prior.Base
	}{
		"normal": {
			def: "normal=0,10,1",
			want: prior.Normal{
				Param: distuv.Normal{
					Mu:    0,
					Sigma: 10,
				},
				Variance: 1,
			},
		},
		"norminvgamma": {
			def: "NormInvGamma=0, 1, 2, 2",
			want: prior.NormInvGamma{
				Mu:    0,
				Kappa: 1,
				Param: distuv.InverseGamma{
					Alpha: 2,
					Beta:  2,
				},
			},
		},
	}

	for name, test := range tests {
		got, err := prior.Parse(test.def)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
		if got.String() == "" {
			t.Errorf("%s: empty string output", name)
		}
	}

	invalid := []string{
		"normal",
		"normal=0,10",
		"normal=0,-1,1",
		"norminvgamma=0,1,2",
		"student=0,1",
		"normal=a,b,c",
	}
	for _, def := range invalid {
		if _, err := prior.Parse(def); err == nil {
			t.Errorf("%q: expecting error", def)
		}
	}
}

func TestGamma(t *testing.T) {
	g := prior.Gamma{Shape: 1, Rate: 1}
	if err := g.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	rnd := rand.New(rand.NewPCG(42, 42))
	if v := g.Rand(rnd); v <= 0 {
		t.Errorf("draw: got %.6f, want a positive value", v)
	}

	invalid := []prior.Gamma{
		{Shape: 0, Rate: 1},
		{Shape: 1, Rate: 0},
		{Shape: -1, Rate: 1},
		{Shape: 1, Rate: math.NaN()},
	}
	for _, g := range invalid {
		if err := g.Validate(); err == nil {
			t.Errorf("%v: expecting error", g)
		}
	}
}
