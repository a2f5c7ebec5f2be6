// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/js-arias/dpmix/infer/crp"
)

func TestNextAlpha(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))
	for range 100 {
		a, err := crp.NextAlpha(rnd, 1, 3, 20, 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a <= 0 {
			t.Fatalf("alpha: got %.6f, want a positive value", a)
		}
	}

	// same seed, same draw
	r1 := rand.New(rand.NewPCG(42, 42))
	a1, err := crp.NextAlpha(r1, 1, 3, 20, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2 := rand.New(rand.NewPCG(42, 42))
	a2, err := crp.NextAlpha(r2, 1, 3, 20, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a1 != a2 {
		t.Errorf("alpha: got %.6f and %.6f with the same seed", a1, a2)
	}
}

func TestNextAlphaErrors(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))

	tests := map[string]struct {
		alpha       float64
		active, obs int
		shape, rate float64
	}{
		"zero shape":        {alpha: 1, active: 3, obs: 20, shape: 0, rate: 1},
		"negative rate":     {alpha: 1, active: 3, obs: 20, shape: 1, rate: -1},
		"zero alpha":        {alpha: 0, active: 3, obs: 20, shape: 1, rate: 1},
		"no components":     {alpha: 1, active: 0, obs: 20, shape: 1, rate: 1},
		"too few observed":  {alpha: 1, active: 5, obs: 3, shape: 1, rate: 1},
		"negative observed": {alpha: 1, active: 1, obs: -1, shape: 1, rate: 1},
	}

	for name, p := range tests {
		_, err := crp.NextAlpha(rnd, p.alpha, p.active, p.obs, p.shape, p.rate)
		if !errors.Is(err, crp.ErrInvalidConfig) {
			t.Errorf("%s: got error %v, want %v", name, err, crp.ErrInvalidConfig)
		}
	}
}
