// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NextAlpha updates the concentration parameter
// of a Dirichlet process
// with a gamma hyperprior,
// using the auxiliary variable scheme
// of Escobar and West (1995).
//
// Alpha is the current value of the parameter,
// active the number of active components,
// obs the number of observations,
// and shape and rate the parameters of the gamma hyperprior.
func NextAlpha(rnd *rand.Rand, alpha float64, active, obs int, shape, rate float64) (float64, error) {
	if shape <= 0 || math.IsNaN(shape) {
		return 0, fmt.Errorf("%w: hyperprior shape %.6f", ErrInvalidConfig, shape)
	}
	if rate <= 0 || math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: hyperprior rate %.6f", ErrInvalidConfig, rate)
	}
	if alpha <= 0 || math.IsNaN(alpha) {
		return 0, fmt.Errorf("%w: alpha %.6f", ErrInvalidConfig, alpha)
	}
	if active < 1 || obs < active {
		return 0, fmt.Errorf("%w: %d components for %d observations", ErrInvalidConfig, active, obs)
	}

	eta := distuv.Beta{
		Alpha: alpha + 1,
		Beta:  float64(obs),
		Src:   rnd,
	}.Rand()

	sh := shape + float64(active)
	rt := rate - math.Log(eta)

	// mixing probability between the two gamma components
	odds := (sh - 1) / (float64(obs) * rt)
	if u := rnd.Float64(); u >= odds/(1+odds) {
		sh--
	}
	return distuv.Gamma{
		Alpha: sh,
		Beta:  rt,
		Src:   rnd,
	}.Rand(), nil
}
