// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sweep makes a full pass over the observations,
// resampling the assignment of each one
// conditioned on all the others.
func (s *Sampler) sweep(scheme Scheme, order Order) error {
	idx := make([]int, len(s.vals))
	for i := range idx {
		idx[i] = i
	}
	if order == Random {
		s.rnd.Shuffle(len(idx), func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}

	for _, i := range idx {
		if err := s.update(i, scheme); err != nil {
			return err
		}
	}
	return nil
}

// Update resamples the component assignment
// of a single observation.
//
// The observation is first taken out of its component;
// a component left empty is retired at once,
// as an empty table has no identity
// under the Chinese restaurant process.
// Then each active component gets a weight
// proportional to its size times the density of the observation,
// and a fresh component gets a weight
// proportional to alpha times the prior predictive density.
// A new component draws its parameters
// from the base measure posterior
// conditioned on the observation that opens it.
func (s *Sampler) update(i int, scheme Scheme) error {
	y := s.vals[i]

	if id := s.asg.remove(i, y); id >= 0 && s.asg.count(id) == 0 {
		if err := s.comps.remove(id, s.asg); err != nil {
			return err
		}
	}

	ids := s.asg.active()
	logW := make([]float64, len(ids)+1)
	for j, id := range ids {
		st := s.asg.stats[id]
		switch scheme {
		case Direct:
			p, err := s.comps.get(id)
			if err != nil {
				return err
			}
			d := distuv.Normal{
				Mu:    p.Mean,
				Sigma: math.Sqrt(p.Variance),
			}
			logW[j] = math.Log(float64(st.n)) + d.LogProb(y)
		default:
			logW[j] = math.Log(float64(st.n)) + s.base.LogPredictive(y, st.n, st.sum, st.sumSq)
		}
	}
	logW[len(ids)] = math.Log(s.alpha) + s.base.LogPredictive(y, 0, 0, 0)

	j, ok := s.draw(logW)
	if !ok {
		// numerical degeneracy:
		// all the mass was lost to underflow,
		// pick uniformly among the slots
		s.degen++
		j = s.rnd.IntN(len(logW))
	}

	id := -1
	if j == len(ids) {
		mean, variance := s.base.Posterior(s.rnd, 1, y, y*y)
		id = s.comps.create(Params{Mean: mean, Variance: variance})
	} else {
		id = ids[j]
	}
	return s.asg.assign(i, id, y, s.comps)
}

// Draw samples an index
// from a vector of unnormalized log weights.
// It returns false if the weights can not be normalized.
func (s *Sampler) draw(logW []float64) (int, bool) {
	max := math.Inf(-1)
	for _, lw := range logW {
		if math.IsNaN(lw) {
			return 0, false
		}
		if lw > max {
			max = lw
		}
	}
	if math.IsInf(max, -1) {
		return 0, false
	}

	w := make([]float64, len(logW))
	var sum float64
	for j, lw := range logW {
		w[j] = math.Exp(lw - max)
		sum += w[j]
	}
	if sum == 0 || math.IsNaN(sum) {
		return 0, false
	}

	u := s.rnd.Float64() * sum
	var acc float64
	for j, v := range w {
		acc += v
		if u < acc {
			return j, true
		}
	}
	return len(w) - 1, true
}
