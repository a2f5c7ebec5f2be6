// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"fmt"
	"slices"
)

// SuffStat are the sufficient statistics of a component:
// the number of observations assigned to it,
// their sum,
// and their sum of squares.
type suffStat struct {
	n     int
	sum   float64
	sumSq float64
}

// Assignments store the component assigned to each observation
// and the sufficient statistics of each component.
// A component without observations has no entry:
// every stored component has a count greater than zero.
type assignments struct {
	comp  []int // per-observation component, -1 if unassigned
	stats map[int]*suffStat
}

func newAssignments(n int) *assignments {
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	return &assignments{
		comp:  comp,
		stats: make(map[int]*suffStat),
	}
}

// Active returns the components with at least one observation,
// sorted by id.
func (a *assignments) active() []int {
	ids := make([]int, 0, len(a.stats))
	for id := range a.stats {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Assign moves an observation to a component,
// removing it first from its current component,
// if any.
// The component must exist in the component store.
func (a *assignments) assign(obs, id int, y float64, cs *components) error {
	if !cs.has(id) {
		return fmt.Errorf("observation %d: component %d: %w", obs, id, ErrInvalidComponent)
	}
	a.remove(obs, y)

	st := a.stats[id]
	if st == nil {
		st = &suffStat{}
		a.stats[id] = st
	}
	st.n++
	st.sum += y
	st.sumSq += y * y
	a.comp[obs] = id
	return nil
}

// Count returns the number of observations
// assigned to a component.
func (a *assignments) count(id int) int {
	st := a.stats[id]
	if st == nil {
		return 0
	}
	return st.n
}

// Remove takes an observation out of its current component
// and returns the id of that component,
// or -1 if the observation was unassigned.
// If the component is left without observations
// its statistics are dropped.
func (a *assignments) remove(obs int, y float64) int {
	id := a.comp[obs]
	if id < 0 {
		return -1
	}

	st := a.stats[id]
	st.n--
	if st.n < 0 {
		panic(fmt.Sprintf("component %d: negative count", id))
	}
	st.sum -= y
	st.sumSq -= y * y
	if st.n == 0 {
		delete(a.stats, id)
	}
	a.comp[obs] = -1
	return id
}
