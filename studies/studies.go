// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package studies provides a collection of study effects
// for a meta-analysis.
//
// A study is either an observed effect size
// (for example a log-odds ratio reported by the study),
// or the outcome counts of a two-arm clinical trial,
// from which an empirical log-odds ratio is derived.
package studies

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Collection is an ordered collection of studies.
// The order of the studies is the order of insertion
// and defines the index of each observation
// for the mixture sampler.
type Collection struct {
	names []string
	study map[string]study
}

type study struct {
	effect float64
	arms   *arms
}

// Arms are the outcome counts of a two-arm trial.
type arms struct {
	tEvents, tTotal int
	cEvents, cTotal int
}

// New creates a new empty collection.
func New() *Collection {
	return &Collection{
		study: make(map[string]study),
	}
}

// Add adds a study with a directly observed effect size.
// It returns an error if the study is already in the collection.
func (c *Collection) Add(name string, effect float64) error {
	name = canon(name)
	if name == "" {
		return fmt.Errorf("empty study name")
	}
	if _, dup := c.study[name]; dup {
		return fmt.Errorf("study %q already in collection", name)
	}
	if math.IsNaN(effect) || math.IsInf(effect, 0) {
		return fmt.Errorf("study %q: invalid effect value", name)
	}

	c.names = append(c.names, name)
	c.study[name] = study{effect: effect}
	return nil
}

// AddTrial adds a study defined by the outcome counts
// of a treatment and a control arm.
// The effect of the study is the empirical log-odds ratio
// with a 0.5 continuity correction.
func (c *Collection) AddTrial(name string, tEvents, tTotal, cEvents, cTotal int) error {
	name = canon(name)
	if name == "" {
		return fmt.Errorf("empty study name")
	}
	if _, dup := c.study[name]; dup {
		return fmt.Errorf("study %q already in collection", name)
	}
	if tTotal < 1 || cTotal < 1 {
		return fmt.Errorf("study %q: empty trial arm", name)
	}
	if tEvents < 0 || tEvents > tTotal || cEvents < 0 || cEvents > cTotal {
		return fmt.Errorf("study %q: events outside arm size", name)
	}

	a := &arms{
		tEvents: tEvents,
		tTotal:  tTotal,
		cEvents: cEvents,
		cTotal:  cTotal,
	}
	c.names = append(c.names, name)
	c.study[name] = study{
		effect: a.logOdds(),
		arms:   a,
	}
	return nil
}

// Effect returns the effect size of a study.
func (c *Collection) Effect(name string) (float64, bool) {
	st, ok := c.study[canon(name)]
	return st.effect, ok
}

// Effects returns the effect sizes of all studies,
// in collection order.
func (c *Collection) Effects() []float64 {
	vals := make([]float64, len(c.names))
	for i, n := range c.names {
		vals[i] = c.study[n].effect
	}
	return vals
}

// Len returns the number of studies in the collection.
func (c *Collection) Len() int {
	return len(c.names)
}

// Names returns the names of the studies,
// in collection order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Trial returns the outcome counts of a study.
// It returns false if the study is not in the collection
// or was added with a direct effect size.
func (c *Collection) Trial(name string) (tEvents, tTotal, cEvents, cTotal int, ok bool) {
	st, ok := c.study[canon(name)]
	if !ok || st.arms == nil {
		return 0, 0, 0, 0, false
	}
	a := st.arms
	return a.tEvents, a.tTotal, a.cEvents, a.cTotal, true
}

// LogOdds returns the empirical log-odds ratio of the trial
// with a 0.5 continuity correction on every cell.
func (a *arms) logOdds() float64 {
	t := (float64(a.tEvents) + 0.5) / (float64(a.tTotal-a.tEvents) + 0.5)
	c := (float64(a.cEvents) + 0.5) / (float64(a.cTotal-a.cEvents) + 0.5)
	return math.Log(t) - math.Log(c)
}

func canon(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}
