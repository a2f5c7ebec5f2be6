// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"errors"
	"reflect"
	"testing"
)

func TestStores(t *testing.T) {
	a := newAssignments(3)
	c := newComponents()

	id := c.create(Params{Mean: 0, Variance: 1})
	if err := a.assign(0, id, 1.5, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.assign(1, id, -0.5, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.count(id); got != 2 {
		t.Errorf("count: got %d, want 2", got)
	}
	if got := a.active(); !reflect.DeepEqual(got, []int{id}) {
		t.Errorf("active: got %v, want %v", got, []int{id})
	}

	st := a.stats[id]
	if st.sum != 1.0 || st.sumSq != 1.5*1.5+0.25 {
		t.Errorf("statistics: got sum %.6f, sum of squares %.6f", st.sum, st.sumSq)
	}

	// moving the observation between components
	n2 := c.create(Params{Mean: 1, Variance: 1})
	if err := a.assign(1, n2, -0.5, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.count(id); got != 1 {
		t.Errorf("count after move: got %d, want 1", got)
	}
	if got := a.count(n2); got != 1 {
		t.Errorf("count after move: got %d, want 1", got)
	}

	// ids are never reused
	if n2 != id+1 {
		t.Errorf("new component id: got %d, want %d", n2, id+1)
	}
}

func TestStoreErrors(t *testing.T) {
	a := newAssignments(2)
	c := newComponents()
	id := c.create(Params{Mean: 0, Variance: 1})
	if err := a.assign(0, id, 2, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// assignment to a component without parameters
	if err := a.assign(1, 100, 1, c); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("assign: got error %v, want %v", err, ErrInvalidComponent)
	}

	// removal of a component with observations
	if err := c.remove(id, a); !errors.Is(err, ErrNotEmpty) {
		t.Errorf("remove: got error %v, want %v", err, ErrNotEmpty)
	}

	// parameters of an undefined component
	if _, err := c.get(100); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("get: got error %v, want %v", err, ErrUnknownComponent)
	}
	if err := c.set(100, Params{}); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("set: got error %v, want %v", err, ErrUnknownComponent)
	}
	if err := c.remove(100, a); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("remove: got error %v, want %v", err, ErrUnknownComponent)
	}

	// removal of an emptied component
	a.remove(0, 2)
	if err := c.remove(id, a); err != nil {
		t.Errorf("remove: unexpected error: %v", err)
	}
	if c.len() != 0 {
		t.Errorf("components: got %d, want 0", c.len())
	}
}
