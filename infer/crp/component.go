// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import "fmt"

// Params are the parameters of a normal mixture component.
type Params struct {
	Mean     float64
	Variance float64
}

// Components store the parameters of the active components.
// Component ids grow monotonically
// and are never reused while the sampler is alive.
type components struct {
	params map[int]Params
	next   int
}

func newComponents() *components {
	return &components{
		params: make(map[int]Params),
	}
}

// Create adds a new component with the given parameters
// and returns its id.
func (c *components) create(p Params) int {
	id := c.next
	c.next++
	c.params[id] = p
	return id
}

// Get returns the parameters of a component.
func (c *components) get(id int) (Params, error) {
	p, ok := c.params[id]
	if !ok {
		return Params{}, fmt.Errorf("component %d: %w", id, ErrUnknownComponent)
	}
	return p, nil
}

func (c *components) has(id int) bool {
	_, ok := c.params[id]
	return ok
}

func (c *components) len() int {
	return len(c.params)
}

// Remove deletes a component and its parameters.
// The component must not have assigned observations.
func (c *components) remove(id int, a *assignments) error {
	if !c.has(id) {
		return fmt.Errorf("component %d: %w", id, ErrUnknownComponent)
	}
	if n := a.count(id); n > 0 {
		return fmt.Errorf("component %d with %d observations: %w", id, n, ErrNotEmpty)
	}
	delete(c.params, id)
	return nil
}

// Set overwrites the parameters of a component.
func (c *components) set(id int, p Params) error {
	if !c.has(id) {
		return fmt.Errorf("component %d: %w", id, ErrUnknownComponent)
	}
	c.params[id] = p
	return nil
}
