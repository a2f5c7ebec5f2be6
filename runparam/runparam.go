// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package runparam implements reading and writing
// of the DPMix parameters for a sampler run.
package runparam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/dpmix/prior"
)

// Param is a keyword to identify
// the type of parameter in a params file.
type Param string

// Valid parameters.
const (
	// Alpha is the initial value
	// of the concentration parameter.
	Alpha Param = "alpha"

	// BurnIn is the number of sweeps discarded
	// before any sample is recorded.
	BurnIn Param = "burnin"

	// Iterations is the total number of sweeps of a run.
	Iterations Param = "iterations"

	// Order is the update order of the observations
	// in a sweep.
	Order Param = "order"

	// Prior is the base measure definition
	// for the component parameters.
	Prior Param = "prior"

	// Rate is the rate of the gamma hyperprior
	// of the concentration parameter.
	Rate Param = "rate"

	// Scheme is the form of the Gibbs update
	// for the cluster assignments.
	Scheme Param = "scheme"

	// Shape is the shape of the gamma hyperprior
	// of the concentration parameter.
	Shape Param = "shape"

	// Thinning is the number of sweeps
	// between recorded samples.
	Thinning Param = "thinning"
)

// RP represents a collection of sampler run parameters.
type RP struct {
	name string // file name

	// base measure and concentration
	prior string
	alpha float64
	shape float64
	rate  float64

	// run length
	iter   int
	burnIn int
	thin   int

	// sweep form
	scheme string
	order  string
}

// New creates a new parameter collection
// with the default values.
func New(name string) *RP {
	return &RP{
		name:   name,
		prior:  "normal=0,10,1",
		alpha:  1,
		shape:  1,
		rate:   1,
		iter:   2000,
		burnIn: 500,
		thin:   1,
		scheme: "marginal",
		order:  "fixed",
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a params file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# dpmix sampler run parameters
//	parameter	value
//	prior	normal=0,10,1
//	alpha	1
//	shape	1
//	rate	1
//	iterations	2000
//	burnin	500
//	thinning	1
//	scheme	marginal
//	order	fixed
func Read(name string) (*RP, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	rp := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		p := Param(strings.ToLower(row[fields[f]]))

		f = "value"
		v := row[fields[f]]
		var sErr error
		switch p {
		case Alpha:
			a, err := strconv.ParseFloat(v, 64)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetAlpha(a)
		case BurnIn:
			b, err := strconv.Atoi(v)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetBurnIn(b)
		case Iterations:
			i, err := strconv.Atoi(v)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetIterations(i)
		case Order:
			sErr = rp.SetOrder(v)
		case Prior:
			sErr = rp.SetPrior(v)
		case Rate:
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetRate(r)
		case Scheme:
			sErr = rp.SetScheme(v)
		case Shape:
			s, err := strconv.ParseFloat(v, 64)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetShape(s)
		case Thinning:
			th, err := strconv.Atoi(v)
			if err != nil {
				sErr = err
				break
			}
			sErr = rp.SetThinning(th)
		}
		if sErr != nil {
			return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, sErr)
		}
	}
	return rp, nil
}

// Alpha returns the initial value
// of the concentration parameter.
func (rp *RP) Alpha() float64 {
	return rp.alpha
}

// Base returns the base measure
// for the component parameters.
func (rp *RP) Base() (prior.Base, error) {
	return prior.Parse(rp.prior)
}

// BurnIn returns the number of discarded sweeps.
func (rp *RP) BurnIn() int {
	return rp.burnIn
}

// Hyper returns the gamma hyperprior
// of the concentration parameter.
func (rp *RP) Hyper() prior.Gamma {
	return prior.Gamma{
		Shape: rp.shape,
		Rate:  rp.rate,
	}
}

// Iterations returns the total number of sweeps of a run.
func (rp *RP) Iterations() int {
	return rp.iter
}

// Name returns the name used for the parameter file.
func (rp *RP) Name() string {
	return rp.name
}

// Order returns the update order of the observations
// in a sweep.
func (rp *RP) Order() string {
	return rp.order
}

// Prior returns the definition of the base measure.
func (rp *RP) Prior() string {
	return rp.prior
}

// Scheme returns the form of the Gibbs update.
func (rp *RP) Scheme() string {
	return rp.scheme
}

// Thinning returns the number of sweeps
// between recorded samples.
func (rp *RP) Thinning() int {
	return rp.thin
}

// SetAlpha sets the initial value
// of the concentration parameter.
func (rp *RP) SetAlpha(a float64) error {
	if a <= 0 {
		return fmt.Errorf("invalid alpha value: %.6f", a)
	}
	rp.alpha = a
	return nil
}

// SetBurnIn sets the number of discarded sweeps.
func (rp *RP) SetBurnIn(b int) error {
	if b < 0 {
		return fmt.Errorf("invalid burn-in value: %d", b)
	}
	rp.burnIn = b
	return nil
}

// SetIterations sets the total number of sweeps of a run.
func (rp *RP) SetIterations(i int) error {
	if i < 1 {
		return fmt.Errorf("invalid iterations value: %d", i)
	}
	rp.iter = i
	return nil
}

// SetName sets the name of a parameter collection.
func (rp *RP) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	rp.name = name
}

// SetOrder sets the update order of the observations
// in a sweep.
func (rp *RP) SetOrder(o string) error {
	o = strings.ToLower(strings.TrimSpace(o))
	switch o {
	case "fixed":
	case "random":
	default:
		return fmt.Errorf("unknown order %q", o)
	}
	rp.order = o
	return nil
}

// SetPrior sets the definition of the base measure.
func (rp *RP) SetPrior(p string) error {
	p = strings.ToLower(strings.TrimSpace(p))
	if _, err := prior.Parse(p); err != nil {
		return err
	}
	rp.prior = p
	return nil
}

// SetRate sets the rate of the gamma hyperprior
// of the concentration parameter.
func (rp *RP) SetRate(r float64) error {
	if r <= 0 {
		return fmt.Errorf("invalid rate value: %.6f", r)
	}
	rp.rate = r
	return nil
}

// SetScheme sets the form of the Gibbs update.
func (rp *RP) SetScheme(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "marginal":
	case "direct":
	default:
		return fmt.Errorf("unknown scheme %q", s)
	}
	rp.scheme = s
	return nil
}

// SetShape sets the shape of the gamma hyperprior
// of the concentration parameter.
func (rp *RP) SetShape(s float64) error {
	if s <= 0 {
		return fmt.Errorf("invalid shape value: %.6f", s)
	}
	rp.shape = s
	return nil
}

// SetThinning sets the number of sweeps
// between recorded samples.
func (rp *RP) SetThinning(t int) error {
	if t < 1 {
		return fmt.Errorf("invalid thinning value: %d", t)
	}
	rp.thin = t
	return nil
}

// Write writes a parameter collection into a file.
func (rp *RP) Write() (err error) {
	f, err := os.Create(rp.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# dpmix sampler run parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", rp.name, err)
	}

	rows := [][]string{
		{string(Prior), rp.prior},
		{string(Alpha), strconv.FormatFloat(rp.alpha, 'g', -1, 64)},
		{string(Shape), strconv.FormatFloat(rp.shape, 'g', -1, 64)},
		{string(Rate), strconv.FormatFloat(rp.rate, 'g', -1, 64)},
		{string(Iterations), strconv.Itoa(rp.iter)},
		{string(BurnIn), strconv.Itoa(rp.burnIn)},
		{string(Thinning), strconv.Itoa(rp.thin)},
		{string(Scheme), rp.scheme},
		{string(Order), rp.order},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", rp.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", rp.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", rp.name, err)
	}
	return nil
}
