// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package crp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// A Sample is a snapshot of the sampler state
// taken at the end of a sweep.
// Samples are never modified once recorded.
type Sample struct {
	// Sweep is the sweep index of the snapshot.
	Sweep int

	// Alpha is the value of the concentration parameter.
	Alpha float64

	// Assignments is the component id
	// assigned to each observation,
	// in study order.
	Assignments []int

	// Components are the parameters
	// of each active component.
	Components map[int]Params
}

// Active returns the number of active components
// in a sample.
func (s Sample) Active() int {
	return len(s.Components)
}

func (s *Sampler) snapshot(sweep int) Sample {
	asg := make([]int, len(s.asg.comp))
	copy(asg, s.asg.comp)

	comps := make(map[int]Params, s.comps.len())
	for _, id := range s.asg.active() {
		comps[id] = s.comps.params[id]
	}

	return Sample{
		Sweep:       sweep,
		Alpha:       s.alpha,
		Assignments: asg,
		Components:  comps,
	}
}

var sampleHeader = []string{
	"chain",
	"sweep",
	"alpha",
	"observation",
	"component",
	"mean",
	"variance",
}

// WriteTSV writes the samples of one or more chains
// as a TSV file,
// with a row per observation per sample.
// Chains are written in chain order.
func WriteTSV(w io.Writer, runs map[int][]Sample) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(sampleHeader); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	chains := make([]int, 0, len(runs))
	for c := range runs {
		chains = append(chains, c)
	}
	slices.Sort(chains)

	for _, c := range chains {
		chain := strconv.Itoa(c)
		for _, s := range runs[c] {
			sweep := strconv.Itoa(s.Sweep)
			alpha := strconv.FormatFloat(s.Alpha, 'g', -1, 64)
			for i, id := range s.Assignments {
				p, ok := s.Components[id]
				if !ok {
					return fmt.Errorf("chain %d: sweep %d: observation %d: component %d: %w", c, s.Sweep, i, id, ErrUnknownComponent)
				}
				row := []string{
					chain,
					sweep,
					alpha,
					strconv.Itoa(i),
					strconv.Itoa(id),
					strconv.FormatFloat(p.Mean, 'g', -1, 64),
					strconv.FormatFloat(p.Variance, 'g', -1, 64),
				}
				if err := tsv.Write(row); err != nil {
					return fmt.Errorf("when writing data: %v", err)
				}
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// ReadTSV reads the samples of one or more chains
// from a TSV file
// as defined by WriteTSV.
// It returns the samples of each chain,
// in recording order.
func ReadTSV(r io.Reader) (map[int][]Sample, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range sampleHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	runs := make(map[int][]Sample)
	var cur *Sample
	curChain := -1
	flush := func() {
		if cur == nil {
			return
		}
		runs[curChain] = append(runs[curChain], *cur)
		cur = nil
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		v, err := readSampleRow(row, fields)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		if cur == nil || curChain != v.chain || cur.Sweep != v.sweep {
			flush()
			curChain = v.chain
			cur = &Sample{
				Sweep:      v.sweep,
				Alpha:      v.alpha,
				Components: make(map[int]Params),
			}
		}
		if v.obs != len(cur.Assignments) {
			return nil, fmt.Errorf("on row %d: unexpected observation %d", ln, v.obs)
		}
		cur.Assignments = append(cur.Assignments, v.comp)
		cur.Components[v.comp] = Params{Mean: v.mean, Variance: v.variance}
	}
	flush()
	return runs, nil
}

type sampleRow struct {
	chain, sweep, obs, comp int
	alpha, mean, variance   float64
}

func readSampleRow(row []string, fields map[string]int) (sampleRow, error) {
	var v sampleRow

	for _, f := range []string{"chain", "sweep", "observation", "component"} {
		n, cErr := strconv.Atoi(row[fields[f]])
		if cErr != nil {
			return v, fmt.Errorf("field %q: %v", f, cErr)
		}
		switch f {
		case "chain":
			v.chain = n
		case "sweep":
			v.sweep = n
		case "observation":
			v.obs = n
		case "component":
			v.comp = n
		}
	}

	for _, f := range []string{"alpha", "mean", "variance"} {
		x, cErr := strconv.ParseFloat(row[fields[f]], 64)
		if cErr != nil {
			return v, fmt.Errorf("field %q: %v", f, cErr)
		}
		switch f {
		case "alpha":
			v.alpha = x
		case "mean":
			v.mean = x
		case "variance":
			v.variance = x
		}
	}
	return v, nil
}
