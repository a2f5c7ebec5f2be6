// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package freq implements a command
// to summarize the posterior distribution
// of the number of mixture components.
package freq

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/infer/crp"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: `freq -i|--input <file>
	[--chain <number>]`,
	Short: "summarize the posterior of the component count",
	Long: `
Command freq reads a sample file produced by the sample command and prints
the posterior frequencies of the number of active mixture components, and the
posterior quantiles of the concentration parameter, in the standard output.

The flag --input, or -i, indicates the sample file. This is a required
parameter.

By default, all the chains of the file are pooled together. Use the flag
--chain to restrict the summary to a single chain.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inputFile string
var chainFlag int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inputFile, "input", "", "")
	c.Flags().StringVar(&inputFile, "i", "", "")
	c.Flags().IntVar(&chainFlag, "chain", -1, "")
}

func run(c *command.Command, args []string) error {
	if inputFile == "" {
		return c.UsageError("expecting input file, flag --input")
	}

	runs, err := readSamples(inputFile)
	if err != nil {
		return err
	}

	var samples []crp.Sample
	if chainFlag >= 0 {
		s, ok := runs[chainFlag]
		if !ok {
			return fmt.Errorf("chain %d not in file %q", chainFlag, inputFile)
		}
		samples = s
	} else {
		chains := make([]int, 0, len(runs))
		for ch := range runs {
			chains = append(chains, ch)
		}
		slices.Sort(chains)
		for _, ch := range chains {
			samples = append(samples, runs[ch]...)
		}
	}
	if len(samples) == 0 {
		return fmt.Errorf("on file %q: without samples", inputFile)
	}

	freq := make(map[int]int)
	alpha := make([]float64, 0, len(samples))
	for _, sm := range samples {
		freq[sm.Active()]++
		alpha = append(alpha, sm.Alpha)
	}

	ks := make([]int, 0, len(freq))
	for k := range freq {
		ks = append(ks, k)
	}
	slices.Sort(ks)

	fmt.Fprintf(c.Stdout(), "components\tcount\tfreq\n")
	for _, k := range ks {
		n := freq[k]
		fmt.Fprintf(c.Stdout(), "%d\t%d\t%.6f\n", k, n, float64(n)/float64(len(samples)))
	}

	slices.Sort(alpha)
	w := make([]float64, len(alpha))
	for i := range w {
		w[i] = 1
	}
	fmt.Fprintf(c.Stdout(), "\nalpha\tmean\t%.6f\n", stat.Mean(alpha, w))
	for _, q := range []float64{0.025, 0.5, 0.975} {
		fmt.Fprintf(c.Stdout(), "alpha\tq%g\t%.6f\n", q*100, stat.Quantile(q, stat.Empirical, alpha, w))
	}
	return nil
}

func readSamples(name string) (map[int][]crp.Sample, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	runs, err := crp.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return runs, nil
}
