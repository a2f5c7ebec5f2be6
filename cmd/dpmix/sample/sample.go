// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sample implements a command to run
// the mixture sampler of a dpmix project.
package sample

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/infer/crp"
	"github.com/js-arias/dpmix/project"
	"github.com/js-arias/dpmix/runparam"
)

var Command = &command.Command{
	Usage: `sample [--chains <number>] [--seed <number>]
	[-o|--output <file-prefix>] <project-file>`,
	Short: "run the mixture sampler",
	Long: `
Command sample reads the study data and the run parameters of a DPMix project
and runs one or more chains of the Gibbs sampler for the Dirichlet process
mixture of the study effects. The recorded samples of all the chains are
written into a single TSV file.

The argument of the command is the name of the project file.

The flag --chains indicates the number of independent chains; its default
value is one. Chains run in parallel, each one with its own seed, derived
from the base seed by the chain number.

The flag --seed indicates the base seed of the run. By default, the seed is
taken from the current time, and reported in the output file, so the run can
be reproduced.

By default, the output file will use the project name as a prefix. Use the
flag --output, or -o, to set a different prefix. The name of the output file
is the prefix with the suffix '-samples.tab'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numChains int
var seedFlag int64
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numChains, "chains", 1, "")
	c.Flags().Int64Var(&seedFlag, "seed", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if numChains < 1 {
		return c.UsageError("flag --chains: expecting a positive number")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	coll, err := p.StudyData()
	if err != nil {
		return err
	}
	rp, err := p.RunParam()
	if err != nil {
		return err
	}
	base, err := rp.Base()
	if err != nil {
		return err
	}

	if seedFlag == 0 {
		seedFlag = time.Now().UnixNano()
	}

	param := crp.Param{
		Values: coll.Effects(),
		Base:   base,
		Alpha:  rp.Alpha(),
		Hyper:  rp.Hyper(),
	}
	cfg := crp.Config{
		Iterations: rp.Iterations(),
		BurnIn:     rp.BurnIn(),
		Thinning:   rp.Thinning(),
		Order:      crp.Order(rp.Order()),
		Scheme:     crp.Scheme(rp.Scheme()),
	}

	runs := make(map[int][]crp.Sample, numChains)
	degen := make([]int, numChains)
	errs := make([]error, numChains)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for ch := range numChains {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()

			s, err := crp.New(param)
			if err != nil {
				errs[ch] = err
				return
			}
			cc := cfg
			cc.Seed = uint64(seedFlag) + uint64(ch)
			samples, err := s.Run(context.Background(), cc)
			if err != nil {
				errs[ch] = fmt.Errorf("chain %d: %v", ch, err)
				return
			}
			degen[ch] = s.Degeneracies()

			mu.Lock()
			runs[ch] = samples
			mu.Unlock()
		}(ch)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	if output == "" {
		output = p.Name()
	}
	name := fmt.Sprintf("%s-samples.tab", output)
	if err := writeSamples(name, p, rp, runs, degen); err != nil {
		return err
	}
	return nil
}

func writeSamples(name string, p *project.Project, rp *runparam.RP, runs map[int][]crp.Sample, degen []int) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# mixture samples of project %q\n", p.Name())
	fmt.Fprintf(w, "# base measure: %s\n", rp.Prior())
	fmt.Fprintf(w, "# alpha: %.6f, hyperprior: %s\n", rp.Alpha(), rp.Hyper())
	fmt.Fprintf(w, "# iterations: %d, burn-in: %d, thinning: %d\n", rp.Iterations(), rp.BurnIn(), rp.Thinning())
	fmt.Fprintf(w, "# scheme: %s, order: %s\n", rp.Scheme(), rp.Order())
	fmt.Fprintf(w, "# seed: %d, chains: %d\n", seedFlag, len(degen))
	for ch, d := range degen {
		if d == 0 {
			continue
		}
		fmt.Fprintf(w, "# chain %d: %d numerical degeneracies\n", ch, d)
	}
	fmt.Fprintf(w, "# date: %s\n", time.Now().Format(time.RFC3339))

	if err := crp.WriteTSV(w, runs); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
