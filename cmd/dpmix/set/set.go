// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package set implements a command to manage
// the sampler run parameters of a dpmix project.
package set

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/project"
	"github.com/js-arias/dpmix/runparam"
)

var Command = &command.Command{
	Usage: `set [--file <file-name>]
	[--prior <measure>] [--alpha <value>]
	[--shape <value>] [--rate <value>]
	[--iter <number>] [--burnin <number>] [--thin <number>]
	[--scheme <scheme>] [--order <order>]
	<project-file>`,
	Short: "manage sampler run parameters",
	Long: `
Command set manages the parameters of the mixture sampler defined for a DPMix
project. If the project does not have a parameter file, a new file with the
default values will be created.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

By default, any change on the parameters will be stored in the current
parameter file, or in the file 'params.tab' if the project does not have one.
Use the flag --file to define a different parameter file.

The base measure for the component parameters is set with the flag --prior.
The format for the base measure is

	"<measure>=<param>[,<param>...]"

Always use the quotations. The implemented measures are:

	- normal: with three parameters, the mean and standard deviation of
	  the prior of the component mean, and the fixed component variance.
	- norminvgamma: with four parameters, the prior mean, the number of
	  pseudo-observations (kappa), and the shape and scale of the inverse
	  gamma prior of the component variance.

The initial value of the concentration parameter is set with --alpha, and the
shape and rate of its gamma hyperprior with --shape and --rate.

The length of a run is set with --iter (total sweeps), --burnin (discarded
sweeps), and --thin (sweeps between recorded samples). The form of the Gibbs
update is set with --scheme, either "marginal" (the default, weights from the
posterior predictive) or "direct" (weights at the current component
parameters). The update order of a sweep is set with --order, either "fixed"
(the default) or "random".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string
var priorFlag string
var schemeFlag string
var orderFlag string
var alphaFlag float64
var shapeFlag float64
var rateFlag float64
var iterFlag int
var burnInFlag int
var thinFlag int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&priorFlag, "prior", "", "")
	c.Flags().StringVar(&schemeFlag, "scheme", "", "")
	c.Flags().StringVar(&orderFlag, "order", "", "")
	c.Flags().Float64Var(&alphaFlag, "alpha", 0, "")
	c.Flags().Float64Var(&shapeFlag, "shape", 0, "")
	c.Flags().Float64Var(&rateFlag, "rate", 0, "")
	c.Flags().IntVar(&iterFlag, "iter", 0, "")
	c.Flags().IntVar(&burnInFlag, "burnin", -1, "")
	c.Flags().IntVar(&thinFlag, "thin", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	rp, err := p.RunParam()
	if err != nil {
		return err
	}

	if paramFile != "" {
		rp.SetName(paramFile)
	}

	ed := false
	if priorFlag != "" {
		if err := rp.SetPrior(priorFlag); err != nil {
			return fmt.Errorf("flag --prior: %v", err)
		}
		ed = true
	}
	if alphaFlag != 0 {
		if err := rp.SetAlpha(alphaFlag); err != nil {
			return fmt.Errorf("flag --alpha: %v", err)
		}
		ed = true
	}
	if shapeFlag != 0 {
		if err := rp.SetShape(shapeFlag); err != nil {
			return fmt.Errorf("flag --shape: %v", err)
		}
		ed = true
	}
	if rateFlag != 0 {
		if err := rp.SetRate(rateFlag); err != nil {
			return fmt.Errorf("flag --rate: %v", err)
		}
		ed = true
	}
	if iterFlag != 0 {
		if err := rp.SetIterations(iterFlag); err != nil {
			return fmt.Errorf("flag --iter: %v", err)
		}
		ed = true
	}
	if burnInFlag >= 0 {
		if err := rp.SetBurnIn(burnInFlag); err != nil {
			return fmt.Errorf("flag --burnin: %v", err)
		}
		ed = true
	}
	if thinFlag != 0 {
		if err := rp.SetThinning(thinFlag); err != nil {
			return fmt.Errorf("flag --thin: %v", err)
		}
		ed = true
	}
	if schemeFlag != "" {
		if err := rp.SetScheme(schemeFlag); err != nil {
			return fmt.Errorf("flag --scheme: %v", err)
		}
		ed = true
	}
	if orderFlag != "" {
		if err := rp.SetOrder(orderFlag); err != nil {
			return fmt.Errorf("flag --order: %v", err)
		}
		ed = true
	}

	if !ed && paramFile == "" {
		printParams(c, rp)
		return nil
	}

	if rp.Name() == "" {
		rp.SetName("params.tab")
	}
	if err := rp.Write(); err != nil {
		return err
	}
	p.Add(project.Params, rp.Name())
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func printParams(c *command.Command, rp *runparam.RP) {
	fmt.Fprintf(c.Stdout(), "prior\t%s\n", rp.Prior())
	fmt.Fprintf(c.Stdout(), "alpha\t%.6f\n", rp.Alpha())
	fmt.Fprintf(c.Stdout(), "shape\t%.6f\n", rp.Hyper().Shape)
	fmt.Fprintf(c.Stdout(), "rate\t%.6f\n", rp.Hyper().Rate)
	fmt.Fprintf(c.Stdout(), "iterations\t%d\n", rp.Iterations())
	fmt.Fprintf(c.Stdout(), "burnin\t%d\n", rp.BurnIn())
	fmt.Fprintf(c.Stdout(), "thinning\t%d\n", rp.Thinning())
	fmt.Fprintf(c.Stdout(), "scheme\t%s\n", rp.Scheme())
	fmt.Fprintf(c.Stdout(), "order\t%s\n", rp.Order())
}
