// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of studies in a dpmix project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/project"
)

var Command = &command.Command{
	Usage: "list <project-file>",
	Short: "print a list of the studies in a project",
	Long: `
Command list reads the study data from a DPMix project and prints the name
and effect size of each study in the standard output, in observation order.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	coll, err := p.StudyData()
	if err != nil {
		return err
	}

	for _, name := range coll.Names() {
		eff, _ := coll.Effect(name)
		fmt.Fprintf(c.Stdout(), "%s\t%.6f\n", name, eff)
	}
	return nil
}
