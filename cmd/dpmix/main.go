// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// DPMix is a tool for Dirichlet process mixture analysis
// of study effects in a meta-analysis.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/cmd/dpmix/data"
	"github.com/js-arias/dpmix/cmd/dpmix/freq"
	"github.com/js-arias/dpmix/cmd/dpmix/plotcmd"
	"github.com/js-arias/dpmix/cmd/dpmix/sample"
	"github.com/js-arias/dpmix/cmd/dpmix/set"
)

var app = &command.Command{
	Usage: "dpmix <command> [<argument>...]",
	Short: "a tool for Dirichlet process mixture analysis",
}

func init() {
	app.Add(data.Command)
	app.Add(set.Command)
	app.Add(sample.Command)
	app.Add(freq.Command)
	app.Add(plotcmd.Command)
}

func main() {
	app.Main()
}
