// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package data is a metapackage for commands
// that dealt with study data files.
package data

import (
	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/cmd/dpmix/data/add"
	"github.com/js-arias/dpmix/cmd/dpmix/data/list"
)

var Command = &command.Command{
	Usage: "data <command> [<argument>...]",
	Short: "commands for study data files",
}

func init() {
	Command.Add(add.Command)
	Command.Add(list.Command)
}
