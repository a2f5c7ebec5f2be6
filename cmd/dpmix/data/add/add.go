// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add study data
// to a dpmix project.
package add

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/project"
	"github.com/js-arias/dpmix/studies"
)

var Command = &command.Command{
	Usage: `add [-f|--file <study-file>]
	<project-file> [<study-file>...]`,
	Short: "add study data to a project",
	Long: `
Command add reads one or more study data files and adds the studies to a
DPMix project. If the project file does not exist, it will be created.

The first argument of the command is the name of the project file. The rest
of the arguments are the study data files; if no file is given, the data will
be read from the standard input.

By default, the studies will be stored in the study file currently defined
for the project; if the project does not have a study file, the data will be
stored in the file 'studies.tab'. Use the flag --file, or -f, to set a
different study file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var studyFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&studyFile, "file", "", "")
	c.Flags().StringVar(&studyFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	coll := studies.New()
	if sf := p.Path(project.Studies); sf != "" {
		coll, err = readStudyFile(nil, sf)
		if err != nil {
			return fmt.Errorf("on project %q: %v", args[0], err)
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for _, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		nc, err := readStudyFile(c.Stdin(), fn)
		if err != nil {
			return err
		}
		if err := merge(coll, nc); err != nil {
			return fmt.Errorf("when adding studies from %q: %v", a, err)
		}
	}

	if studyFile == "" {
		studyFile = p.Path(project.Studies)
		if studyFile == "" {
			studyFile = "studies.tab"
		}
	}

	if err := writeStudies(coll); err != nil {
		return err
	}
	p.Add(project.Studies, studyFile)
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

func readStudyFile(r io.Reader, name string) (*studies.Collection, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	coll, err := studies.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("on input %q: %v", name, err)
	}
	return coll, nil
}

func merge(dst, src *studies.Collection) error {
	for _, name := range src.Names() {
		if te, tt, ce, ct, ok := src.Trial(name); ok {
			if err := dst.AddTrial(name, te, tt, ce, ct); err != nil {
				return err
			}
			continue
		}
		eff, _ := src.Effect(name)
		if err := dst.Add(name, eff); err != nil {
			return err
		}
	}
	return nil
}

func writeStudies(coll *studies.Collection) (err error) {
	f, err := os.Create(studyFile)
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
	if err := coll.TSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", studyFile, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", studyFile, err)
	}
	return nil
}
