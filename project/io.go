// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/dpmix/runparam"
	"github.com/js-arias/dpmix/studies"
)

// StudyData reads the study effect data
// as defined in a project.
func (p *Project) StudyData() (*studies.Collection, error) {
	name := p.Path(Studies)
	if name == "" {
		return nil, fmt.Errorf("study data not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := studies.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return c, nil
}

// RunParam reads the sampler run parameters
// as defined in a project.
// If the project has no parameter file,
// it returns a new parameter set with the default values.
func (p *Project) RunParam() (*runparam.RP, error) {
	name := p.Path(Params)
	if name == "" {
		return runparam.New(""), nil
	}

	rp, err := runparam.Read(name)
	if err != nil {
		return nil, err
	}
	return rp, nil
}
