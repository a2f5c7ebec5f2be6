// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(projectsGuide)
	app.Add(studyFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
DPMix requires several files to read and process the data of a meta-analysis.
To reduce the burden of keeping track of many files, a single project file is
used to hold the reference of all files required in the analysis. This guide
explains the structure of the file, but most of the time, the best and most
secure way to edit or view this file is by using dpmix commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# dpmix project files
	dataset	path
	studies	studies.tab
	params	params.tab

Valid file types are:

	studies  the study effect data
	params   the sampler run parameters
	`,
}

var studyFilesGuide = &command.Command{
	Usage: "studies",
	Short: "about study data files",
	Long: `
The observations of a DPMix analysis are per-study effect sizes. A study is
either a directly observed effect (for example a log-odds ratio reported by
the study), or the outcome counts of a two-arm clinical trial, in which case
the effect is the empirical log-odds ratio of the trial with a 0.5 continuity
correction.

A study data file is a tab-delimited file with the following fields:

	- study           the name of the study
	- effect          the observed effect size
	- treated-events  events in the treatment arm
	- treated-total   size of the treatment arm
	- control-events  events in the control arm
	- control-total   size of the control arm

If the arm counts are given, the effect field is ignored and the effect is
derived from the counts.

Here is an example file:

	study	effect	treated-events	treated-total	control-events	control-total
	Balcon	-0.791	14	56	15	58
	Barber	-1.540	2	57	7	51
	Reynolds	0.435

The order of the studies in the file is the order of the observations in the
sampler output.
	`,
}
