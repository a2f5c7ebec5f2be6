// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plotcmd implements a command to plot
// the output of the mixture sampler.
package plotcmd

import (
	"fmt"
	"image/png"
	"os"
	"slices"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/dpmix/infer/crp"
	"github.com/js-arias/dpmix/probmat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot -i|--input <file>
	[-o|--output <file-prefix>]
	[--chain <number>] [--gray] [--cell <number>]`,
	Short: "plot the output of the mixture sampler",
	Long: `
Command plot reads a sample file produced by the sample command and writes
the plots of the posterior:

	- a trace of the number of active components per sweep
	- a trace of the concentration parameter per sweep
	- a histogram of the number of active components
	- a matrix image of the pairwise co-clustering probabilities

The flag --input, or -i, indicates the sample file. This is a required
parameter.

By default, the output files will use the input file name (without its
extension) as a prefix. Use the flag --output, or -o, to set a different
prefix. The traces and the histogram will be saved as '<prefix>-components.png',
'<prefix>-alpha.png', and '<prefix>-hist.png'; the co-clustering matrix as
'<prefix>-pairs.png'.

By default, the traces use the first chain of the file; use the flag --chain
to select a different chain. The histogram and the co-clustering matrix pool
all the chains together.

The co-clustering matrix uses the iridescent color scheme; use the flag
--gray for a gray scale. The flag --cell indicates the size, in pixels, of
each matrix cell; its default value is 8.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inputFile string
var output string
var chainFlag int
var grayFlag bool
var cellSize int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inputFile, "input", "", "")
	c.Flags().StringVar(&inputFile, "i", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().IntVar(&chainFlag, "chain", -1, "")
	c.Flags().BoolVar(&grayFlag, "gray", false, "")
	c.Flags().IntVar(&cellSize, "cell", 8, "")
}

func run(c *command.Command, args []string) error {
	if inputFile == "" {
		return c.UsageError("expecting input file, flag --input")
	}

	runs, err := readSamples(inputFile)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("on file %q: without samples", inputFile)
	}

	if output == "" {
		output = strings.TrimSuffix(inputFile, ".tab")
	}

	chains := make([]int, 0, len(runs))
	for ch := range runs {
		chains = append(chains, ch)
	}
	slices.Sort(chains)

	trace := chains[0]
	if chainFlag >= 0 {
		if _, ok := runs[chainFlag]; !ok {
			return fmt.Errorf("chain %d not in file %q", chainFlag, inputFile)
		}
		trace = chainFlag
	}

	if err := tracePlot(runs[trace], "active components", componentCount, fmt.Sprintf("%s-components.png", output)); err != nil {
		return err
	}
	if err := tracePlot(runs[trace], "alpha", alphaValue, fmt.Sprintf("%s-alpha.png", output)); err != nil {
		return err
	}

	var all []crp.Sample
	for _, ch := range chains {
		all = append(all, runs[ch]...)
	}
	if err := histPlot(all, fmt.Sprintf("%s-hist.png", output)); err != nil {
		return err
	}
	if err := pairsPlot(runs, fmt.Sprintf("%s-pairs.png", output)); err != nil {
		return err
	}
	return nil
}

func componentCount(sm crp.Sample) float64 { return float64(sm.Active()) }
func alphaValue(sm crp.Sample) float64     { return sm.Alpha }

func tracePlot(samples []crp.Sample, label string, value func(crp.Sample) float64, name string) error {
	p := plot.New()
	p.X.Label.Text = "sweep"
	p.Y.Label.Text = label

	pts := make(plotter.XYs, len(samples))
	for i, sm := range samples {
		pts[i].X = float64(sm.Sweep)
		pts[i].Y = value(sm)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("on plot %q: %v", name, err)
	}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("on plot %q: %v", name, err)
	}
	return nil
}

func histPlot(samples []crp.Sample, name string) error {
	max := 0
	for _, sm := range samples {
		if sm.Active() > max {
			max = sm.Active()
		}
	}
	vals := make(plotter.Values, max)
	for _, sm := range samples {
		vals[sm.Active()-1] += 1 / float64(len(samples))
	}

	p := plot.New()
	p.X.Label.Text = "active components"
	p.Y.Label.Text = "frequency"

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("on plot %q: %v", name, err)
	}
	p.Add(bars)

	labels := make([]string, max)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("on plot %q: %v", name, err)
	}
	return nil
}

func pairsPlot(runs map[int][]crp.Sample, name string) (err error) {
	img, err := probmat.New(runs)
	if err != nil {
		return err
	}
	img.Cell = cellSize
	img.Gray = grayFlag
	img.Format()

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

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("on image %q: %v", name, err)
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
