// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package probmat implements a matrix image
// for the pairwise co-clustering probabilities
// of a mixture posterior sample.
package probmat

import (
	"fmt"
	"image"
	"image/color"

	"github.com/js-arias/blind"
	"github.com/js-arias/dpmix/infer/crp"
)

type Image struct {
	// Size in pixels of each matrix cell
	Cell int

	// Prob is the co-clustering probability matrix:
	// the probability that two observations
	// are assigned to the same component.
	Prob [][]float64

	// If gray is true,
	// it will use a gray scale.
	Gray bool

	// A Gradient color scheme
	Gradient Gradienter

	size int
}

// New creates a co-clustering image
// from the samples of one or more chains,
// pooling all the chains together.
func New(runs map[int][]crp.Sample) (*Image, error) {
	var n, tot int
	for _, samples := range runs {
		for _, sm := range samples {
			if n == 0 {
				n = len(sm.Assignments)
			}
			if len(sm.Assignments) != n {
				return nil, fmt.Errorf("sweep %d: %d observations, want %d", sm.Sweep, len(sm.Assignments), n)
			}
			tot++
		}
	}
	if tot == 0 {
		return nil, fmt.Errorf("without samples")
	}

	prob := make([][]float64, n)
	for i := range prob {
		prob[i] = make([]float64, n)
	}
	for _, samples := range runs {
		for _, sm := range samples {
			for i, a := range sm.Assignments {
				for j, b := range sm.Assignments {
					if a == b {
						prob[i][j]++
					}
				}
			}
		}
	}
	for i := range prob {
		for j := range prob[i] {
			prob[i][j] /= float64(tot)
		}
	}

	return &Image{Prob: prob}, nil
}

// Format prepares the image for drawing,
// setting the defaults of any undefined field.
func (i *Image) Format() {
	if i.Cell < 1 {
		i.Cell = 8
	}
	i.size = len(i.Prob) * i.Cell

	if i.Gradient == nil {
		i.Gradient = Iridescent{}
	}
	if i.Gray {
		i.Gradient = GrayScale{}
	}
}

func (i *Image) ColorModel() color.Model { return color.RGBAModel }
func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.size, i.size) }
func (i *Image) At(x, y int) color.Color {
	r := y / i.Cell
	c := x / i.Cell
	if r >= len(i.Prob) || c >= len(i.Prob) {
		return color.RGBA{211, 211, 211, 255}
	}
	return i.Gradient.Gradient(i.Prob[r][c])
}

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// GrayScale returns a gray scale
// between 200 (light gray, probability zero)
// and 0 (black, probability one).
type GrayScale struct{}

func (g GrayScale) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	c := 200 - uint8(v*200)
	return color.RGBA{c, c, c, 255}
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	return blind.Sequential(blind.Iridescent, v)
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	return blind.Sequential(blind.RainbowPurpleToRed, v)
}
