// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package probmat_test

import (
	"image/color"
	"testing"

	"github.com/js-arias/dpmix/infer/crp"
	"github.com/js-arias/dpmix/probmat"
)

func TestImage(t *testing.T) {
	runs := map[int][]crp.Sample{
		0: {
			{
				Sweep:       0,
				Alpha:       1,
				Assignments: []int{0, 0, 1},
				Components:  map[int]crp.Params{0: {}, 1: {}},
			},
			{
				Sweep:       1,
				Alpha:       1,
				Assignments: []int{0, 1, 1},
				Components:  map[int]crp.Params{0: {}, 1: {}},
			},
		},
	}

	img, err := probmat.New(runs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img.Gray = true
	img.Format()

	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("bounds: got %dx%d, want 24x24", b.Dx(), b.Dy())
	}

	want := [][]float64{
		{1, 0.5, 0},
		{0.5, 1, 0.5},
		{0, 0.5, 1},
	}
	for i, row := range want {
		for j, p := range row {
			if img.Prob[i][j] != p {
				t.Errorf("probability [%d][%d]: got %.3f, want %.3f", i, j, img.Prob[i][j], p)
			}
		}
	}

	// probability one is black, probability zero is light gray
	if c := img.At(0, 0); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("color at (0,0): got %v, want black", c)
	}
	if c := img.At(17, 0); c != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("color at (17,0): got %v, want light gray", c)
	}
}

func TestImageErrors(t *testing.T) {
	if _, err := probmat.New(nil); err == nil {
		t.Errorf("empty runs: expecting error")
	}

	runs := map[int][]crp.Sample{
		0: {
			{Assignments: []int{0, 0}},
			{Assignments: []int{0, 0, 1}},
		},
	}
	if _, err := probmat.New(runs); err == nil {
		t.Errorf("ragged assignments: expecting error")
	}
}
