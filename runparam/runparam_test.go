// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package runparam_test

import (
	"os"
	"testing"

	"github.com/js-arias/dpmix/runparam"
)

func TestRunParam(t *testing.T) {
	name := "tmp-run-parameters-for-test.tab"
	rp := runparam.New(name)
	testRP(t, rp, nil)

	if err := rp.SetPrior("norminvgamma=0,1,2,2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rp.SetAlpha(0.5)
	rp.SetShape(2)
	rp.SetRate(4)
	rp.SetIterations(5000)
	rp.SetBurnIn(1000)
	rp.SetThinning(10)
	rp.SetScheme("direct")
	rp.SetOrder("random")

	defer os.Remove(name)
	if err := rp.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := runparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testRP(t, np, rp)
}

func TestRunParamErrors(t *testing.T) {
	rp := runparam.New("no-file")

	if err := rp.SetPrior("student=0,1"); err == nil {
		t.Errorf("prior: expecting error")
	}
	if err := rp.SetAlpha(0); err == nil {
		t.Errorf("alpha: expecting error")
	}
	if err := rp.SetShape(-1); err == nil {
		t.Errorf("shape: expecting error")
	}
	if err := rp.SetRate(0); err == nil {
		t.Errorf("rate: expecting error")
	}
	if err := rp.SetIterations(0); err == nil {
		t.Errorf("iterations: expecting error")
	}
	if err := rp.SetBurnIn(-1); err == nil {
		t.Errorf("burn-in: expecting error")
	}
	if err := rp.SetThinning(0); err == nil {
		t.Errorf("thinning: expecting error")
	}
	if err := rp.SetScheme("collapsed"); err == nil {
		t.Errorf("scheme: expecting error")
	}
	if err := rp.SetOrder("sorted"); err == nil {
		t.Errorf("order: expecting error")
	}
}

func testRP(t testing.TB, rp, want *runparam.RP) {
	t.Helper()

	if want == nil {
		want = runparam.New(rp.Name())
	}

	if rp.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", rp.Name(), want.Name())
	}
	if rp.Prior() != want.Prior() {
		t.Errorf("prior: got %q, want %q", rp.Prior(), want.Prior())
	}
	if _, err := rp.Base(); err != nil {
		t.Errorf("base: unexpected error: %v", err)
	}
	if rp.Alpha() != want.Alpha() {
		t.Errorf("alpha: got %.6f, want %.6f", rp.Alpha(), want.Alpha())
	}
	if rp.Hyper() != want.Hyper() {
		t.Errorf("hyperprior: got %v, want %v", rp.Hyper(), want.Hyper())
	}
	if rp.Iterations() != want.Iterations() {
		t.Errorf("iterations: got %d, want %d", rp.Iterations(), want.Iterations())
	}
	if rp.BurnIn() != want.BurnIn() {
		t.Errorf("burn-in: got %d, want %d", rp.BurnIn(), want.BurnIn())
	}
	if rp.Thinning() != want.Thinning() {
		t.Errorf("thinning: got %d, want %d", rp.Thinning(), want.Thinning())
	}
	if rp.Scheme() != want.Scheme() {
		t.Errorf("scheme: got %q, want %q", rp.Scheme(), want.Scheme())
	}
	if rp.Order() != want.Order() {
		t.Errorf("order: got %q, want %q", rp.Order(), want.Order())
	}
}
