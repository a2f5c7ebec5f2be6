// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package prior

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Parse returns a base measure from a string definition.
// The format of the definition is
//
//	"<measure>=<param>[,<param>...]"
//
// The implemented measures are:
//
//   - normal: with three parameters, the mean and standard deviation
//     of the prior of the component mean,
//     and the fixed component variance.
//   - norminvgamma: with four parameters, the prior mean,
//     the number of pseudo-observations (kappa),
//     and the shape and scale of the inverse gamma prior
//     of the component variance.
func Parse(s string) (Base, error) {
	name, fields, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("invalid base measure definition: %q", s)
	}
	name = strings.ToLower(strings.TrimSpace(name))

	var param []float64
	for _, f := range strings.Split(fields, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid base measure definition %q: %v", s, err)
		}
		param = append(param, v)
	}

	switch name {
	case "normal":
		if len(param) != 3 {
			return nil, fmt.Errorf("base measure %q: expecting 3 parameters, got %d", name, len(param))
		}
		if param[1] <= 0 || param[2] <= 0 {
			return nil, fmt.Errorf("base measure %q: parameters must be positive", name)
		}
		return Normal{
			Param: distuv.Normal{
				Mu:    param[0],
				Sigma: param[1],
			},
			Variance: param[2],
		}, nil
	case "norminvgamma":
		if len(param) != 4 {
			return nil, fmt.Errorf("base measure %q: expecting 4 parameters, got %d", name, len(param))
		}
		if param[1] <= 0 || param[2] <= 0 || param[3] <= 0 {
			return nil, fmt.Errorf("base measure %q: parameters must be positive", name)
		}
		return NormInvGamma{
			Mu:    param[0],
			Kappa: param[1],
			Param: distuv.InverseGamma{
				Alpha: param[2],
				Beta:  param[3],
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown base measure %q", name)
}
