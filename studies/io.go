// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package studies

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var header = []string{
	"study",
	"effect",
	"treated-events",
	"treated-total",
	"control-events",
	"control-total",
}

// ReadTSV reads a collection of studies from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - study, the name of the study
//   - effect, the observed effect size
//   - treated-events, treated-total, the outcome counts
//     of the treatment arm
//   - control-events, control-total, the outcome counts
//     of the control arm
//
// If the arm counts are given,
// the effect field is ignored
// and the effect is the empirical log-odds ratio of the trial.
//
// Here is an example file:
//
//	study	effect	treated-events	treated-total	control-events	control-total
//	Balcon	-0.791	14	56	15	58
//	Barber	-1.540	2	57	7	51
//	Reynolds	0.435
func ReadTSV(r io.Reader) (*Collection, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"study", "effect"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		name := canon(field(row, fields, "study"))
		if name == "" {
			continue
		}

		if hasArms(row, fields) {
			counts := make([]int, 4)
			for i, f := range header[2:] {
				v, err := strconv.Atoi(strings.TrimSpace(field(row, fields, f)))
				if err != nil {
					return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
				}
				counts[i] = v
			}
			if err := c.AddTrial(name, counts[0], counts[1], counts[2], counts[3]); err != nil {
				return nil, fmt.Errorf("on row %d: %v", ln, err)
			}
			continue
		}

		effect, err := strconv.ParseFloat(strings.TrimSpace(field(row, fields, "effect")), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, "effect", err)
		}
		if err := c.Add(name, effect); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return c, nil
}

// Field returns the value of a named field on a row,
// or an empty string on a short row.
func field(row []string, fields map[string]int, name string) string {
	i, ok := fields[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func hasArms(row []string, fields map[string]int) bool {
	for _, f := range header[2:] {
		if strings.TrimSpace(field(row, fields, f)) == "" {
			return false
		}
	}
	return true
}

// TSV writes a collection of studies as a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, name := range c.names {
		st := c.study[name]
		row := []string{
			name,
			strconv.FormatFloat(st.effect, 'g', -1, 64),
			"", "", "", "",
		}
		if a := st.arms; a != nil {
			row[2] = strconv.Itoa(a.tEvents)
			row[3] = strconv.Itoa(a.tTotal)
			row[4] = strconv.Itoa(a.cEvents)
			row[5] = strconv.Itoa(a.cTotal)
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
