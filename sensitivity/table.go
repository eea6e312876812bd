// sensitivity project table.go
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package sensitivity

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	hjson "github.com/hjson/hjson-go"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Table holds one row per replicate: seed, tc_hat, te_hat, the state
// fractions at the trace cycle (trace.<State>) and the drawn parameters.
type Table struct {
	Names []string
	Data  *mat.Dense // replicates x len(Names)
}

func newTable(sp *markov.StateSpace, varied []string, n int) *Table {
	names := []string{"seed", "tc_hat", "te_hat"}
	for _, s := range sp.Names() {
		names = append(names, "trace."+s)
	}
	names = append(names, varied...)
	return &Table{Names: names, Data: mat.NewDense(n, len(names), nil)}
}

// setRow is safe for concurrent use on distinct rows.
func (t *Table) setRow(i int, row []float64) { t.Data.SetRow(i, row) }

// Rows is the number of replicates.
func (t *Table) Rows() int {
	r, _ := t.Data.Dims()
	return r
}

// Column copies out the named column.
func (t *Table) Column(name string) ([]float64, error) {
	for j, n := range t.Names {
		if n == name {
			return mat.Col(nil, j, t.Data), nil
		}
	}
	return nil, fmt.Errorf("%w: no column %q", markov.ErrConfiguration, name)
}

type Summary struct {
	Name   string
	Mean   float64
	SD     float64
	SDMean float64 // standard error of the mean
}

// Summaries gives the mean and standard deviation of every column but seed.
func (t *Table) Summaries() []Summary {
	n := float64(t.Rows())
	var out []Summary
	for j, name := range t.Names {
		if name == "seed" {
			continue
		}
		mean, variance := stat.MeanVariance(mat.Col(nil, j, t.Data), nil)
		if t.Rows() < 2 {
			variance = 0
		}
		out = append(out, Summary{
			Name:   name,
			Mean:   mean,
			SD:     math.Sqrt(variance),
			SDMean: math.Sqrt(variance / n),
		})
	}
	return out
}

// WriteCSV writes a header line and one line per replicate.
func (t *Table) WriteCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, strings.Join(t.Names, ",")); err != nil {
		return err
	}
	fields := make([]string, len(t.Names))
	for i := 0; i < t.Rows(); i++ {
		for j := range fields {
			v := t.Data.At(i, j)
			if j == 0 {
				fields[j] = fmt.Sprintf("%d", uint64(v))
			} else {
				fields[j] = fmt.Sprintf("%g", v)
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

// Hjson renders the summaries and the full table as an hjson document.
func (t *Table) Hjson() ([]byte, error) {
	var summary []interface{}
	for _, s := range t.Summaries() {
		summary = append(summary, map[string]interface{}{
			"name":   s.Name,
			"mean":   s.Mean,
			"sd":     s.SD,
			"sdMean": s.SDMean,
		})
	}
	rows := make([]interface{}, t.Rows())
	for i := range rows {
		rows[i] = mat.Row(nil, i, t.Data)
	}
	return hjson.Marshal(map[string]interface{}{
		"columns":   t.Names,
		"summaries": summary,
		"rows":      rows,
	})
}
