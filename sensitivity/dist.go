// sensitivity project dist.go
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

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/params"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Draw samples one value of a parameter whose configured value is base. The
// mean defaults to base; gamma and beta are matched to the mean and sd.
func Draw(d params.Distribution, base float64, src rand.Source) (float64, error) {
	m := base
	if d.Mean != nil {
		m = *d.Mean
	}
	if d.SD < 0 {
		return 0, fmt.Errorf("%w: standard deviation %g", markov.ErrConfiguration, d.SD)
	}
	if d.Dist == "fixed" || d.SD == 0 {
		return m, nil
	}
	v := d.SD * d.SD

	switch d.Dist {
	case "normal":
		return distuv.Normal{Mu: m, Sigma: d.SD, Src: src}.Rand(), nil
	case "gamma":
		if m <= 0 {
			return 0, fmt.Errorf("%w: gamma with mean %g", markov.ErrConfiguration, m)
		}
		return distuv.Gamma{Alpha: m * m / v, Beta: m / v, Src: src}.Rand(), nil
	case "beta":
		if m <= 0 || m >= 1 || v >= m*(1-m) {
			return 0, fmt.Errorf("%w: beta with mean %g and sd %g", markov.ErrConfiguration, m, d.SD)
		}
		k := m*(1-m)/v - 1
		return distuv.Beta{Alpha: m * k, Beta: (1 - m) * k, Src: src}.Rand(), nil
	}
	return 0, fmt.Errorf("%w: unknown distribution %q", markov.ErrConfiguration, d.Dist)
}
