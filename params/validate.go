// params project validate.go
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
package params

import (
	"fmt"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"
)

// Dists are the sampling laws a sensitivity parameter may use.
var Dists = []string{"gamma", "beta", "normal", "fixed"}

// Validate reports the first inconsistency in the parameters. Every problem
// wraps markov.ErrConfiguration.
func (c *Config) Validate() error {
	sp := c.Space
	if sp == nil {
		return fmt.Errorf("%w: no model variant", markov.ErrConfiguration)
	}
	if c.Population <= 0 {
		return fmt.Errorf("%w: population %d", markov.ErrConfiguration, c.Population)
	}
	if c.Cycles <= 0 {
		return fmt.Errorf("%w: cycles %d", markov.ErrConfiguration, c.Cycles)
	}
	if c.CycleLength <= 0 || c.StartAge < 0 {
		return fmt.Errorf("%w: cycle length %g and start age %g", markov.ErrConfiguration, c.CycleLength, c.StartAge)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", markov.ErrConfiguration, c.Workers)
	}
	if c.CostRate <= -1 || c.UtilityRate <= -1 {
		return fmt.Errorf("%w: discount rates %g and %g", markov.ErrConfiguration, c.CostRate, c.UtilityRate)
	}

	if c.Initial != nil {
		if len(c.Initial) != sp.Len() {
			return fmt.Errorf("%w: starting counts for %d states in the %s model", markov.ErrConfiguration, len(c.Initial), sp.Name())
		}
		total := 0
		for s, n := range c.Initial {
			if n < 0 {
				return fmt.Errorf("%w: %d individuals start in %s", markov.ErrConfiguration, n, sp.String(markov.State(s)))
			}
			total += n
		}
		if total != c.Population {
			return fmt.Errorf("%w: starting counts add to %d for a population of %d", markov.ErrConfiguration, total, c.Population)
		}
	}

	// cost and utility tables are checked by building them
	if _, err := c.costs(); err != nil {
		return err
	}
	u, err := c.utilities()
	if err != nil {
		return err
	}
	if low := u.MinHealthy(c.Cycles); low < 0 {
		return fmt.Errorf("%w: cancer free utility falls to %g within %d cycles", markov.ErrConfiguration, low, c.Cycles)
	}

	if _, err := c.engine(); err != nil {
		return err
	}
	for _, tr := range c.Transitions {
		if err := c.probe(tr); err != nil {
			return err
		}
	}

	sa := c.Sensitivity
	if sa.Samples < 0 {
		return fmt.Errorf("%w: %d sensitivity samples", markov.ErrConfiguration, sa.Samples)
	}
	if sa.TraceCycle < 0 || sa.TraceCycle > c.Cycles {
		return fmt.Errorf("%w: trace cycle %d outside 0..%d", markov.ErrConfiguration, sa.TraceCycle, c.Cycles)
	}
	for _, name := range sa.Names() {
		d := sa.Parameters[name]
		if _, err := c.Value(name); err != nil {
			return err
		}
		if !knownDist(d.Dist) {
			return fmt.Errorf("%w: %s has unknown distribution %q", markov.ErrConfiguration, name, d.Dist)
		}
		if d.SD < 0 {
			return fmt.Errorf("%w: %s has standard deviation %g", markov.ErrConfiguration, name, d.SD)
		}
	}
	return nil
}

// probe evaluates a curve at every covariate value the horizon can reach.
// Duration curves start at 0, the first cycle after entry, so an unguarded
// log of duration fails here rather than mid run.
func (c *Config) probe(tr Transition) error {
	for t := 0; t <= c.Cycles; t++ {
		x := c.StartAge + float64(t)*c.CycleLength
		if tr.Covariate == transition.Duration {
			if t == c.Cycles {
				break
			}
			x = float64(t)
		}
		p, err := tr.Curve.Eval(x)
		if err != nil {
			return fmt.Errorf("%w: %s at %s %g: %v", markov.ErrConfiguration, c.Space.PairName(tr.From, tr.To), tr.Covariate, x, err)
		}
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%w: %s gives probability %g at %s %g", markov.ErrConfiguration, c.Space.PairName(tr.From, tr.To), p, tr.Covariate, x)
		}
	}
	return nil
}

func knownDist(d string) bool {
	for _, k := range Dists {
		if k == d {
			return true
		}
	}
	return false
}
