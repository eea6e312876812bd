// params project options.go
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
	"log/slog"
	"strings"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/accrual"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/cohort"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"
)

// Options builds the cohort run described by the parameters. The caller
// still chooses what to keep (trajectory, trace, pairs).
func (c *Config) Options(log *slog.Logger) (cohort.Options, error) {
	if err := c.Validate(); err != nil {
		return cohort.Options{}, err
	}
	engine, err := c.engine()
	if err != nil {
		return cohort.Options{}, err
	}
	costs, err := c.costs()
	if err != nil {
		return cohort.Options{}, err
	}
	utils, err := c.utilities()
	if err != nil {
		return cohort.Options{}, err
	}
	return cohort.Options{
		Engine:      engine,
		Costs:       costs,
		Utilities:   utils,
		AgeClock:    c.AgeClock,
		DCISClock:   c.DCISClock,
		Population:  c.Population,
		Cycles:      c.Cycles,
		StartAge:    c.StartAge,
		CycleLength: c.CycleLength,
		CostRate:    c.CostRate,
		UtilityRate: c.UtilityRate,
		Seed:        c.Seed,
		Initial:     c.InitialStates(),
		Workers:     c.Workers,
		Logger:      log,
	}, nil
}

// InitialStates expands the starting counts into a state vector, states in
// order. It is nil when everyone starts cancer free.
func (c *Config) InitialStates() []markov.State {
	if c.Initial == nil {
		return nil
	}
	out := make([]markov.State, 0, c.Population)
	for s, n := range c.Initial {
		for k := 0; k < n; k++ {
			out = append(out, markov.State(s))
		}
	}
	return out
}

func (c *Config) engine() (*transition.Engine, error) {
	rules := make([]transition.Rule, 0, len(c.Transitions))
	for _, tr := range c.Transitions {
		rules = append(rules, transition.Rule{From: tr.From, Edges: []transition.Edge{
			{To: tr.To, Var: tr.Covariate, Curve: tr.Curve},
		}})
	}
	return transition.NewEngine(c.Space, rules)
}

func (c *Config) costs() (accrual.Costs, error) {
	return accrual.NewCosts(c.Space, accrual.Costs{
		Diagnosis:         c.Diagnosis,
		FollowUp:          c.FollowUp,
		FollowUpCycles:    c.FollowUpCycles,
		Terminal:          c.Terminal,
		Screening:         c.Screening,
		ScreeningInterval: c.ScreeningInterval,
	})
}

func (c *Config) utilities() (accrual.Utilities, error) {
	return accrual.NewUtilities(c.Space, accrual.Utilities{
		Healthy:         c.HealthyUtility,
		AnnualDecrement: c.AnnualDecrement,
		State:           c.StateUtility,
		CycleLength:     c.CycleLength,
	})
}

// Value reads a named cost or utility parameter: terminal, screening,
// diagnosis.<State>, followUp.<State>, utility.healthy, utility.decrement or
// utility.<State>.
func (c *Config) Value(name string) (float64, error) {
	p, err := c.ref(name)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// With returns a copy with one named parameter replaced.
func (c *Config) With(name string, v float64) (*Config, error) {
	out := c.Clone()
	p, err := out.ref(name)
	if err != nil {
		return nil, err
	}
	*p = v
	return out, nil
}

func (c *Config) ref(name string) (*float64, error) {
	group, field, found := strings.Cut(strings.TrimSpace(name), ".")
	if !found {
		switch strings.ToLower(group) {
		case "terminal":
			return &c.Terminal, nil
		case "screening":
			return &c.Screening, nil
		}
		return nil, fmt.Errorf("%w: unknown parameter %q", markov.ErrConfiguration, name)
	}

	var table []float64
	switch strings.ToLower(group) {
	case "diagnosis":
		table = c.Diagnosis
	case "followup":
		table = c.FollowUp
	case "utility":
		switch strings.ToLower(field) {
		case "healthy":
			return &c.HealthyUtility, nil
		case "decrement":
			return &c.AnnualDecrement, nil
		}
		table = c.StateUtility
	default:
		return nil, fmt.Errorf("%w: unknown parameter %q", markov.ErrConfiguration, name)
	}

	s, err := c.Space.Lookup(field)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	if !c.Space.IsDisease(s) {
		return nil, fmt.Errorf("%w: parameter %q names %s, which is not a disease state", markov.ErrConfiguration, name, c.Space.String(s))
	}
	return &table[s], nil
}
