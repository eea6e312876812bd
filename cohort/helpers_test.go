// cohort project helpers_test.go
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
package cohort

import (
	"testing"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/accrual"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"

	"github.com/stretchr/testify/require"
)

const (
	testTerminal  = 12000.0
	testScreening = 55.0
)

func lookup(t *testing.T, sp *markov.StateSpace, name string) markov.State {
	t.Helper()
	s, err := sp.Lookup(name)
	require.NoError(t, err)
	return s
}

// testOptions builds a cohort with a plain cost and utility schedule around
// the given transition rules.
func testOptions(t *testing.T, sp *markov.StateSpace, rules []transition.Rule, n, cycles int) Options {
	t.Helper()
	engine, err := transition.NewEngine(sp, rules)
	require.NoError(t, err)

	diag := make([]float64, sp.Len())
	fu := make([]float64, sp.Len())
	util := make([]float64, sp.Len())
	for _, s := range sp.States() {
		if sp.IsDisease(s) {
			diag[s] = 9000 + 1000*float64(s)
			fu[s] = 400 + 100*float64(s)
			util[s] = 0.85 - 0.05*float64(s)
		}
	}
	costs, err := accrual.NewCosts(sp, accrual.Costs{
		Diagnosis:         diag,
		FollowUp:          fu,
		FollowUpCycles:    5,
		Terminal:          testTerminal,
		Screening:         testScreening,
		ScreeningInterval: 2,
	})
	require.NoError(t, err)
	utils, err := accrual.NewUtilities(sp, accrual.Utilities{
		Healthy:         0.9,
		AnnualDecrement: 0.004,
		State:           util,
		CycleLength:     1,
	})
	require.NoError(t, err)

	return Options{
		Engine:      engine,
		Costs:       costs,
		Utilities:   utils,
		AgeClock:    Clock{Policy: FreezeOnExit, AccrueIn: []markov.Kind{markov.Healthy}},
		DCISClock:   Clock{Policy: FreezeOnExit, AccrueIn: []markov.Kind{markov.Healthy, markov.DCIS}},
		Population:  n,
		Cycles:      cycles,
		StartAge:    50,
		CycleLength: 1,
		CostRate:    0.035,
		UtilityRate: 0.035,
		Seed:        42,
		Workers:     1,
	}
}

// busyRules is a refined model with inflated rates so that every state is
// visited in a short run.
func busyRules(t *testing.T, sp *markov.StateSpace) []transition.Rule {
	dcis := lookup(t, sp, "DCIS")
	stages := []markov.State{lookup(t, sp, "Stage1"), lookup(t, sp, "Stage2"), lookup(t, sp, "Stage3"), lookup(t, sp, "Stage4")}

	rules := []transition.Rule{
		{From: sp.Healthy(), Edges: []transition.Edge{
			{To: dcis, Var: transition.Age, Curve: transition.FracPoly{Intercept: 0.04, Scale: 10, Terms: []transition.Term{{Coef: -0.1, Power: -2}}}},
			{To: stages[0], Var: transition.Age, Curve: transition.Constant{P: 0.03}},
			{To: stages[1], Var: transition.Age, Curve: transition.Constant{P: 0.02}},
			{To: stages[2], Var: transition.Age, Curve: transition.Constant{P: 0.01}},
			{To: stages[3], Var: transition.Age, Curve: transition.Constant{P: 0.01}},
			{To: sp.OtherDeath(), Var: transition.Age, Curve: transition.Exponential{A: 0.0002, B: 0.085}},
		}},
		{From: dcis, Edges: []transition.Edge{
			{To: stages[0], Var: transition.DCISAge, Curve: transition.Constant{P: 0.1}},
			{To: sp.OtherDeath(), Var: transition.DCISAge, Curve: transition.Exponential{A: 0.0002, B: 0.085}},
		}},
	}
	for k, s := range stages {
		rules = append(rules, transition.Rule{From: s, Edges: []transition.Edge{
			{To: sp.CancerDeath(), Var: transition.Duration, Curve: transition.EntryGuarded{
				Entry: 0.05 * float64(k+1),
				Then:  transition.LogLinear{A: 0.08 * float64(k+1), B: -0.01},
			}},
			{To: sp.OtherDeath(), Var: transition.Duration, Curve: transition.Exponential{A: 0.01, B: 0.04}},
		}})
	}
	return rules
}
