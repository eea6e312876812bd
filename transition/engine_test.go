// transition project engine_test.go
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
package transition

import (
	"errors"
	"testing"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func mustLookup(t *testing.T, sp *markov.StateSpace, name string) markov.State {
	t.Helper()
	s, err := sp.Lookup(name)
	require.NoError(t, err)
	return s
}

// refinedRules is a small refined model: age driven incidence, duration
// driven stage 1 mortality.
func refinedRules(t *testing.T, sp *markov.StateSpace) []Rule {
	return []Rule{
		{From: sp.Healthy(), Edges: []Edge{
			{To: mustLookup(t, sp, "DCIS"), Var: Age, Curve: FracPoly{Intercept: 0.0009, Scale: 10, Terms: []Term{{Coef: -0.0035, Power: -2}}}},
			{To: mustLookup(t, sp, "Stage1"), Var: Age, Curve: FracPoly{Intercept: 0.0016, Scale: 10, Terms: []Term{{Coef: -0.012, Power: -2}}}},
			{To: sp.OtherDeath(), Var: Age, Curve: Exponential{A: 0.00002, B: 0.085}},
		}},
		{From: mustLookup(t, sp, "DCIS"), Edges: []Edge{
			{To: mustLookup(t, sp, "Stage1"), Var: DCISAge, Curve: Constant{P: 0.02}},
			{To: sp.OtherDeath(), Var: DCISAge, Curve: Exponential{A: 0.00002, B: 0.085}},
		}},
		{From: mustLookup(t, sp, "Stage1"), Edges: []Edge{
			{To: sp.CancerDeath(), Var: Duration, Curve: EntryGuarded{Entry: 0.005, Then: LogLinear{A: 0.010, B: -0.002}}},
			{To: sp.OtherDeath(), Var: Duration, Curve: Exponential{A: 0.012, B: 0.04}},
		}},
	}
}

func TestEngineRowsAreStochastic(t *testing.T) {
	sp := markov.Refined()
	e, err := NewEngine(sp, refinedRules(t, sp))
	require.NoError(t, err)

	stage1 := mustLookup(t, sp, "Stage1")
	states := []markov.State{sp.Healthy(), mustLookup(t, sp, "DCIS"), stage1, stage1, sp.CancerDeath(), sp.OtherDeath(), mustLookup(t, sp, "Stage4")}
	cov := NewCovariates(len(states), 50, 1)
	cov.AgeTime[0] = 30
	cov.DCISTime[1] = 12
	cov.Duration[2] = 1 // entered last cycle, must not reach ln(0)
	cov.Duration[3] = 41

	p, err := e.Matrix(nil, states, &cov)
	require.NoError(t, err)

	for i := range states {
		row := p.RawRowView(i)
		assert.InDelta(t, 1, floats.Sum(row), 1e-12, "row %d", i)
		assert.True(t, floats.Min(row) >= 0, "row %d", i)
	}

	// absorbing states are one hot
	assert.Equal(t, 1.0, p.At(4, int(sp.CancerDeath())))
	assert.Equal(t, 1.0, p.At(5, int(sp.OtherDeath())))

	// entry cycle uses the entry probability
	assert.Equal(t, 0.005, p.At(2, int(sp.CancerDeath())))
	assert.InDelta(t, 0.010-0.002*3.6888794541139363, p.At(3, int(sp.CancerDeath())), 1e-15)

	// a state without a rule stays put
	assert.Equal(t, 1.0, p.At(6, 5))
}

func TestEngineResidualNeverForcedNegative(t *testing.T) {
	sp := markov.Simple()
	dcis := mustLookup(t, sp, "DCIS")
	e, err := NewEngine(sp, []Rule{
		{From: sp.Healthy(), Edges: []Edge{
			{To: dcis, Var: Age, Curve: Constant{P: 0.7}},
			{To: sp.OtherDeath(), Var: Age, Curve: Exponential{A: 0.001, B: 0.1}},
		}},
	})
	require.NoError(t, err)

	cov := NewCovariates(2, 50, 1)
	cov.AgeTime[1] = 30 // 0.001 e^8 = 2.98 > 1
	_, err = e.Matrix(nil, []markov.State{sp.Healthy(), sp.Healthy()}, &cov)
	require.Error(t, err)
	assert.True(t, errors.Is(err, markov.ErrInvalidDistribution))

	e, err = NewEngine(sp, []Rule{
		{From: sp.Healthy(), Edges: []Edge{
			{To: dcis, Var: Age, Curve: Constant{P: 0.7}},
			{To: sp.OtherDeath(), Var: Age, Curve: Constant{P: 0.4}},
		}},
	})
	require.NoError(t, err)
	one := NewCovariates(1, 50, 1)
	_, err = e.Matrix(nil, []markov.State{sp.Healthy()}, &one)

	var de *markov.DistributionError
	require.True(t, errors.As(err, &de))
	assert.InDelta(t, 1.1, de.Sum, 1e-12)
	assert.Equal(t, sp.Healthy(), de.State)
}

func TestEngineDomainError(t *testing.T) {
	sp := markov.Refined()
	stage2 := mustLookup(t, sp, "Stage2")
	// an unguarded log of duration fails loudly in the entry cycle
	e, err := NewEngine(sp, []Rule{
		{From: stage2, Edges: []Edge{{To: sp.CancerDeath(), Var: Duration, Curve: LogLinear{A: 0.03, B: -0.006}}}},
	})
	require.NoError(t, err)

	cov := NewCovariates(1, 50, 1)
	cov.Duration[0] = 1
	_, err = e.Matrix(nil, []markov.State{stage2}, &cov)
	assert.True(t, errors.Is(err, markov.ErrCovariateDomain), "got %v", err)
}

func TestEngineRowSumWithinTolerance(t *testing.T) {
	sp := markov.Simple()
	dcis := mustLookup(t, sp, "DCIS")
	localised := mustLookup(t, sp, "Localised")
	e, err := NewEngine(sp, []Rule{
		{From: sp.Healthy(), Edges: []Edge{
			{To: dcis, Var: Age, Curve: Constant{P: 0.33}},
			{To: localised, Var: Age, Curve: Constant{P: 0.56}},
			{To: sp.OtherDeath(), Var: Age, Curve: Constant{P: 0.11}},
		}},
	})
	require.NoError(t, err)

	// 0.33 + 0.56 + 0.11 is 1.0000000000000002 in float64
	row := make([]float64, sp.Len())
	cov := NewCovariates(1, 50, 1)
	require.NoError(t, e.Row(row, sp.Healthy(), &cov, 0))
	assert.Zero(t, row[sp.Healthy()])
	assert.InDelta(t, 1, floats.Sum(row), 1e-12)
	assert.True(t, floats.Min(row) >= 0)

	// a real overshoot is still refused, not clamped
	e, err = NewEngine(sp, []Rule{
		{From: sp.Healthy(), Edges: []Edge{
			{To: dcis, Var: Age, Curve: Constant{P: 0.5}},
			{To: localised, Var: Age, Curve: Constant{P: 0.50002}},
		}},
	})
	require.NoError(t, err)
	err = e.Row(row, sp.Healthy(), &cov, 0)
	var de *markov.DistributionError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.InDelta(t, 1.00002, de.Sum, 1e-12)
}

func TestDurationCovariate(t *testing.T) {
	cov := NewCovariates(3, 50, 1)
	cov.Duration[1] = 1
	cov.Duration[2] = 6
	assert.Zero(t, cov.Value(Duration, 0))
	assert.Zero(t, cov.Value(Duration, 1), "first cycle after entry")
	assert.Equal(t, 5.0, cov.Value(Duration, 2))
}

func TestNewEngineRejects(t *testing.T) {
	sp := markov.Simple()
	dcis := mustLookup(t, sp, "DCIS")

	var tests = []struct {
		name  string
		rules []Rule
	}{
		{name: "from absorbing", rules: []Rule{{From: sp.CancerDeath(), Edges: []Edge{{To: dcis, Curve: Constant{}}}}}},
		{name: "self loop", rules: []Rule{{From: dcis, Edges: []Edge{{To: dcis, Curve: Constant{}}}}}},
		{name: "unknown destination", rules: []Rule{{From: dcis, Edges: []Edge{{To: 42, Curve: Constant{}}}}}},
		{name: "no curve", rules: []Rule{{From: dcis, Edges: []Edge{{To: sp.OtherDeath()}}}}},
		{name: "duplicate", rules: []Rule{
			{From: dcis, Edges: []Edge{{To: sp.OtherDeath(), Curve: Constant{}}}},
			{From: dcis, Edges: []Edge{{To: sp.OtherDeath(), Curve: Constant{}}}},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewEngine(sp, test.rules)
			assert.True(t, errors.Is(err, markov.ErrConfiguration), "got %v", err)
		})
	}
}
