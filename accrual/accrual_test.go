// accrual project accrual_test.go
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
package accrual

import (
	"errors"
	"testing"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refinedCosts(t *testing.T) (*markov.StateSpace, Costs) {
	sp := markov.Refined()
	diag := make([]float64, sp.Len())
	fu := make([]float64, sp.Len())
	for _, s := range sp.States() {
		if sp.IsDisease(s) {
			diag[s] = 10000 + 1000*float64(s)
			fu[s] = 500 + 10*float64(s)
		}
	}
	c, err := NewCosts(sp, Costs{
		Diagnosis:         diag,
		FollowUp:          fu,
		FollowUpCycles:    5,
		Terminal:          12000,
		Screening:         55,
		ScreeningInterval: 2,
	})
	require.NoError(t, err)
	return sp, c
}

func TestCostEntryFollowUpWindow(t *testing.T) {
	sp, c := refinedCosts(t)
	stage2, err := sp.Lookup("Stage2")
	require.NoError(t, err)

	assert.Equal(t, c.Diagnosis[stage2], c.Cost(stage2, 0, 0, 7))
	for d := 1; d <= 5; d++ {
		assert.Equal(t, c.FollowUp[stage2], c.Cost(stage2, d, 0, 7+d), "duration %d", d)
	}
	for d := 6; d < 40; d++ {
		assert.Zero(t, c.Cost(stage2, d, 0, 7+d), "duration %d", d)
	}
}

func TestCostTerminalCareOnce(t *testing.T) {
	sp, c := refinedCosts(t)
	assert.Equal(t, 12000.0, c.Cost(sp.CancerDeath(), 0, 0, 3))
	for k := 1; k < 20; k++ {
		assert.Zero(t, c.Cost(sp.CancerDeath(), 0, k, 3+k))
	}
	// other cause death is never charged
	assert.Zero(t, c.Cost(sp.OtherDeath(), 0, 0, 3))
}

func TestCostScreeningPeriodicity(t *testing.T) {
	sp, c := refinedCosts(t)
	for cycle := 0; cycle < 10; cycle++ {
		want := 0.0
		if cycle%2 == 0 {
			want = 55
		}
		assert.Equal(t, want, c.Cost(sp.Healthy(), 0, 0, cycle), "cycle %d", cycle)
	}

	c.ScreeningInterval = 0
	assert.Zero(t, c.Cost(sp.Healthy(), 0, 0, 0))
}

func TestNewCostsRejects(t *testing.T) {
	sp := markov.Simple()
	ok := make([]float64, sp.Len())

	_, err := NewCosts(sp, Costs{Diagnosis: ok, FollowUp: ok[:3]})
	assert.True(t, errors.Is(err, markov.ErrConfiguration))

	neg := make([]float64, sp.Len())
	neg[2] = -1
	_, err = NewCosts(sp, Costs{Diagnosis: neg, FollowUp: ok})
	assert.True(t, errors.Is(err, markov.ErrConfiguration))

	_, err = NewCosts(sp, Costs{Diagnosis: ok, FollowUp: ok, ScreeningInterval: -2})
	assert.True(t, errors.Is(err, markov.ErrConfiguration))
}

func TestUtility(t *testing.T) {
	sp := markov.Refined()
	states := make([]float64, sp.Len())
	stage3, err := sp.Lookup("Stage3")
	require.NoError(t, err)
	states[stage3] = 0.65

	u, err := NewUtilities(sp, Utilities{Healthy: 0.9, AnnualDecrement: 0.004, State: states, CycleLength: 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.9, u.Utility(sp.Healthy(), 0), 1e-15)
	assert.InDelta(t, 0.86, u.Utility(sp.Healthy(), 10), 1e-15)
	assert.Equal(t, 0.65, u.Utility(stage3, 10))
	assert.Zero(t, u.Utility(sp.CancerDeath(), 0))
	assert.Zero(t, u.Utility(sp.OtherDeath(), 0))
	assert.InDelta(t, 0.7, u.MinHealthy(50), 1e-12)

	// half year cycles halve the accrual and the decrement per cycle
	u.CycleLength = 0.5
	assert.InDelta(t, 0.5*(0.9-0.004*5), u.Utility(sp.Healthy(), 10), 1e-15)
	assert.InDelta(t, 0.325, u.Utility(stage3, 3), 1e-15)
}

func TestNewUtilitiesRejects(t *testing.T) {
	sp := markov.Simple()
	states := make([]float64, sp.Len())

	_, err := NewUtilities(sp, Utilities{Healthy: 0.9, State: states})
	assert.True(t, errors.Is(err, markov.ErrConfiguration), "zero cycle length")

	_, err = NewUtilities(sp, Utilities{Healthy: 1.2, State: states, CycleLength: 1})
	assert.True(t, errors.Is(err, markov.ErrConfiguration))

	states[1] = 1.5
	_, err = NewUtilities(sp, Utilities{Healthy: 0.9, State: states, CycleLength: 1})
	assert.True(t, errors.Is(err, markov.ErrConfiguration))
}
