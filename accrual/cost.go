// accrual project cost.go
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
	"fmt"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
)

// Costs is the per cycle cost schedule. Diagnosis and FollowUp are indexed by
// state; entries for non disease states are ignored.
type Costs struct {
	Diagnosis      []float64 // one time cost charged in the cycle of entry
	FollowUp       []float64 // annual follow up cost
	FollowUpCycles int       // follow up window after the entry cycle, usually 5

	Terminal float64 // end of life care, charged once on breast cancer death

	Screening         float64 // average screening programme cost per cancer free woman
	ScreeningInterval int     // screening every k cycles, 0 for no screening

	space *markov.StateSpace
}

// NewCosts checks the schedule against the state space.
func NewCosts(space *markov.StateSpace, c Costs) (Costs, error) {
	if len(c.Diagnosis) != space.Len() || len(c.FollowUp) != space.Len() {
		return Costs{}, fmt.Errorf("%w: cost tables need %d states, have %d and %d",
			markov.ErrConfiguration, space.Len(), len(c.Diagnosis), len(c.FollowUp))
	}
	if c.FollowUpCycles < 0 || c.ScreeningInterval < 0 {
		return Costs{}, fmt.Errorf("%w: negative follow up window or screening interval", markov.ErrConfiguration)
	}
	if c.Terminal < 0 || c.Screening < 0 {
		return Costs{}, fmt.Errorf("%w: negative terminal or screening cost", markov.ErrConfiguration)
	}
	for _, s := range space.States() {
		if c.Diagnosis[s] < 0 || c.FollowUp[s] < 0 {
			return Costs{}, fmt.Errorf("%w: negative cost for %s", markov.ErrConfiguration, space.String(s))
		}
	}
	c.Diagnosis = append([]float64(nil), c.Diagnosis...)
	c.FollowUp = append([]float64(nil), c.FollowUp...)
	c.space = space
	return c, nil
}

// Cost for one individual in state s at cycle. duration and deathTime are the
// covariates as they stood before this cycle's update, so an entry cycle is
// seen with both still at 0.
func (c Costs) Cost(s markov.State, duration, deathTime, cycle int) float64 {
	switch c.space.Kind(s) {
	case markov.Healthy:
		if c.ScreeningInterval > 0 && cycle%c.ScreeningInterval == 0 {
			return c.Screening
		}
	case markov.DCIS, markov.Cancer:
		switch {
		case duration == 0:
			return c.Diagnosis[s]
		case duration <= c.FollowUpCycles:
			return c.FollowUp[s]
		}
	case markov.CancerDeath:
		if deathTime == 0 {
			return c.Terminal
		}
	}
	return 0
}

// Space is the state space the schedule was built for, nil if it was not
// built with NewCosts.
func (c Costs) Space() *markov.StateSpace { return c.space }
