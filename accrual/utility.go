// accrual project utility.go
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

// Utilities maps states to per cycle health utility.
type Utilities struct {
	Healthy         float64   // cancer free utility at the start age
	AnnualDecrement float64   // yearly loss of cancer free utility with age
	State           []float64 // fixed utility of each disease state, by state
	CycleLength     float64   // years per cycle

	space *markov.StateSpace
}

func NewUtilities(space *markov.StateSpace, u Utilities) (Utilities, error) {
	if len(u.State) != space.Len() {
		return Utilities{}, fmt.Errorf("%w: utility table needs %d states, has %d", markov.ErrConfiguration, space.Len(), len(u.State))
	}
	if u.CycleLength <= 0 {
		return Utilities{}, fmt.Errorf("%w: cycle length %g", markov.ErrConfiguration, u.CycleLength)
	}
	if u.Healthy < 0 || u.Healthy > 1 || u.AnnualDecrement < 0 {
		return Utilities{}, fmt.Errorf("%w: cancer free utility %g with decrement %g", markov.ErrConfiguration, u.Healthy, u.AnnualDecrement)
	}
	for _, s := range space.States() {
		if space.IsDisease(s) && (u.State[s] < 0 || u.State[s] > 1) {
			return Utilities{}, fmt.Errorf("%w: utility %g for %s", markov.ErrConfiguration, u.State[s], space.String(s))
		}
	}
	u.State = append([]float64(nil), u.State...)
	u.space = space
	return u, nil
}

// Utility for one individual in state s. ageTime is the age clock before this
// cycle's update. Death states contribute nothing.
func (u Utilities) Utility(s markov.State, ageTime int) float64 {
	var v float64
	switch u.space.Kind(s) {
	case markov.Healthy:
		v = u.Healthy - u.AnnualDecrement*float64(ageTime)*u.CycleLength
	case markov.DCIS, markov.Cancer:
		v = u.State[s]
	}
	return v * u.CycleLength
}

// MinHealthy is the cancer free utility after the given number of cycles, for
// checking a horizon does not drive it negative.
func (u Utilities) MinHealthy(cycles int) float64 {
	return u.Healthy - u.AnnualDecrement*float64(cycles)*u.CycleLength
}

func (u Utilities) Space() *markov.StateSpace { return u.space }
