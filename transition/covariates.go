// transition project covariates.go
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
	"fmt"
	"strings"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
)

type Variable int // Which covariate a curve is evaluated at

const (
	Age      Variable = iota // StartAge + AgeTime*CycleLength
	DCISAge                  // StartAge + DCISTime*CycleLength
	Duration                 // cycles completed in a disease state since entry
)

func (v Variable) String() string {
	switch v {
	case Age:
		return "age"
	case DCISAge:
		return "dcisAge"
	case Duration:
		return "duration"
	}
	return fmt.Sprintf("variable(%d)", int(v))
}

func ParseVariable(s string) (Variable, error) {
	for v := Age; v <= Duration; v++ {
		if strings.EqualFold(v.String(), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown covariate %q", markov.ErrConfiguration, s)
}

// Covariates holds the per individual sufficient statistics as parallel
// slices indexed by individual.
type Covariates struct {
	StartAge    float64 // common baseline age in years
	CycleLength float64 // years per cycle

	AgeTime   []int // cycles accrued on the age clock
	DCISTime  []int // cycles accrued on the DCIS age clock
	Duration  []int // consecutive cycles in a disease state, 1 in the entry cycle
	DeathTime []int // consecutive cycles since breast cancer death entry
}

// NewCovariates makes zeroed covariates for n individuals.
func NewCovariates(n int, startAge, cycleLength float64) Covariates {
	return Covariates{
		StartAge:    startAge,
		CycleLength: cycleLength,
		AgeTime:     make([]int, n),
		DCISTime:    make([]int, n),
		Duration:    make([]int, n),
		DeathTime:   make([]int, n),
	}
}

func (c *Covariates) Len() int { return len(c.AgeTime) }

// Value is the covariate v of individual i in the units its curves expect.
// Duration counts the entry cycle as 1, so its curves see Duration-1: 0 in
// the first cycle after entry.
func (c *Covariates) Value(v Variable, i int) float64 {
	switch v {
	case Age:
		return c.StartAge + float64(c.AgeTime[i])*c.CycleLength
	case DCISAge:
		return c.StartAge + float64(c.DCISTime[i])*c.CycleLength
	case Duration:
		return float64(max(c.Duration[i]-1, 0))
	}
	return 0
}

// Clone deep copies the slices.
func (c Covariates) Clone() Covariates {
	c.AgeTime = append([]int(nil), c.AgeTime...)
	c.DCISTime = append([]int(nil), c.DCISTime...)
	c.Duration = append([]int(nil), c.Duration...)
	c.DeathTime = append([]int(nil), c.DeathTime...)
	return c
}
