// cohort project options.go
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
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/accrual"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"
)

// Options configure one cohort run. They are read but never modified.
type Options struct {
	Engine    *transition.Engine
	Costs     accrual.Costs
	Utilities accrual.Utilities
	AgeClock  Clock // drives the age covariate and cancer free utility
	DCISClock Clock // drives the DCIS age covariate

	Population  int     // N
	Cycles      int     // T
	StartAge    float64 // common baseline age in years
	CycleLength float64 // years per cycle

	CostRate    float64 // annual discount rate for costs
	UtilityRate float64 // annual discount rate for QALYs

	Seed    uint64
	Initial []markov.State // starting state vector, nil for everyone cancer free

	Workers int // goroutines per cycle, 0 for one per CPU

	KeepTrajectory bool
	KeepTrace      bool
	KeepPairs      bool

	Logger *slog.Logger
}

func (o *Options) validate() error {
	if o.Engine == nil {
		return fmt.Errorf("%w: no transition engine", markov.ErrConfiguration)
	}
	sp := o.Engine.Space()
	if o.Population <= 0 {
		return fmt.Errorf("%w: population size %d", markov.ErrConfiguration, o.Population)
	}
	if o.Cycles <= 0 {
		return fmt.Errorf("%w: cycle count %d", markov.ErrConfiguration, o.Cycles)
	}
	if o.CycleLength <= 0 {
		return fmt.Errorf("%w: cycle length %g", markov.ErrConfiguration, o.CycleLength)
	}
	if o.StartAge < 0 {
		return fmt.Errorf("%w: start age %g", markov.ErrConfiguration, o.StartAge)
	}
	if o.CostRate <= -1 || o.UtilityRate <= -1 {
		return fmt.Errorf("%w: discount rates %g and %g", markov.ErrConfiguration, o.CostRate, o.UtilityRate)
	}
	if !sameSpace(o.Costs.Space(), sp) || !sameSpace(o.Utilities.Space(), sp) {
		return fmt.Errorf("%w: cost and utility tables are not built for the %s model", markov.ErrConfiguration, sp.Name())
	}
	if o.Initial != nil {
		if len(o.Initial) != o.Population {
			return fmt.Errorf("%w: starting state vector has %d entries for a population of %d",
				markov.ErrConfiguration, len(o.Initial), o.Population)
		}
		for i, s := range o.Initial {
			if !sp.Valid(s) {
				return fmt.Errorf("%w: individual %d starts in unknown state %d", markov.ErrConfiguration, i, s)
			}
		}
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d workers", markov.ErrConfiguration, o.Workers)
	}
	return nil
}

func (o *Options) workers() int {
	if o.Workers == 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func sameSpace(a, b *markov.StateSpace) bool {
	return a != nil && b != nil && a.Name() == b.Name() && a.Len() == b.Len()
}
