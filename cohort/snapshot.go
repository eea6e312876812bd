// cohort project snapshot.go
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
	"log/slog"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/sampler"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"
)

// Snapshot is everything needed to continue a run: the sufficient statistics
// of every individual, the last accrued column and the random stream position.
type Snapshot struct {
	Cycle      int // absolute cycle of States
	States     []markov.State
	Covariates transition.Covariates
	Cost       []float64 // cost column at Cycle
	Utility    []float64 // utility column at Cycle
	Random     []byte
}

// Snapshot copies out the current cycle.
func (s *Simulator) Snapshot() (*Snapshot, error) {
	rnd, err := s.smp.State()
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Cycle:      s.Cycle(),
		States:     append([]markov.State(nil), s.states...),
		Covariates: s.cov.Clone(),
		Cost:       make([]float64, len(s.states)),
		Utility:    make([]float64, len(s.states)),
		Random:     rnd,
	}
	for i := range s.states {
		snap.Cost[i] = s.costs.At(i, s.col)
		snap.Utility[i] = s.utils.At(i, s.col)
	}
	return snap, nil
}

// Resume continues a snapshot for opts.Cycles more cycles. Column 0 of the new
// simulator is the snapshot cycle; discounting carries on from it. opts.Seed
// and opts.Initial are not used.
func Resume(opts Options, snap *Snapshot) (*Simulator, error) {
	opts.Initial = nil
	if err := opts.validate(); err != nil {
		return nil, err
	}
	n := opts.Population
	if len(snap.States) != n || snap.Covariates.Len() != n || len(snap.Cost) != n || len(snap.Utility) != n {
		return nil, fmt.Errorf("%w: snapshot of %d individuals for a population of %d",
			markov.ErrConfiguration, len(snap.States), n)
	}

	smp, err := sampler.Restore(snap.Random)
	if err != nil {
		return nil, err
	}

	s := newSimulator(opts, snap.Cycle)
	s.smp = smp
	copy(s.states, snap.States)
	s.cov = snap.Covariates.Clone()
	s.cov.StartAge, s.cov.CycleLength = opts.StartAge, opts.CycleLength
	for i, st := range s.states {
		if !s.space.Valid(st) {
			return nil, fmt.Errorf("%w: snapshot individual %d in unknown state %d", markov.ErrConfiguration, i, st)
		}
		s.costs.Set(i, 0, snap.Cost[i])
		s.utils.Set(i, 0, snap.Utility[i])
	}
	s.record(nil, s.states)

	s.log.Info("cohort run resumed",
		slog.String("model", s.space.Name()),
		slog.Int("fromCycle", snap.Cycle),
		slog.Int("cycles", opts.Cycles),
	)
	return s, nil
}
