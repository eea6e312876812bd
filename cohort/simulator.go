// cohort project simulator.go
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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/matrix"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/sampler"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Chunks smaller than this are not worth a goroutine.
const minChunk = 4096

// Simulator advances one cohort cycle by cycle. It is not safe for concurrent
// use; independent simulators share nothing.
type Simulator struct {
	opts    Options
	space   *markov.StateSpace
	log     *slog.Logger
	workers int

	first int // absolute cycle of column 0
	col   int // last filled column

	states []markov.State
	next   []markov.State
	cov    transition.Covariates

	smp    *sampler.Sampler
	probs  *mat.Dense
	u      []float64
	groups [][]int

	costs *mat.Dense // N x (Cycles+1)
	utils *mat.Dense
	trace *mat.Dense // (Cycles+1) x S
	traj  *Trajectory
	pairs *PairLog
}

// Run simulates opts.Cycles cycles from the initial condition.
func Run(ctx context.Context, opts Options) (*Result, error) {
	sim, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := sim.Advance(ctx, opts.Cycles); err != nil {
		return nil, err
	}
	res, err := sim.Result()
	if err != nil {
		return nil, err
	}
	sim.log.Info("cohort run finished",
		slog.Int("cycles", res.Cycles()),
		slog.Float64("tc_hat", res.MeanCost),
		slog.Float64("te_hat", res.MeanQALY),
	)
	return res, nil
}

// New sets up cycle 0: everyone in their starting state with zero covariates.
func New(opts Options) (*Simulator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := newSimulator(opts, 0)
	s.smp = sampler.New(opts.Seed)

	sp := s.space
	for i := range s.states {
		s.states[i] = sp.Healthy()
		if opts.Initial != nil {
			s.states[i] = opts.Initial[i]
		}
	}

	// column 0 is costed against the zero covariates; individuals started in
	// a disease or death state count as having entered it at cycle 0
	for i, st := range s.states {
		s.costs.Set(i, 0, opts.Costs.Cost(st, 0, 0, 0))
		s.utils.Set(i, 0, opts.Utilities.Utility(st, 0))
		if sp.IsDisease(st) {
			s.cov.Duration[i] = 1
		}
		if st == sp.CancerDeath() {
			s.cov.DeathTime[i] = 1
		}
	}
	s.record(nil, s.states)

	s.log.Info("cohort run starting",
		slog.String("model", sp.Name()),
		slog.Int("population", opts.Population),
		slog.Int("cycles", opts.Cycles),
		slog.Uint64("seed", opts.Seed),
		slog.Int("workers", s.workers),
	)
	return s, nil
}

func newSimulator(opts Options, first int) *Simulator {
	n, sp := opts.Population, opts.Engine.Space()
	s := &Simulator{
		opts:    opts,
		space:   sp,
		log:     opts.logger(),
		workers: opts.workers(),
		first:   first,
		states:  make([]markov.State, n),
		next:    make([]markov.State, n),
		cov:     transition.NewCovariates(n, opts.StartAge, opts.CycleLength),
		probs:   mat.NewDense(n, sp.Len(), nil),
		u:       make([]float64, n),
		costs:   mat.NewDense(n, opts.Cycles+1, nil),
		utils:   mat.NewDense(n, opts.Cycles+1, nil),
	}
	if opts.KeepTrace {
		s.trace = mat.NewDense(opts.Cycles+1, sp.Len(), nil)
	}
	if opts.KeepTrajectory {
		s.traj = newTrajectory(n, opts.Cycles+1)
	}
	if opts.KeepPairs {
		s.pairs = newPairLog(n, opts.Cycles)
	}
	return s
}

// Cycle is the absolute cycle of the current states.
func (s *Simulator) Cycle() int { return s.first + s.col }

// States are the current states. The slice is owned by the simulator.
func (s *Simulator) States() []markov.State { return s.states }

// Advance runs n more cycles.
func (s *Simulator) Advance(ctx context.Context, n int) error {
	for k := 0; k < n; k++ {
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step moves every individual one cycle forward:
//  1. transition probabilities from the current states and covariates
//  2. one uniform draw per individual, then inverse CDF sampling
//  3. cost and utility of the new state against the covariates as they stood
//  4. covariate update from the new state
func (s *Simulator) Step(ctx context.Context) error {
	if s.col >= s.opts.Cycles {
		return fmt.Errorf("%w: all %d cycles already simulated", markov.ErrConfiguration, s.opts.Cycles)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	j := s.col + 1
	cycle := s.first + j

	s.groups = s.space.Partition(s.states, s.groups)
	if err := s.fillProbabilities(ctx); err != nil {
		return s.locate(err, cycle)
	}

	s.smp.Uniforms(s.u)

	err := s.parallel(ctx, len(s.states), func(lo, hi int) error {
		if err := sampler.Categorical(s.next, s.probs, s.u, lo, hi); err != nil {
			return err
		}
		for i := lo; i < hi; i++ {
			to := s.next[i]
			s.costs.Set(i, j, s.opts.Costs.Cost(to, s.cov.Duration[i], s.cov.DeathTime[i], cycle))
			s.utils.Set(i, j, s.opts.Utilities.Utility(to, s.cov.AgeTime[i]))
			s.update(i, to)
		}
		return nil
	})
	if err != nil {
		return s.locate(err, cycle)
	}

	s.col = j
	s.record(s.states, s.next)
	s.states, s.next = s.next, s.states

	s.log.Debug("cycle done", slog.Int("cycle", cycle))
	return nil
}

// update applies the covariate rules for an individual now in state to.
func (s *Simulator) update(i int, to markov.State) {
	sp := s.space
	if sp.IsDisease(to) {
		s.cov.Duration[i]++
	} else {
		s.cov.Duration[i] = 0
	}
	if to == sp.CancerDeath() {
		s.cov.DeathTime[i]++
	} else {
		s.cov.DeathTime[i] = 0
	}
	k := sp.Kind(to)
	s.cov.AgeTime[i] = s.opts.AgeClock.Next(s.cov.AgeTime[i], k)
	s.cov.DCISTime[i] = s.opts.DCISClock.Next(s.cov.DCISTime[i], k)
}

// record stores column s.col of the trajectory, trace and pair log. prev is
// nil for column 0.
func (s *Simulator) record(prev, cur []markov.State) {
	if s.traj != nil {
		s.traj.appendColumn(cur)
	}
	if s.pairs != nil && prev != nil {
		s.pairs.appendColumn(prev, cur)
	}
	if s.trace != nil {
		row := s.trace.RawRowView(s.col)
		for k := range row {
			row[k] = 0
		}
		for _, st := range cur {
			row[st]++
		}
		matrix.Normalize(row, len(cur))
	}
}

func (s *Simulator) fillProbabilities(ctx context.Context) error {
	type task struct {
		from markov.State
		idx  []int
	}
	var tasks []task
	chunk := s.chunkSize(len(s.states))
	for from, idx := range s.groups {
		for lo := 0; lo < len(idx); lo += chunk {
			tasks = append(tasks, task{from: markov.State(from), idx: idx[lo:min(lo+chunk, len(idx))]})
		}
	}

	if s.workers <= 1 || len(tasks) <= 1 {
		for _, t := range tasks {
			if err := s.opts.Engine.FillGroup(s.probs, t.from, t.idx, &s.cov); err != nil {
				return err
			}
		}
		return nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return s.opts.Engine.FillGroup(s.probs, t.from, t.idx, &s.cov)
		})
	}
	return g.Wait()
}

// parallel runs fn over [0, n) split into contiguous chunks.
func (s *Simulator) parallel(ctx context.Context, n int, fn func(lo, hi int) error) error {
	chunk := s.chunkSize(n)
	if s.workers <= 1 || chunk >= n {
		return fn(0, n)
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error { return fn(lo, hi) })
	}
	return g.Wait()
}

func (s *Simulator) chunkSize(n int) int {
	if s.workers <= 1 {
		return max(n, 1)
	}
	return max((n+s.workers-1)/s.workers, minChunk)
}

// locate stamps a distribution error with the cycle and origin state.
func (s *Simulator) locate(err error, cycle int) error {
	var de *markov.DistributionError
	if errors.As(err, &de) {
		de.Cycle = cycle
		if de.Individual >= 0 && de.Individual < len(s.states) {
			de.State = s.states[de.Individual]
		}
	}
	return fmt.Errorf("cycle %d: %w", cycle, err)
}

// Result assembles the discounted totals over the columns simulated so far.
func (s *Simulator) Result() (*Result, error) {
	n, cols := s.opts.Population, s.col+1

	cw, err := matrix.DiscountWeights(s.opts.CostRate, s.first, cols)
	if err != nil {
		return nil, err
	}
	uw, err := matrix.DiscountWeights(s.opts.UtilityRate, s.first, cols)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Space:          s.space,
		FirstCycle:     s.first,
		Population:     n,
		Costs:          s.costs.Slice(0, n, 0, cols).(*mat.Dense),
		Utilities:      s.utils.Slice(0, n, 0, cols).(*mat.Dense),
		CostWeights:    cw,
		UtilityWeights: uw,
		Trajectory:     s.traj,
		Pairs:          s.pairs,
	}
	if res.TotalCost, err = matrix.Discounted(res.Costs, cw); err != nil {
		return nil, err
	}
	if res.TotalQALY, err = matrix.Discounted(res.Utilities, uw); err != nil {
		return nil, err
	}
	res.MeanCost = matrix.Mean(res.TotalCost)
	res.MeanQALY = matrix.Mean(res.TotalQALY)
	if s.trace != nil {
		res.Trace = s.trace.Slice(0, cols, 0, s.space.Len()).(*mat.Dense)
	}
	return res, nil
}
