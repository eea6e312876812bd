// cohort project result.go
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
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"gonum.org/v1/gonum/mat"
)

// Trajectory is the N x (T+1) state matrix, stored column by column so each
// cycle appends one contiguous column.
type Trajectory struct {
	n, cols int
	data    []markov.State
}

func newTrajectory(n, capCols int) *Trajectory {
	return &Trajectory{n: n, data: make([]markov.State, 0, n*capCols)}
}

func (tr *Trajectory) appendColumn(states []markov.State) {
	tr.data = append(tr.data, states...)
	tr.cols++
}

// Dims returns individuals and columns.
func (tr *Trajectory) Dims() (int, int) { return tr.n, tr.cols }

// At is the state of individual i in column t.
func (tr *Trajectory) At(i, t int) markov.State { return tr.data[t*tr.n+i] }

// Column returns the states of every individual in column t. It aliases the
// trajectory and must not be modified.
func (tr *Trajectory) Column(t int) []markov.State { return tr.data[t*tr.n : (t+1)*tr.n] }

// Row copies out individual i's path.
func (tr *Trajectory) Row(i int) []markov.State {
	out := make([]markov.State, tr.cols)
	for t := range out {
		out[t] = tr.At(i, t)
	}
	return out
}

// FirstEntry is the first column in which individual i is in state s, or -1.
func (tr *Trajectory) FirstEntry(i int, s markov.State) int {
	for t := 0; t < tr.cols; t++ {
		if tr.At(i, t) == s {
			return t
		}
	}
	return -1
}

// Pair is one individual's state before and after a cycle.
type Pair struct {
	From, To markov.State
}

// PairLog holds a Pair for every individual and cycle, column by column.
type PairLog struct {
	n, cols int
	data    []Pair
}

func newPairLog(n, capCols int) *PairLog {
	return &PairLog{n: n, data: make([]Pair, 0, n*capCols)}
}

func (l *PairLog) appendColumn(from, to []markov.State) {
	for i := range from {
		l.data = append(l.data, Pair{From: from[i], To: to[i]})
	}
	l.cols++
}

// Cycles is the number of logged transitions per individual.
func (l *PairLog) Cycles() int { return l.cols }

// At is individual i's transition into column t+1.
func (l *PairLog) At(i, t int) Pair { return l.data[t*l.n+i] }

// Tally counts the from->to transitions in each cycle.
func (l *PairLog) Tally(from, to markov.State) []int {
	counts := make([]int, l.cols)
	for t := range counts {
		for _, p := range l.data[t*l.n : (t+1)*l.n] {
			if p.From == from && p.To == to {
				counts[t]++
			}
		}
	}
	return counts
}

// Cumulative is the running total of Tally, the cumulative incidence count.
func (l *PairLog) Cumulative(from, to markov.State) []int {
	counts := l.Tally(from, to)
	for t := 1; t < len(counts); t++ {
		counts[t] += counts[t-1]
	}
	return counts
}

// Result is the outcome of a cohort run over columns FirstCycle..FirstCycle+Cycles().
type Result struct {
	Space      *markov.StateSpace
	FirstCycle int
	Population int

	Costs     *mat.Dense // N x columns
	Utilities *mat.Dense // N x columns

	CostWeights    *mat.VecDense
	UtilityWeights *mat.VecDense

	TotalCost *mat.VecDense // discounted, per individual
	TotalQALY *mat.VecDense // discounted, per individual

	MeanCost float64 // tc_hat
	MeanQALY float64 // te_hat

	Trajectory *Trajectory // nil unless kept
	Trace      *mat.Dense  // columns x S state fractions, nil unless kept
	Pairs      *PairLog    // nil unless kept
}

// Cycles is the number of simulated cycles in the result.
func (r *Result) Cycles() int {
	_, c := r.Costs.Dims()
	return c - 1
}

// StateFraction reads the trace at absolute cycle t.
func (r *Result) StateFraction(t int, s markov.State) float64 {
	return r.Trace.At(t-r.FirstCycle, int(s))
}
