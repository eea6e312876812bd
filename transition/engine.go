// transition project engine.go
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
	"math"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/matrix"

	"gonum.org/v1/gonum/mat"
)

// Edge is one reachable destination of an origin state.
type Edge struct {
	To    markov.State
	Var   Variable
	Curve Curve
}

// Rule lists the non-stay destinations of an origin state. The stay
// probability is the residual 1 - sum(edges).
type Rule struct {
	From  markov.State
	Edges []Edge
}

// Engine computes the next state distribution of every individual.
type Engine struct {
	space *markov.StateSpace
	rules [][]Edge // by origin state
}

// NewEngine checks the rules against the state space. Absorbing states may
// not have rules; non-absorbing states without a rule stay put.
func NewEngine(space *markov.StateSpace, rules []Rule) (*Engine, error) {
	e := &Engine{space: space, rules: make([][]Edge, space.Len())}

	seen := make(map[[2]markov.State]bool)
	for _, r := range rules {
		if !space.Valid(r.From) {
			return nil, fmt.Errorf("%w: rule from unknown state %d", markov.ErrConfiguration, r.From)
		}
		if space.IsAbsorbing(r.From) {
			return nil, fmt.Errorf("%w: absorbing state %s cannot have transitions", markov.ErrConfiguration, space.String(r.From))
		}
		for _, edge := range r.Edges {
			if !space.Valid(edge.To) {
				return nil, fmt.Errorf("%w: %s has a transition to unknown state %d", markov.ErrConfiguration, space.String(r.From), edge.To)
			}
			if edge.To == r.From {
				return nil, fmt.Errorf("%w: %s stay probability is the residual and cannot be given", markov.ErrConfiguration, space.String(r.From))
			}
			if edge.Curve == nil {
				return nil, fmt.Errorf("%w: %s has no curve", markov.ErrConfiguration, space.PairName(r.From, edge.To))
			}
			k := [2]markov.State{r.From, edge.To}
			if seen[k] {
				return nil, fmt.Errorf("%w: %s given twice", markov.ErrConfiguration, space.PairName(r.From, edge.To))
			}
			seen[k] = true
			e.rules[r.From] = append(e.rules[r.From], edge)
		}
	}
	return e, nil
}

func (e *Engine) Space() *markov.StateSpace { return e.space }

// Edges returns the outgoing edges of an origin state.
func (e *Engine) Edges(from markov.State) []Edge { return e.rules[from] }

// Row writes individual i's distribution over next states into dst, which
// must have length S. Edge sums within matrix.RowTolerance above 1 leave a
// zero stay probability; larger sums are an error.
func (e *Engine) Row(dst []float64, from markov.State, cov *Covariates, i int) error {
	for j := range dst {
		dst[j] = 0
	}
	if e.space.IsAbsorbing(from) {
		dst[from] = 1
		return nil
	}

	var sum float64
	for _, edge := range e.rules[from] {
		p, err := edge.Curve.Eval(cov.Value(edge.Var, i))
		if err != nil {
			return fmt.Errorf("individual %d %s at %v=%g: %w",
				i, e.space.PairName(from, edge.To), edge.Var, cov.Value(edge.Var, i), err)
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: individual %d %s probability %g at %v=%g",
				markov.ErrInvalidDistribution, i, e.space.PairName(from, edge.To), p, edge.Var, cov.Value(edge.Var, i))
		}
		dst[edge.To] += p
		sum += p
	}
	if sum > 1+matrix.RowTolerance {
		return &markov.DistributionError{Individual: i, State: from, Sum: sum}
	}
	dst[from] = max(0, 1-sum)
	return nil
}

// FillGroup computes the rows of the individuals in idx, all of whom are in
// state from, and scatters them into dst.
func (e *Engine) FillGroup(dst *mat.Dense, from markov.State, idx []int, cov *Covariates) error {
	for _, i := range idx {
		if err := e.Row(dst.RawRowView(i), from, cov, i); err != nil {
			return err
		}
	}
	return nil
}

// Matrix computes the full N x S transition matrix for the current states,
// partitioning individuals by state first. dst is reused when it has the
// right shape.
func (e *Engine) Matrix(dst *mat.Dense, states []markov.State, cov *Covariates) (*mat.Dense, error) {
	n, s := len(states), e.space.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no individuals", markov.ErrConfiguration)
	}
	if cov.Len() != n {
		return nil, fmt.Errorf("%w: %d states but %d covariate rows", markov.ErrConfiguration, n, cov.Len())
	}
	if dst == nil {
		dst = mat.NewDense(n, s, nil)
	} else if r, c := dst.Dims(); r != n || c != s {
		return nil, fmt.Errorf("%w: probability matrix is %dx%d, need %dx%d", markov.ErrConfiguration, r, c, n, s)
	}

	groups := e.space.Partition(states, nil)
	for from, idx := range groups {
		if err := e.FillGroup(dst, markov.State(from), idx, cov); err != nil {
			return nil, err
		}
	}
	return dst, nil
}
