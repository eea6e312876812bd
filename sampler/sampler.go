// sampler project sampler.go
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
package sampler

import (
	"fmt"
	"math"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Tolerance on the row sums checked before a draw.
const Tolerance = 1e-5

// Sampler owns one seeded pseudorandom stream. Each call to Uniforms consumes
// exactly one draw per individual, in index order.
type Sampler struct {
	src *rand.PCGSource
	rng *rand.Rand
}

func New(seed uint64) *Sampler {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &Sampler{src: src, rng: rand.New(src)}
}

// Restore rebuilds a sampler from the bytes returned by State.
func Restore(state []byte) (*Sampler, error) {
	src := &rand.PCGSource{}
	if err := src.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("%w: restoring random stream: %v", markov.ErrConfiguration, err)
	}
	return &Sampler{src: src, rng: rand.New(src)}, nil
}

// State serialises the stream position so a run can be continued.
func (s *Sampler) State() ([]byte, error) {
	return s.src.MarshalBinary()
}

// Uniforms fills u with draws on [0, 1).
func (s *Sampler) Uniforms(u []float64) {
	for i := range u {
		u[i] = s.rng.Float64()
	}
}

// Sample draws one next state per row of p.
func (s *Sampler) Sample(p *mat.Dense) ([]markov.State, error) {
	n, _ := p.Dims()
	u := make([]float64, n)
	s.Uniforms(u)
	next := make([]markov.State, n)
	if err := Categorical(next, p, u, 0, n); err != nil {
		return nil, err
	}
	return next, nil
}

// Categorical draws dst[i] for rows lo..hi-1 of p by inverse CDF against u[i].
// Every row is checked to sum to 1 within Tolerance first. Disjoint ranges may
// run concurrently.
func Categorical(dst []markov.State, p *mat.Dense, u []float64, lo, hi int) error {
	for i := lo; i < hi; i++ {
		row := p.RawRowView(i)
		s, err := Draw(row, u[i])
		if err != nil {
			if de, ok := err.(*markov.DistributionError); ok {
				de.Individual = i
			}
			return err
		}
		dst[i] = s
	}
	return nil
}

// Draw picks the first state whose cumulative probability exceeds u.
func Draw(row []float64, u float64) (markov.State, error) {
	var sum float64
	last := -1
	negative := false
	for j, v := range row {
		if v < 0 || math.IsNaN(v) {
			negative = true
		}
		sum += v
		if v > 0 {
			last = j
		}
	}
	if negative || !(math.Abs(sum-1) <= Tolerance) || last < 0 {
		return 0, &markov.DistributionError{Sum: sum}
	}

	var cum float64
	for j, v := range row {
		cum += v
		if u < cum {
			return markov.State(j), nil
		}
	}
	// rounding left u above the final cumulative sum
	return markov.State(last), nil
}
