// markov project errors.go
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
package markov

import (
	"errors"
	"fmt"
)

var (
	// A probability row does not sum to 1, or the non-stay probabilities of an
	// origin state exceed 1.
	ErrInvalidDistribution = errors.New("invalid probability distribution")

	// A covariate fell outside the domain of a log or power term.
	ErrCovariateDomain = errors.New("covariate outside function domain")

	// Population size, cycle count, state vector or parameter problems found
	// before a run starts.
	ErrConfiguration = errors.New("configuration error")
)

// DistributionError locates a bad probability row.
type DistributionError struct {
	Cycle      int
	Individual int
	State      State
	Sum        float64
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("%v: cycle %d individual %d in state %d has row sum %.10g",
		ErrInvalidDistribution, e.Cycle, e.Individual, e.State, e.Sum)
}

func (e *DistributionError) Unwrap() error { return ErrInvalidDistribution }
