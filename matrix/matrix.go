// matrix project matrix.go
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
package matrix

import (
	"fmt"
	"io"
	"math"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tolerance on row sums used before sampling.
const RowTolerance = 1e-5

// DiscountWeights returns w[k] = 1/(1+rate)^(first+k) for k = 0..n-1.
// first lets a resumed run keep discounting from its absolute cycle.
func DiscountWeights(rate float64, first, n int) (*mat.VecDense, error) {
	if rate <= -1 || math.IsNaN(rate) {
		return nil, fmt.Errorf("%w: discount rate %g", markov.ErrConfiguration, rate)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d discount weights", markov.ErrConfiguration, n)
	}
	w := make([]float64, n)
	for k := range w {
		w[k] = 1 / math.Pow(1+rate, float64(first+k))
	}
	return mat.NewVecDense(n, w), nil
}

// GeometricSum is the closed form of sum_{t=0}^{T} 1/(1+rate)^t.
func GeometricSum(rate float64, T int) float64 {
	if rate == 0 {
		return float64(T + 1)
	}
	q := 1 / (1 + rate)
	return (1 - math.Pow(q, float64(T+1))) / (1 - q)
}

// Discounted is the matrix vector product of an N x (T+1) value matrix with
// its discount weights: the per individual present value.
func Discounted(values mat.Matrix, w mat.Vector) (*mat.VecDense, error) {
	_, c := values.Dims()
	if c != w.Len() {
		return nil, fmt.Errorf("%w: %d cycles of values but %d discount weights", markov.ErrConfiguration, c, w.Len())
	}
	var tot mat.VecDense
	tot.MulVec(values, w)
	return &tot, nil
}

// Mean of a vector's elements.
func Mean(v *mat.VecDense) float64 {
	if v.Len() == 0 {
		return 0
	}
	return mat.Sum(v) / float64(v.Len())
}

// CheckRowStochastic reports the first row whose elements are negative or do
// not sum to 1 within tol.
func CheckRowStochastic(m *mat.Dense, tol float64) error {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		sum := floats.Sum(row)
		if math.Abs(sum-1) > tol || floats.Min(row) < 0 {
			return &markov.DistributionError{Individual: i, Sum: sum}
		}
	}
	return nil
}

// Normalize scales a vector of counts to fractions of n.
func Normalize(counts []float64, n int) {
	if n == 0 {
		return
	}
	floats.Scale(1/float64(n), counts)
}

// Pretty matrix format printout
func MatPrint(w io.Writer, X mat.Matrix) {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	fmt.Fprintf(w, "%v\n", fa)
}

// MatPrintExcerpt prints the corners of a large matrix.
func MatPrintExcerpt(w io.Writer, X mat.Matrix, m int) {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze(), mat.Excerpt(m))
	fmt.Fprintf(w, "%v\n", fa)
}
