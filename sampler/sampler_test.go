// sampler project sampler_test.go
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
	"errors"
	"math"
	"testing"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDraw(t *testing.T) {
	row := []float64{0.2, 0, 0.5, 0.3}
	var tests = []struct {
		u    float64
		want markov.State
	}{
		{u: 0, want: 0},
		{u: 0.1999, want: 0},
		{u: 0.2, want: 2},
		{u: 0.69, want: 2},
		{u: 0.7, want: 3},
		{u: 0.999999, want: 3},
	}
	for _, test := range tests {
		got, err := Draw(row, test.u)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "u=%g", test.u)
	}

	// rounding short of 1 falls back to the last positive state
	got, err := Draw([]float64{0.3, 0.699999999, 0}, 0.9999999999)
	require.NoError(t, err)
	assert.Equal(t, markov.State(1), got)
}

func TestDrawRejectsBadRows(t *testing.T) {
	for _, row := range [][]float64{
		{0.5, 0.6},
		{0.5, 0.4},
		{1.1, -0.1},
		{0, 0},
		{math.NaN(), 1},
	} {
		_, err := Draw(row, 0.5)
		assert.True(t, errors.Is(err, markov.ErrInvalidDistribution), "row %v", row)
	}
}

func TestCategoricalFailsFast(t *testing.T) {
	p := mat.NewDense(3, 2, []float64{
		0.5, 0.5,
		1, 0,
		0.7, 0.7,
	})
	dst := make([]markov.State, 3)
	err := Categorical(dst, p, []float64{0.1, 0.1, 0.1}, 0, 3)

	var de *markov.DistributionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 2, de.Individual)
	assert.InDelta(t, 1.4, de.Sum, 1e-12)
}

func TestSampleIsReproducible(t *testing.T) {
	p := mat.NewDense(1000, 3, nil)
	for i := 0; i < 1000; i++ {
		p.SetRow(i, []float64{0.25, 0.25, 0.5})
	}

	a, err := New(42).Sample(p)
	require.NoError(t, err)
	b, err := New(42).Sample(p)
	require.NoError(t, err)
	c, err := New(43).Sample(p)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSampleFrequencies(t *testing.T) {
	const n = 200000
	probs := []float64{0.1, 0.6, 0.3}
	p := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		p.SetRow(i, probs)
	}
	next, err := New(7).Sample(p)
	require.NoError(t, err)

	counts := make([]float64, 3)
	for _, s := range next {
		counts[s]++
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.9995)
	for j, q := range probs {
		se := math.Sqrt(q * (1 - q) / n)
		assert.InDelta(t, q, counts[j]/n, z*se, "state %d", j)
	}
}

func TestRestoreContinuesStream(t *testing.T) {
	a := New(99)
	u := make([]float64, 10)
	a.Uniforms(u)

	state, err := a.State()
	require.NoError(t, err)
	b, err := Restore(state)
	require.NoError(t, err)

	ua := make([]float64, 5)
	ub := make([]float64, 5)
	a.Uniforms(ua)
	b.Uniforms(ub)
	assert.Equal(t, ua, ub)

	_, err = Restore([]byte("short"))
	assert.True(t, errors.Is(err, markov.ErrConfiguration))
}
