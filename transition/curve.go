// transition project curve.go
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
)

// Curve is a closed form regression giving a transition probability as a
// function of one covariate.
type Curve interface {
	Eval(x float64) (float64, error)
}

// Constant ignores the covariate.
type Constant struct {
	P float64
}

func (c Constant) Eval(float64) (float64, error) { return c.P, nil }

// Term is one fractional polynomial term Coef * z^Power * ln(z)^LogPower.
type Term struct {
	Coef     float64
	Power    float64
	LogPower int
}

// FracPoly is a fractional polynomial in z = x/Scale, the form used for the
// age specific incidence curves.
type FracPoly struct {
	Intercept float64
	Scale     float64 // 0 is read as 1
	Terms     []Term
}

func (f FracPoly) Eval(x float64) (float64, error) {
	scale := f.Scale
	if scale == 0 {
		scale = 1
	}
	z := x / scale
	if !(z > 0) {
		return 0, fmt.Errorf("%w: fractional polynomial of %g", markov.ErrCovariateDomain, x)
	}

	p := f.Intercept
	lz := math.Log(z)
	for _, t := range f.Terms {
		v := t.Coef * math.Pow(z, t.Power)
		for k := 0; k < t.LogPower; k++ {
			v *= lz
		}
		p += v
	}
	return p, nil
}

// LogLinear is A + B ln(x).
type LogLinear struct {
	A, B float64
}

func (l LogLinear) Eval(x float64) (float64, error) {
	if !(x > 0) {
		return 0, fmt.Errorf("%w: log of %g", markov.ErrCovariateDomain, x)
	}
	return l.A + l.B*math.Log(x), nil
}

// Exponential is A exp(B x), a Gompertz hazard when x is age.
type Exponential struct {
	A, B float64
}

func (e Exponential) Eval(x float64) (float64, error) {
	if math.IsNaN(x) {
		return 0, fmt.Errorf("%w: exponential of NaN", markov.ErrCovariateDomain)
	}
	return e.A * math.Exp(e.B*x), nil
}

// EntryGuarded returns Entry in the first cycle after a state is entered
// (duration covariate 0) and Then otherwise, so log terms never see a zero
// duration.
type EntryGuarded struct {
	Entry float64
	Then  Curve
}

func (g EntryGuarded) Eval(x float64) (float64, error) {
	if x == 0 {
		return g.Entry, nil
	}
	if x < 0 {
		return 0, fmt.Errorf("%w: negative duration %g", markov.ErrCovariateDomain, x)
	}
	return g.Then.Eval(x)
}
