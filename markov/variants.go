// markov project variants.go
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
	"fmt"
	"strings"
)

const (
	VariantSimple  = "simple"  // 7 states, stage-free cancer transitions
	VariantRefined = "refined" // 8 states, stage specific duration dependent transitions
)

// Simple is the 7 state model: summary stage at diagnosis, no per-stage
// duration regressions.
func Simple() *StateSpace {
	sp, err := NewStateSpace(VariantSimple, []StateInfo{
		{Name: "NoCancer", Kind: Healthy},
		{Name: "DCIS", Kind: DCIS},
		{Name: "Localised", Kind: Cancer, Stage: 1},
		{Name: "Regional", Kind: Cancer, Stage: 2},
		{Name: "Distant", Kind: Cancer, Stage: 3},
		{Name: "BCDeath", Kind: CancerDeath},
		{Name: "OCDeath", Kind: OtherDeath},
	})
	if err != nil {
		panic(err)
	}
	return sp
}

// Refined is the 8 state model with AJCC stages 1 to 4.
func Refined() *StateSpace {
	sp, err := NewStateSpace(VariantRefined, []StateInfo{
		{Name: "NoCancer", Kind: Healthy},
		{Name: "DCIS", Kind: DCIS},
		{Name: "Stage1", Kind: Cancer, Stage: 1},
		{Name: "Stage2", Kind: Cancer, Stage: 2},
		{Name: "Stage3", Kind: Cancer, Stage: 3},
		{Name: "Stage4", Kind: Cancer, Stage: 4},
		{Name: "BCDeath", Kind: CancerDeath},
		{Name: "OCDeath", Kind: OtherDeath},
	})
	if err != nil {
		panic(err)
	}
	return sp
}

// Variant returns the state space for a variant name.
func Variant(name string) (*StateSpace, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case VariantSimple:
		return Simple(), nil
	case VariantRefined:
		return Refined(), nil
	}
	return nil, fmt.Errorf("%w: unknown model variant %q", ErrConfiguration, name)
}
