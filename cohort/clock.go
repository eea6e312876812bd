// cohort project clock.go
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
	"strings"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
)

// ClockPolicy says what an age-like clock does once an individual is in a
// state it does not accrue in.
type ClockPolicy int

const (
	FreezeOnExit    ClockPolicy = iota // hold the value reached
	ResetOnExit                        // drop back to 0
	AlwaysIncrement                    // keep counting in every state
)

func (p ClockPolicy) String() string {
	switch p {
	case FreezeOnExit:
		return "freeze"
	case ResetOnExit:
		return "reset"
	case AlwaysIncrement:
		return "always"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func ParseClockPolicy(s string) (ClockPolicy, error) {
	for p := FreezeOnExit; p <= AlwaysIncrement; p++ {
		if strings.EqualFold(p.String(), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown clock policy %q", markov.ErrConfiguration, s)
}

// Clock is an age-like covariate that counts cycles spent in the AccrueIn
// kinds of state.
type Clock struct {
	Policy   ClockPolicy
	AccrueIn []markov.Kind
}

// Next is the clock value after a cycle ending in a state of kind k.
func (c Clock) Next(v int, k markov.Kind) int {
	if c.Policy == AlwaysIncrement {
		return v + 1
	}
	for _, a := range c.AccrueIn {
		if a == k {
			return v + 1
		}
	}
	if c.Policy == ResetOnExit {
		return 0
	}
	return v
}
