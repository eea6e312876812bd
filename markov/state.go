// markov project state.go
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

type State uint8 // Index into a StateSpace

type Kind int // Role a state plays in the natural history

const (
	Healthy     Kind = iota // Cancer free, the initial state
	DCIS                    // Ductal carcinoma in situ
	Cancer                  // Invasive cancer at some stage
	CancerDeath             // Breast cancer death (absorbing)
	OtherDeath              // Other cause death (absorbing)
)

func (k Kind) String() string {
	switch k {
	case Healthy:
		return "healthy"
	case DCIS:
		return "dcis"
	case Cancer:
		return "cancer"
	case CancerDeath:
		return "cancerDeath"
	case OtherDeath:
		return "otherDeath"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String, case insensitive.
func ParseKind(s string) (Kind, error) {
	for k := Healthy; k <= OtherDeath; k++ {
		if strings.EqualFold(k.String(), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown state kind %q", ErrConfiguration, s)
}

type StateInfo struct {
	Name  string
	Kind  Kind
	Stage int // 0 for non cancer states
}

// StateSpace is the fixed, ordered set of mutually exclusive health states of
// one model variant. It is immutable once built.
type StateSpace struct {
	name   string
	states []StateInfo
	byName map[string]State

	healthy, cancerDeath, otherDeath State
}

// NewStateSpace checks that there is exactly one healthy state and one of each
// death state.
func NewStateSpace(name string, states []StateInfo) (*StateSpace, error) {
	if len(states) == 0 || len(states) > 255 {
		return nil, fmt.Errorf("%w: state space %q has %d states", ErrConfiguration, name, len(states))
	}

	sp := &StateSpace{
		name:   name,
		states: append([]StateInfo(nil), states...),
		byName: make(map[string]State, len(states)),
	}

	counts := make(map[Kind]int)
	for i, s := range sp.states {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: state %d has no name", ErrConfiguration, i)
		}
		if _, dup := sp.byName[strings.ToLower(s.Name)]; dup {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrConfiguration, s.Name)
		}
		sp.byName[strings.ToLower(s.Name)] = State(i)
		counts[s.Kind]++
		switch s.Kind {
		case Healthy:
			sp.healthy = State(i)
		case CancerDeath:
			sp.cancerDeath = State(i)
		case OtherDeath:
			sp.otherDeath = State(i)
		}
	}
	for _, k := range []Kind{Healthy, CancerDeath, OtherDeath} {
		if counts[k] != 1 {
			return nil, fmt.Errorf("%w: state space %q needs exactly one %v state, has %d", ErrConfiguration, name, k, counts[k])
		}
	}
	return sp, nil
}

func (sp *StateSpace) Name() string { return sp.name }

// Len is the number of states, S.
func (sp *StateSpace) Len() int { return len(sp.states) }

func (sp *StateSpace) Info(s State) StateInfo { return sp.states[s] }

func (sp *StateSpace) Kind(s State) Kind { return sp.states[s].Kind }

func (sp *StateSpace) String(s State) string {
	if int(s) >= len(sp.states) {
		return fmt.Sprintf("state(%d)", s)
	}
	return sp.states[s].Name
}

func (sp *StateSpace) Valid(s State) bool { return int(s) < len(sp.states) }

// Lookup finds a state by name, case insensitive.
func (sp *StateSpace) Lookup(name string) (State, error) {
	s, ok := sp.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: no state %q in the %s model", ErrConfiguration, name, sp.name)
	}
	return s, nil
}

func (sp *StateSpace) Healthy() State     { return sp.healthy }
func (sp *StateSpace) CancerDeath() State { return sp.cancerDeath }
func (sp *StateSpace) OtherDeath() State  { return sp.otherDeath }

func (sp *StateSpace) IsAbsorbing(s State) bool {
	k := sp.states[s].Kind
	return k == CancerDeath || k == OtherDeath
}

// IsDisease is true for DCIS and invasive cancer states, the states that
// accumulate duration.
func (sp *StateSpace) IsDisease(s State) bool {
	k := sp.states[s].Kind
	return k == DCIS || k == Cancer
}

// States lists every state in order.
func (sp *StateSpace) States() []State {
	out := make([]State, len(sp.states))
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// Names lists the state names in order, e.g. for table headers.
func (sp *StateSpace) Names() []string {
	out := make([]string, len(sp.states))
	for i, s := range sp.states {
		out[i] = s.Name
	}
	return out
}

// PairName renders a transition pair the way the incidence tallies print it.
func (sp *StateSpace) PairName(from, to State) string {
	return sp.String(from) + "->" + sp.String(to)
}

// Partition groups individual indices by their current state. groups[s] holds
// the indices in state s in ascending order. The groups slices are reused when
// their capacity allows.
func (sp *StateSpace) Partition(states []State, groups [][]int) [][]int {
	if len(groups) != len(sp.states) {
		groups = make([][]int, len(sp.states))
	}
	for s := range groups {
		groups[s] = groups[s][:0]
	}
	for i, s := range states {
		groups[s] = append(groups[s], i)
	}
	return groups
}
