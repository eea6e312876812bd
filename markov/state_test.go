// markov project state_test.go
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	var tests = []struct {
		name   string
		states int
		stage4 bool
	}{
		{name: VariantSimple, states: 7},
		{name: VariantRefined, states: 8, stage4: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sp, err := Variant(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.states, sp.Len())

			absorbing := 0
			for _, s := range sp.States() {
				if sp.IsAbsorbing(s) {
					absorbing++
					assert.False(t, sp.IsDisease(s))
				}
			}
			assert.Equal(t, 2, absorbing)

			assert.Equal(t, "NoCancer", sp.String(sp.Healthy()))
			assert.Equal(t, Healthy, sp.Kind(sp.Healthy()))
			assert.True(t, sp.IsAbsorbing(sp.CancerDeath()))
			assert.True(t, sp.IsAbsorbing(sp.OtherDeath()))

			s4, err := sp.Lookup("stage4")
			assert.Equal(t, test.stage4, err == nil)
			if test.stage4 {
				assert.Equal(t, 4, sp.Info(s4).Stage)
				assert.Equal(t, Cancer, sp.Info(s4).Kind)
			}
			assert.Zero(t, sp.Info(sp.Healthy()).Stage)
		})
	}

	_, err := Variant("nine-state")
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	sp := Refined()
	s, err := sp.Lookup(" dcis ")
	require.NoError(t, err)
	assert.Equal(t, DCIS, sp.Kind(s))
	assert.True(t, sp.IsDisease(s))
	assert.Equal(t, "DCIS->Stage1", sp.PairName(s, s+1))
}

func TestNewStateSpaceRejects(t *testing.T) {
	var tests = []struct {
		name   string
		states []StateInfo
	}{
		{name: "empty"},
		{name: "no healthy", states: []StateInfo{
			{Name: "A", Kind: Cancer}, {Name: "B", Kind: CancerDeath}, {Name: "C", Kind: OtherDeath},
		}},
		{name: "two cancer deaths", states: []StateInfo{
			{Name: "A", Kind: Healthy}, {Name: "B", Kind: CancerDeath}, {Name: "C", Kind: CancerDeath}, {Name: "D", Kind: OtherDeath},
		}},
		{name: "duplicate", states: []StateInfo{
			{Name: "A", Kind: Healthy}, {Name: "a", Kind: Cancer}, {Name: "B", Kind: CancerDeath}, {Name: "C", Kind: OtherDeath},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewStateSpace(test.name, test.states)
			assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
		})
	}
}

func TestPartition(t *testing.T) {
	sp := Simple()
	states := []State{0, 2, 0, 6, 2, 2}

	groups := sp.Partition(states, nil)
	require.Len(t, groups, sp.Len())
	assert.Equal(t, []int{0, 2}, groups[0])
	assert.Equal(t, []int{1, 4, 5}, groups[2])
	assert.Equal(t, []int{3}, groups[6])
	assert.Empty(t, groups[1])

	// reuse keeps the result independent of the previous contents
	groups = sp.Partition([]State{1, 1}, groups)
	assert.Equal(t, []int{0, 1}, groups[1])
	assert.Empty(t, groups[0])
	assert.Empty(t, groups[2])
}

func TestDistributionError(t *testing.T) {
	var err error = &DistributionError{Cycle: 3, Individual: 7, State: 2, Sum: 1.2}
	assert.True(t, errors.Is(err, ErrInvalidDistribution))

	var de *DistributionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 7, de.Individual)
	assert.Contains(t, err.Error(), "individual 7")
}
