// params project config.go
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
package params

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/cohort"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/transition"

	hjson "github.com/hjson/hjson-go"
)

// DefaultDiscount is the annual rate used when a file has no discount: key.
const DefaultDiscount = 0.035

//go:embed defaults/*.hjson
var defaults embed.FS

// Transition is one from->to regression of the parameter file.
type Transition struct {
	From, To  markov.State
	Covariate transition.Variable
	Type      string // curve type as written in the file
	Curve     transition.Curve
}

// Distribution is the sampling law of one parameter in a sensitivity analysis.
type Distribution struct {
	Dist string   // gamma, beta, normal or fixed
	Mean *float64 // nil for the configured value
	SD   float64
}

type Sensitivity struct {
	Samples    int
	TraceCycle int
	Parameters map[string]Distribution
}

// Names lists the varied parameters in sorted order.
func (s Sensitivity) Names() []string {
	out := make([]string, 0, len(s.Parameters))
	for k := range s.Parameters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Config is one resolved parameter set. It is not modified after loading;
// With and Clone return altered copies.
type Config struct {
	Comment string
	Variant string
	Space   *markov.StateSpace

	Population  int
	Cycles      int
	CycleLength float64
	StartAge    float64
	Seed        uint64
	Workers     int

	CostRate    float64
	UtilityRate float64

	AgeClock  cohort.Clock
	DCISClock cohort.Clock

	Initial []int // individuals starting in each state, nil for all cancer free

	Screening         float64
	ScreeningInterval int
	Terminal          float64
	FollowUpCycles    int
	Diagnosis         []float64 // by state
	FollowUp          []float64 // by state

	HealthyUtility  float64
	AnnualDecrement float64
	StateUtility    []float64 // by state

	Transitions []Transition
	Sensitivity Sensitivity
}

// Load reads and validates an hjson parameter file.
func Load(path string) (*Config, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", markov.ErrConfiguration, err)
	}
	c, err := Parse(byteValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built in parameters of a model variant.
func Default(variant string) (*Config, error) {
	name := strings.ToLower(strings.TrimSpace(variant))
	byteValue, err := defaults.ReadFile("defaults/" + name + ".hjson")
	if err != nil {
		return nil, fmt.Errorf("%w: no built in parameters for variant %q", markov.ErrConfiguration, variant)
	}
	return Parse(byteValue)
}

// Parse decodes and validates hjson parameters.
func Parse(byteValue []byte) (*Config, error) {
	var param map[string]interface{}
	if err := hjson.Unmarshal(byteValue, &param); err != nil {
		return nil, fmt.Errorf("%w: could not process the hjson: %v", markov.ErrConfiguration, err)
	}
	c, err := fromMap(param)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func fromMap(param map[string]interface{}) (*Config, error) {
	d := &decoder{}
	root := section{d: d, m: param}

	c := &Config{
		Comment: root.strOr("comment", ""),
		Variant: root.str("variant"),
	}
	if d.err != nil {
		return nil, d.err
	}
	sp, err := markov.Variant(c.Variant)
	if err != nil {
		return nil, err
	}
	c.Space = sp

	c.Population = root.integer("population")
	c.Cycles = root.integer("cycles")
	c.CycleLength = root.numberOr("cycleLength", 1)
	c.StartAge = root.number("startAge")
	if seed := root.integerOr("seed", 0); seed >= 0 {
		c.Seed = uint64(seed)
	} else {
		d.fail("'seed:' should not be negative")
	}
	c.Workers = root.integerOr("workers", 0)

	disc := root.sub("discount", false)
	c.CostRate = disc.numberOr("cost", DefaultDiscount)
	c.UtilityRate = disc.numberOr("utility", DefaultDiscount)

	clocks := root.sub("clocks", false)
	c.AgeClock = clock(clocks, "age", cohort.Clock{
		Policy:   cohort.FreezeOnExit,
		AccrueIn: []markov.Kind{markov.Healthy},
	})
	c.DCISClock = clock(clocks, "dcisAge", cohort.Clock{
		Policy:   cohort.FreezeOnExit,
		AccrueIn: []markov.Kind{markov.Healthy, markov.DCIS},
	})

	if root.has("initial") {
		counts := stateTable(sp, root.sub("initial", true), false)
		c.Initial = make([]int, sp.Len())
		for s, v := range counts {
			c.Initial[s] = int(v)
			if v != float64(int(v)) {
				d.fail("'initial.%s:' should be a whole number", sp.String(markov.State(s)))
			}
		}
	}

	costs := root.sub("costs", true)
	c.Screening = costs.numberOr("screening", 0)
	c.ScreeningInterval = costs.integerOr("screeningInterval", 1)
	c.Terminal = costs.number("terminal")
	c.FollowUpCycles = costs.integerOr("followUpCycles", 5)
	c.Diagnosis = stateTable(sp, costs.sub("diagnosis", true), true)
	c.FollowUp = stateTable(sp, costs.sub("followUp", true), true)

	utils := root.sub("utilities", true)
	c.HealthyUtility = utils.number("healthy")
	c.AnnualDecrement = utils.numberOr("annualDecrement", 0)
	c.StateUtility = stateTable(sp, utils.sub("states", true), true)

	for _, t := range root.items("transitions", true) {
		c.Transitions = append(c.Transitions, transitionRule(sp, t))
	}

	sa := root.sub("sensitivity", false)
	c.Sensitivity = Sensitivity{
		Samples:    sa.integerOr("samples", 0),
		TraceCycle: sa.integerOr("traceCycle", 0),
		Parameters: make(map[string]Distribution),
	}
	ps := sa.sub("parameters", false)
	for _, name := range ps.keys() {
		p := ps.sub(name, true)
		dist := Distribution{
			Dist: strings.ToLower(p.str("dist")),
			SD:   p.numberOr("sd", 0),
		}
		if p.has("mean") {
			m := p.number("mean")
			dist.Mean = &m
		}
		c.Sensitivity.Parameters[name] = dist
	}

	if d.err != nil {
		return nil, d.err
	}
	return c, nil
}

func clock(s section, k string, def cohort.Clock) cohort.Clock {
	if !s.has(k) {
		return def
	}
	cs := s.sub(k, true)
	policy, err := cohort.ParseClockPolicy(cs.str("policy"))
	if err != nil {
		cs.d.fail("'%s:' %v", cs.key("policy"), err)
		return def
	}
	out := cohort.Clock{Policy: policy}
	for _, name := range cs.strings("accrueIn") {
		kind, err := markov.ParseKind(name)
		if err != nil {
			cs.d.fail("'%s:' %v", cs.key("accrueIn"), err)
			return def
		}
		out.AccrueIn = append(out.AccrueIn, kind)
	}
	return out
}

// stateTable reads a {State: value} object into a slice indexed by state.
func stateTable(sp *markov.StateSpace, s section, diseaseOnly bool) []float64 {
	out := make([]float64, sp.Len())
	for _, name := range s.keys() {
		st, err := sp.Lookup(name)
		if err != nil {
			s.d.fail("'%s:' %v", s.key(name), err)
			continue
		}
		if diseaseOnly && !sp.IsDisease(st) {
			s.d.fail("'%s:' %s is not a disease state", s.key(name), sp.String(st))
			continue
		}
		out[st] = s.number(name)
	}
	return out
}

func transitionRule(sp *markov.StateSpace, s section) Transition {
	var tr Transition
	var err error
	if tr.From, err = sp.Lookup(s.str("from")); err != nil {
		s.d.fail("'%s:' %v", s.key("from"), err)
	}
	if tr.To, err = sp.Lookup(s.str("to")); err != nil {
		s.d.fail("'%s:' %v", s.key("to"), err)
	}
	if tr.Covariate, err = transition.ParseVariable(s.strOr("covariate", "age")); err != nil {
		s.d.fail("'%s:' %v", s.key("covariate"), err)
	}
	cs := s.sub("curve", true)
	tr.Type = strings.ToLower(cs.str("type"))
	tr.Curve = curve(cs, tr.Type)
	return tr
}

func curve(s section, typ string) transition.Curve {
	var c transition.Curve
	switch typ {
	case "constant":
		c = transition.Constant{P: s.number("p")}
	case "fracpoly":
		f := transition.FracPoly{Intercept: s.number("intercept"), Scale: s.numberOr("scale", 1)}
		for _, t := range s.items("terms", true) {
			term := transition.Term{Coef: t.number("coef"), Power: t.number("power"), LogPower: t.integerOr("log", 0)}
			if term.LogPower < 0 {
				t.d.fail("'%s:' should not be negative", t.key("log"))
			}
			f.Terms = append(f.Terms, term)
		}
		c = f
	case "loglinear":
		c = transition.LogLinear{A: s.number("a"), B: s.number("b")}
	case "exponential":
		c = transition.Exponential{A: s.number("a"), B: s.number("b")}
	default:
		s.d.fail("'%s:' unknown curve type %q", s.key("type"), typ)
		return nil
	}
	if s.has("entry") {
		c = transition.EntryGuarded{Entry: s.number("entry"), Then: c}
	}
	return c
}

// Clone is a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Diagnosis = append([]float64(nil), c.Diagnosis...)
	out.FollowUp = append([]float64(nil), c.FollowUp...)
	out.StateUtility = append([]float64(nil), c.StateUtility...)
	out.Transitions = append([]Transition(nil), c.Transitions...)
	if c.Initial != nil {
		out.Initial = append([]int(nil), c.Initial...)
	}
	out.Sensitivity.Parameters = make(map[string]Distribution, len(c.Sensitivity.Parameters))
	for k, v := range c.Sensitivity.Parameters {
		out.Sensitivity.Parameters[k] = v
	}
	return &out
}
