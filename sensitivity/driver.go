// sensitivity project driver.go
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
package sensitivity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/cohort"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/params"

	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/exp/rand"
)

// Driver runs a probabilistic sensitivity analysis: Samples independent
// cohort runs, each with its own seed and its own draw of the varied
// parameters.
type Driver struct {
	Config     *params.Config
	Samples    int
	Seed       uint64 // master seed for run and parameter seeds
	TraceCycle int    // cycle whose state fractions go into the table
	Workers    int    // concurrent replicates, 0 for one per CPU
	Logger     *slog.Logger
}

// Replicate is the plan for one run.
type Replicate struct {
	Seed      uint64    // cohort run seed
	ParamSeed uint64    // stream for the parameter draws
	Params    []float64 // drawn values, in Config.Sensitivity.Names order
}

// NewDriver takes the sample count and trace cycle from the parameters.
func NewDriver(cfg *params.Config, seed uint64) *Driver {
	return &Driver{
		Config:     cfg,
		Samples:    cfg.Sensitivity.Samples,
		Seed:       seed,
		TraceCycle: cfg.Sensitivity.TraceCycle,
	}
}

// Plan draws the seeds and parameters of every replicate from the master
// stream. It does not run anything.
func (d *Driver) Plan() ([]Replicate, error) {
	if d.Config == nil {
		return nil, fmt.Errorf("%w: no parameters", markov.ErrConfiguration)
	}
	if d.Samples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", markov.ErrConfiguration, d.Samples)
	}
	if d.TraceCycle < 0 || d.TraceCycle > d.Config.Cycles {
		return nil, fmt.Errorf("%w: trace cycle %d outside 0..%d", markov.ErrConfiguration, d.TraceCycle, d.Config.Cycles)
	}

	names := d.Config.Sensitivity.Names()
	base := make([]float64, len(names))
	for k, name := range names {
		v, err := d.Config.Value(name)
		if err != nil {
			return nil, err
		}
		base[k] = v
	}

	// seeds are kept below 2^53 so they survive the float64 table
	master := rand.New(rand.NewSource(d.Seed))
	plan := make([]Replicate, d.Samples)
	for i := range plan {
		plan[i].Seed = master.Uint64() >> 11
		plan[i].ParamSeed = master.Uint64()
	}

	for i := range plan {
		src := &rand.PCGSource{}
		src.Seed(plan[i].ParamSeed)
		plan[i].Params = make([]float64, len(names))
		for k, name := range names {
			v, err := Draw(d.Config.Sensitivity.Parameters[name], base[k], src)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			plan[i].Params[k] = v
		}
	}
	return plan, nil
}

// Run executes the plan concurrently. The first failing replicate cancels
// the rest and its error is returned with no table.
func (d *Driver) Run(ctx context.Context) (*Table, error) {
	plan, err := d.Plan()
	if err != nil {
		return nil, err
	}
	log := d.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	log.Info("sensitivity analysis starting",
		slog.Int("samples", len(plan)),
		slog.Uint64("seed", d.Seed),
		slog.Int("workers", workers),
	)

	table := newTable(d.Config.Space, d.Config.Sensitivity.Names(), len(plan))

	var mu sync.Mutex
	var first error
	swg := sizedwaitgroup.New(workers)
	for i := range plan {
		if ctx.Err() != nil {
			break
		}
		swg.Add()
		go func(i int) {
			defer swg.Done()
			row, err := d.replicate(ctx, plan[i])
			if err != nil {
				mu.Lock()
				if first == nil {
					first = fmt.Errorf("replicate %d (seed %d): %w", i, plan[i].Seed, err)
					cancel()
				}
				mu.Unlock()
				return
			}
			table.setRow(i, row)
		}(i)
	}
	swg.Wait()

	if first != nil {
		log.Error("sensitivity analysis failed", slog.Any("err", first))
		return nil, first
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("sensitivity analysis finished",
		slog.Int("samples", len(plan)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return table, nil
}

// replicate runs one cohort and returns its table row.
func (d *Driver) replicate(ctx context.Context, r Replicate) ([]float64, error) {
	cfg := d.Config
	for k, name := range cfg.Sensitivity.Names() {
		var err error
		if cfg, err = cfg.With(name, r.Params[k]); err != nil {
			return nil, err
		}
	}
	opts, err := cfg.Options(nil)
	if err != nil {
		return nil, err
	}
	opts.Seed = r.Seed
	opts.Workers = 1
	opts.KeepTrace = true

	res, err := cohort.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	row := make([]float64, 0, 3+cfg.Space.Len()+len(r.Params))
	row = append(row, float64(r.Seed), res.MeanCost, res.MeanQALY)
	for _, s := range cfg.Space.States() {
		row = append(row, res.StateFraction(d.TraceCycle, s))
	}
	return append(row, r.Params...), nil
}
