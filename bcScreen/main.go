// bcScreen project main.go
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
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/cohort"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/logger"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/matrix"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var version = "0.3.1"

// Print the per cycle state occupancy with mean undiscounted cost and QALY
func printTables(res *cohort.Result) {
	if *logger.OutputMode != logger.Verbose {
		return
	}
	sp := res.Space
	n := float64(res.Population)

	fmt.Printf("Cycle   Age  ")
	for _, name := range sp.Names() {
		fmt.Printf("%9.9s ", name)
	}
	fmt.Printf("%10s %8s\n", "Cost", "QALY")
	for t := 0; t <= res.Cycles(); t++ {
		fmt.Printf("%5d %5.1f  ", res.FirstCycle+t, cfg.StartAge+float64(res.FirstCycle+t)*cfg.CycleLength)
		for _, s := range sp.States() {
			fmt.Printf("%8.2f%% ", res.StateFraction(res.FirstCycle+t, s)*100.)
		}
		fmt.Printf("%10.2f %8.4f\n",
			floats.Sum(mat.Col(nil, t, res.Costs))/n,
			floats.Sum(mat.Col(nil, t, res.Utilities))/n)
	}
	fmt.Println()
	fmt.Printf("Discounted cost per woman (tc_hat): %12.2f   (rate %.3f)\n", res.MeanCost, cfg.CostRate)
	fmt.Printf("Discounted QALYs per woman (te_hat): %11.4f   (rate %.3f)\n", res.MeanQALY, cfg.UtilityRate)
}

// Cumulative counts of every modelled transition
func printIncidence(res *cohort.Result) {
	sp := res.Space
	fmt.Printf("\n%-20s %10s %10s\n", "Transition", "Count", "Per 1000")
	for _, tr := range cfg.Transitions {
		cum := res.Pairs.Cumulative(tr.From, tr.To)
		total := 0
		if len(cum) > 0 {
			total = cum[len(cum)-1]
		}
		fmt.Printf("%-20s %10d %10.2f\n", sp.PairName(tr.From, tr.To), total, float64(total)/float64(res.Population)*1000.)
	}
}

func main() {

	initSimulation() // Initialize everything
	defer logger.Close()

	opts, err := cfg.Options(logger.Slog())
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	opts.KeepTrace = true
	opts.KeepPairs = *showIncidence

	start := time.Now()
	res, err := cohort.Run(context.Background(), opts)
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	logger.Slog().Info("run complete", slog.Duration("elapsed", time.Since(start)))

	switch *logger.OutputMode {
	case logger.Verbose:
		printTables(res)
		fmt.Println("Total time:", time.Since(start))
	case logger.Model:
		fmt.Printf("%f,%f\n", res.MeanCost, res.MeanQALY)
	}

	if *showTrace {
		if *traceRows > 0 {
			matrix.MatPrintExcerpt(os.Stdout, res.Trace, *traceRows)
		} else {
			matrix.MatPrint(os.Stdout, res.Trace)
		}
	}
	if *showIncidence {
		printIncidence(res)
	}
}
