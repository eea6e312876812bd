// starter project main.go
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
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/logger"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/params"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/sensitivity"
)

var version string = "0.3.1"

var modelParam *string
var variant *string
var numberSpawned *int // Number of replicates, 0 for the parameter file's count
var workers *int
var traceCycle *int
var logDir *string
var outputFile *string

// Parse the arg list looking for the input hjson file
func parseArgs() {

	modelParam = flag.String("param", "", "The bcScreen parameter file (default: built in parameters for -variant)")
	variant = flag.String("variant", markov.VariantRefined, "'simple' or 'refined' built in parameters")
	logger.OutputMode = flag.String("outputMode", logger.Verbose, "'verbose'(default), 'table' or 'web'")
	numberSpawned = flag.Int("nSamples", 0, "Number of replicates (default: sensitivity.samples of the parameters)")
	logger.Seed = flag.Uint64("seed", 1234, "Master random number generator seed")
	workers = flag.Int("workers", runtime.NumCPU(), "Replicates run at once")
	traceCycle = flag.Int("traceCycle", -1, "Cycle whose state fractions are tabled (default: from parameters)")
	logDir = flag.String("logDir", ".", "Directory for the log file")
	outputFile = flag.String("outputFile", "", "Optional hjson file of the results table")
	isVersion := flag.Bool("version", false, "prints the version number of starter")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	switch *logger.OutputMode {
	case logger.Verbose, logger.Table, logger.Web:
	default:
		logger.LogWriterFatal("unknown outputMode " + *logger.OutputMode)
	}
}

// Read the arguments and set up the driver
func initialize() *sensitivity.Driver {

	parseArgs()

	if err := logger.Init("starter", *logDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cfg *params.Config
	var err error
	if *modelParam == "" {
		cfg, err = params.Default(*variant)
	} else {
		cfg, err = params.Load(*modelParam)
	}
	if err != nil {
		if *logger.OutputMode == logger.Verbose {
			fmt.Println("Failed to load parameters")
		}
		logger.LogWriterFatal(err.Error())
	}

	d := sensitivity.NewDriver(cfg, *logger.Seed)
	d.Workers = *workers
	d.Logger = logger.Slog()
	if *numberSpawned > 0 {
		d.Samples = *numberSpawned
	}
	if *traceCycle >= 0 {
		d.TraceCycle = *traceCycle
	}
	if *logger.OutputMode == logger.Web && *outputFile == "" {
		logger.LogWriterFatal("outputMode web needs -outputFile")
	}
	if d.Samples <= 0 {
		logger.LogWriterFatal("no replicates requested: set -nSamples or sensitivity.samples")
	}
	return d
}

// Write the summary table to the screen
func publish(d *sensitivity.Driver, table *sensitivity.Table, elapsed time.Duration) {

	fmt.Println("\t ______________________________________________________________________")
	fmt.Println("\t| Metric                 |     Mean     |    StdDev    | StdDev(Mean) |")
	fmt.Println("\t|________________________|______________|______________|______________|")
	for _, s := range table.Summaries() {
		fmt.Printf("\t| %-22.22s | %12.4f | %12.4f | %12.4f |\n", s.Name, s.Mean, s.SD, s.SDMean)
	}
	fmt.Println("\t|______________________________________________________________________|")
	fmt.Printf("\t *Number of replicates: %d, cohort of %d over %d cycles\n", table.Rows(), d.Config.Population, d.Config.Cycles)
	fmt.Printf("\t *trace.<State> columns are state fractions at cycle %d\n", d.TraceCycle)
	fmt.Printf("\n\tTotal time: %v, time per replicate: %.3fs using %d workers\n\n",
		elapsed, elapsed.Seconds()/float64(table.Rows()), d.Workers)
}

func main() {

	d := initialize()
	defer logger.Close()

	if *logger.OutputMode == logger.Verbose {
		fmt.Println("Replicates:", d.Samples, "Model:", d.Config.Space.Name(), "Seed:", d.Seed)
	}

	start := time.Now()
	table, err := d.Run(context.Background())
	if err != nil {
		logger.LogWriterFatal(err.Error())
	}
	elapsed := time.Since(start)

	switch *logger.OutputMode {
	case logger.Verbose:
		publish(d, table, elapsed)
	case logger.Table:
		if err := table.WriteCSV(os.Stdout); err != nil {
			logger.LogWriterFatal(err.Error())
		}
	}

	if *outputFile != "" {
		b, err := table.Hjson()
		if err != nil {
			logger.LogWriterFatal(err.Error())
		}
		if err := os.WriteFile(*outputFile, b, 0644); err != nil {
			logger.LogWriterFatal("Cannot write outputFile " + *outputFile)
		}
	}
}
