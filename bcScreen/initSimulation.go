// bcScreen project initSimulation.go
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
	"flag"
	"fmt"
	"os"

	"github.com/AshDF91/Risk-based-screening-EconAnalysis/logger"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/markov"
	"github.com/AshDF91/Risk-based-screening-EconAnalysis/params"
)

var paramFile *string // Name of the parameter file, empty for the built in variant
var variant *string
var population *int
var cycles *int
var workers *int
var logDir *string
var showTrace *bool
var traceRows *int
var showIncidence *bool

var cfg *params.Config

// Initialize the simulation
func initSimulation() {

	parseArgs()

	loadParam()

	// a seed flag of 0 keeps the parameter file's seed
	if *logger.Seed == 0 {
		*logger.Seed = cfg.Seed
	}
	if err := logger.Init("bcScreen", *logDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Command line overrides
	cfg = cfg.Clone()
	cfg.Seed = *logger.Seed
	if *population > 0 {
		cfg.Population = *population
		cfg.Initial = nil
	}
	if *cycles > 0 {
		cfg.Cycles = *cycles
		if cfg.Sensitivity.TraceCycle > cfg.Cycles {
			cfg.Sensitivity.TraceCycle = cfg.Cycles
		}
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.LogWriterFatal(err.Error())
	}

	if *logger.OutputMode == logger.Verbose {
		if cfg.Comment != "" {
			fmt.Printf("Comment: %v\n\n", cfg.Comment)
		}
		fmt.Printf("Model: %s, %d states\n", cfg.Space.Name(), cfg.Space.Len())
		for _, s := range cfg.Space.States() {
			info := cfg.Space.Info(s)
			fmt.Printf("\t%-10s %v\n", info.Name, info.Kind)
		}
		fmt.Printf("\nTransitions:\n")
		for _, tr := range cfg.Transitions {
			fmt.Printf("\t%-20s %-12s on %v\n", cfg.Space.PairName(tr.From, tr.To), tr.Type, tr.Covariate)
		}
		fmt.Println()
	}
}

// Parse the arg list looking for the input hjson file
func parseArgs() {

	paramFile = flag.String("param", "", "The bcScreen hjson parameter file (default: built in parameters for -variant)")
	variant = flag.String("variant", markov.VariantRefined, "'simple' or 'refined' built in parameters")
	logger.OutputMode = flag.String("outputMode", logger.Verbose, "'verbose', 'quiet' or 'model'")
	logger.Seed = flag.Uint64("seed", 0, "Random number generator seed (default: the parameter file's seed)")
	population = flag.Int("population", 0, "Number of women in the cohort (default: from parameters)")
	cycles = flag.Int("cycles", 0, "Number of cycles to simulate (default: from parameters)")
	workers = flag.Int("workers", -1, "Goroutines per cycle, 0 for one per CPU (default: from parameters)")
	logDir = flag.String("logDir", ".", "Directory for the log file")
	showTrace = flag.Bool("trace", false, "Print the full state trace matrix")
	traceRows = flag.Int("traceRows", 0, "With -trace, print only the first and last n cycles (0 prints all)")
	showIncidence = flag.Bool("incidence", false, "Print the cumulative transition counts")
	isVersion := flag.Bool("version", false, "prints the version number of bcScreen")

	flag.Parse()

	if *isVersion {
		fmt.Println("Version:", version)
		os.Exit(0)
	}

	switch *logger.OutputMode {
	case logger.Verbose, logger.Quiet, logger.Model:
	default:
		logger.LogWriterFatal("unknown outputMode " + *logger.OutputMode)
	}
}

// Read the parameter hjson file, or the built in one
func loadParam() {
	var err error
	if *paramFile == "" {
		cfg, err = params.Default(*variant)
	} else {
		cfg, err = params.Load(*paramFile)
	}
	if err != nil {
		if *logger.OutputMode == logger.Verbose {
			fmt.Println("Failed to load parameters")
		}
		logger.LogWriterFatal(err.Error())
	}
	if *paramFile != "" && cfg.Space.Name() != *variant && isFlagSet("variant") {
		logger.LogWriterFatal(fmt.Sprintf("%s is a %s model, not %s", *paramFile, cfg.Space.Name(), *variant))
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
