// SPDX-License-Identifier: MIT

package lk

import (
	"time"

	"github.com/katalvlaran/linkern/tour"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunReport summarizes one run.
type RunReport struct {
	Run          int           // run index, 0-based
	Seed         uint64        // seed of the run's RNG stream
	InitialCost  float64       // cost of the initial tour
	Cost         float64       // cost of the final tour
	Passes       int           // passes performed
	Commits      int           // committed moves, kicks excluded
	Feasible     int           // closing tests that passed
	Infeasible   int           // closing tests that failed
	Inconsistent int           // moves dropped with ErrGainInconsistency
	Kicks        int           // improving double-bridge kicks applied
	Converged    bool          // false when stopped by MaxPasses, TimeLimit or ctx
	Duration     time.Duration // wall time of the run
}

// Result aggregates all runs of Improve.
type Result struct {
	// Tour is the best tour found (lowest cost, lowest run index on ties).
	Tour *tour.Tour

	// Best is Tour.Cost().
	Best float64

	// Mean and StdDev are taken over the final costs of all runs; StdDev is 0
	// for a single run.
	Mean   float64
	StdDev float64

	// BestRun is the index of the run that produced Tour.
	BestRun int

	// Runs holds one report per run, indexed by run.
	Runs []RunReport
}

// aggregate picks the best run and computes cost statistics.
// tours and reports are indexed by run; both are non-empty.
func aggregate(tours []*tour.Tour, reports []RunReport) *Result {
	costs := make([]float64, len(reports))
	for i := range reports {
		costs[i] = reports[i].Cost
	}

	best := floats.MinIdx(costs)
	res := &Result{
		Tour:    tours[best],
		Best:    costs[best],
		Mean:    stat.Mean(costs, nil),
		BestRun: best,
		Runs:    reports,
	}
	if len(costs) > 1 {
		res.StdDev = stat.StdDev(costs, nil)
	}

	return res
}
