// SPDX-License-Identifier: MIT
// Package lk - improvement loop and multi-run driver.
//
// Design:
//   - A pass is a FIFO of start nodes seeded with the tour's visiting order
//     (shuffled when Options.ShuffleVisits is set). A start node with no
//     improving move gets its don't-look bit; a commit clears the bits of the
//     endpoints of every removed edge and re-queues them.
//   - A run repeats passes until one commits nothing. Then up to KickTrials
//     double bridges are tried; an improving kick resumes the passes.
//   - Improve validates once, builds shared read-only state once, and spreads
//     runs over Workers goroutines. Results are stored by run index, so the
//     outcome is independent of scheduling.

package lk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/linkern/candidates"
	"github.com/katalvlaran/linkern/core"
	"github.com/katalvlaran/linkern/tour"
	"golang.org/x/exp/rand"
)

// checkEvery is the number of start nodes processed between cancellation checks.
const checkEvery = 64

// Solver holds the read-only state shared by all runs on one instance.
type Solver struct {
	inst *core.Instance
	cost core.CostFunc
	cand *candidates.Lists
	opts Options
	base uint64
}

// NewSolver validates opts against inst and prepares the cost function and the
// candidate lists.
func NewSolver(inst *core.Instance, opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if inst == nil || inst.Len() < 3 {
		n := 0
		if inst != nil {
			n = inst.Len()
		}
		return nil, fmt.Errorf("NewSolver: n=%d: %w", n, ErrDegenerateInstance)
	}

	cand, err := candidates.Build(inst, opts.K)
	if err != nil {
		return nil, fmt.Errorf("NewSolver: %v: %w", err, ErrConfiguration)
	}

	return &Solver{
		inst: inst,
		cost: core.NewCostFunc(inst, opts.CostCacheLimit),
		cand: cand,
		opts: opts,
		base: baseSeed(opts.Seed),
	}, nil
}

// Cost returns the solver's cost function.
func (s *Solver) Cost() core.CostFunc { return s.cost }

// RunState is the private state of one run: its RNG stream and the pass
// bookkeeping. It must not be shared between goroutines.
type RunState struct {
	Run  int
	Seed uint64

	rng      *rand.Rand
	dontLook []bool
	queued   []bool
	queue    []int
}

// NewRunState derives the RNG stream of run from the solver's base seed.
func (s *Solver) NewRunState(run int) *RunState {
	seed := deriveSeed(s.base, uint64(run))
	n := s.inst.Len()

	return &RunState{
		Run:      run,
		Seed:     seed,
		rng:      newRNG(seed),
		dontLook: make([]bool, n),
		queued:   make([]bool, n),
		queue:    make([]int, 0, 2*n),
	}
}

// InitialTour builds the starting tour of a run per Options.Init.
func (s *Solver) InitialTour(st *RunState) (*tour.Tour, error) {
	n := s.inst.Len()

	var order []int
	switch s.opts.Init {
	case InitIdentity:
		order = tour.Identity(n)
	case InitNearestNeighbor:
		order = tour.NearestNeighbor(n, s.cost, st.rng.Intn(n))
	default:
		order = tour.Random(n, st.rng)
	}

	return tour.New(order, s.cost)
}

// RunOnce improves t in place until a pass commits nothing, MaxPasses is
// reached, the time limit expires or ctx is done. t is always left a valid
// tour; Converged reports whether the run reached a local optimum.
func (s *Solver) RunOnce(ctx context.Context, t *tour.Tour, st *RunState) RunReport {
	start := time.Now()
	rep := RunReport{Run: st.Run, Seed: st.Seed, InitialCost: t.Cost()}

	var deadline time.Time
	if s.opts.TimeLimit > 0 {
		deadline = start.Add(s.opts.TimeLimit)
	}
	stopped := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	eng := newEngine(t, s.cand, &s.opts)
	for {
		if s.opts.MaxPasses > 0 && rep.Passes >= s.opts.MaxPasses {
			break
		}
		if stopped() {
			break
		}

		commits, interrupted := s.pass(eng, st, stopped)
		rep.Passes++
		rep.Commits += commits
		if interrupted {
			break
		}
		if commits > 0 {
			continue
		}
		if kick(t, st.rng, s.opts.KickTrials, s.opts.Eps) != nil {
			rep.Kicks++
			continue
		}
		rep.Converged = true
		break
	}

	rep.Cost = t.Recompute() // drop the drift of incremental updates
	rep.Feasible = eng.stats.feasible
	rep.Infeasible = eng.stats.infeasible
	rep.Inconsistent = eng.stats.inconsistent
	rep.Duration = time.Since(start)

	return rep
}

// pass processes every node once plus any re-queued endpoints.
func (s *Solver) pass(eng *engine, st *RunState, stopped func() bool) (commits int, interrupted bool) {
	t := eng.t
	st.queue = append(st.queue[:0], t.Sequence()...)
	if s.opts.ShuffleVisits {
		st.rng.Shuffle(len(st.queue), func(i, j int) {
			st.queue[i], st.queue[j] = st.queue[j], st.queue[i]
		})
	}
	for v := range st.dontLook {
		st.dontLook[v] = false
		st.queued[v] = true
	}

	var (
		m     *move
		t1    int
		v     int
		x     tour.Edge
		steps int
	)
	for head := 0; head < len(st.queue); head++ {
		if steps++; steps%checkEvery == 0 && stopped() {
			return commits, true
		}
		t1 = st.queue[head]
		st.queued[t1] = false
		if st.dontLook[t1] {
			continue
		}

		if m = eng.search(t1); m == nil {
			st.dontLook[t1] = true
			continue
		}
		commits++
		for _, x = range m.removed {
			for _, v = range [2]int{x.A, x.B} {
				st.dontLook[v] = false
				if !st.queued[v] {
					st.queued[v] = true
					st.queue = append(st.queue, v)
				}
			}
		}
	}

	return commits, false
}

// Improve runs opts.Runs independent Lin-Kernighan runs on inst and returns
// the best tour with per-run reports.
//
// Errors: ErrConfiguration for invalid options, ErrDegenerateInstance when inst
// has fewer than 3 nodes. Cancellation of ctx is not an error: every run stops
// early and keeps its current tour.
func Improve(ctx context.Context, inst *core.Instance, opts Options) (*Result, error) {
	s, err := NewSolver(inst, opts)
	if err != nil {
		return nil, err
	}

	return s.Improve(ctx)
}

// Improve performs the configured runs with this solver.
func (s *Solver) Improve(ctx context.Context) (*Result, error) {
	var (
		runs    = s.opts.Runs
		workers = min(s.opts.Workers, runs)
		tours   = make([]*tour.Tour, runs)
		reports = make([]RunReport, runs)
		errs    = make([]error, runs)
		log     = s.opts.logger()
		wg      sync.WaitGroup
	)

	perWorker := (runs + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * perWorker
		hi := min(lo+perWorker, runs)
		if lo >= runs {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for run := lo; run < hi; run++ {
				st := s.NewRunState(run)
				t, err := s.InitialTour(st)
				if err != nil {
					errs[run] = err
					continue
				}
				rep := s.RunOnce(ctx, t, st)
				tours[run], reports[run] = t, rep

				log.Debug("lk: run done",
					"run", rep.Run,
					"cost", rep.Cost,
					"initial", rep.InitialCost,
					"passes", rep.Passes,
					"commits", rep.Commits,
					"kicks", rep.Kicks,
					"converged", rep.Converged,
					"duration", rep.Duration,
				)
				if s.opts.OnRunDone != nil {
					s.opts.OnRunDone(rep)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	for run, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run, err)
		}
	}

	res := aggregate(tours, reports)
	log.Info("lk: improve done",
		"runs", runs,
		"best", res.Best,
		"mean", res.Mean,
		"best_run", res.BestRun,
	)

	return res, nil
}
