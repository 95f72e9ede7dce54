package schedule

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

// StochasticResult is the stochastic scheduler's outcome: a shared mutex
// ordering plus the makespan distribution across scenarios.
type StochasticResult struct {
	Status     Status
	Makespan   float64
	Schedules  []*core.Schedule // per scenario, same order as the Instances passed to Solve
	SatisfiedK int              // number of scenarios with M_k <= Makespan
}

// StochasticScheduler solves the stochastic variant of the scheduling
// problem: N scenario replicas of the schedule constraints share one mutex
// ordering;
// the chance-constraint surrogate requires at least alpha*N scenarios to
// meet the chosen makespan.
type StochasticScheduler struct {
	Alpha   float64
	Workers int
	Timeout time.Duration
}

// NewStochasticScheduler creates a scheduler requiring a fraction alpha of
// scenarios to meet the chosen makespan, fanning scenario LPs out across up
// to workers goroutines.
func NewStochasticScheduler(alpha float64, workers int, timeout time.Duration) *StochasticScheduler {
	if workers < 1 {
		workers = 1
	}
	return &StochasticScheduler{Alpha: alpha, Workers: workers, Timeout: timeout}
}

// solveAll evaluates every scenario instance under a fixed shared mutex
// ordering, fanning the scenario LPs out across a bounded worker pool of
// goroutines.
func (s *StochasticScheduler) solveAll(instances []*Instance, taskIndices []map[core.TaskID]int, fixed map[core.TaskID]map[core.TaskID]bool) []*core.Schedule {
	base := &Scheduler{Timeout: s.Timeout}
	out := make([]*core.Schedule, len(instances))

	sem := make(chan struct{}, s.Workers)
	var wg sync.WaitGroup
	for k := range instances {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int) {
			defer wg.Done()
			defer func() { <-sem }()
			sched, ok := base.relaxation(instances[k], taskIndices[k], fixed)
			if ok {
				out[k] = sched
			}
		}(k)
	}
	wg.Wait()
	return out
}

// Solve enumerates every ordering of the mutex pairs common to every
// scenario (scenarios are assumed to share the same task set and therefore
// the same mutex pairs, differing only in their transition durations) and
// keeps the ordering with the lowest chosen makespan. No bound prunes the
// enumeration; only the timeout cuts it short once a result exists.
func (s *StochasticScheduler) Solve(instances []*Instance) StochasticResult {
	if len(instances) == 0 {
		return StochasticResult{Status: StatusInfeasible}
	}
	for _, inst := range instances {
		for _, t := range inst.Tasks {
			if inst.Duration[t] < 0 {
				return StochasticResult{Status: StatusInfeasible}
			}
		}
	}

	taskIndices := make([]map[core.TaskID]int, len(instances))
	for k, inst := range instances {
		idx := make(map[core.TaskID]int, len(inst.Tasks))
		for i, t := range inst.Tasks {
			idx[t] = i
		}
		taskIndices[k] = idx
	}

	pairs := instances[0].MutexPairs
	required := int(math.Ceil(s.Alpha * float64(len(instances))))

	deadline := time.Now().Add(s.Timeout)
	unbounded := s.Timeout < 0

	var best *StochasticResult
	var search func(remaining [][2]core.TaskID, fixed map[core.TaskID]map[core.TaskID]bool)
	search = func(remaining [][2]core.TaskID, fixed map[core.TaskID]map[core.TaskID]bool) {
		if best != nil && !unbounded && !time.Now().Before(deadline) {
			return
		}
		if len(remaining) > 0 {
			next, rest := remaining[0], remaining[1:]
			search(rest, setFixed(fixed, next[0], next[1], true))
			search(rest, setFixed(fixed, next[0], next[1], false))
			return
		}

		schedules := s.solveAll(instances, taskIndices, fixed)
		var makespans []float64
		for _, sched := range schedules {
			if sched != nil {
				makespans = append(makespans, sched.Makespan)
			}
		}
		if len(makespans) < required {
			return
		}
		sort.Float64s(makespans)
		chosen := makespans[required-1]
		satisfied := 0
		for _, m := range makespans {
			if m <= chosen {
				satisfied++
			}
		}
		if best == nil || chosen < best.Makespan {
			best = &StochasticResult{Status: StatusFeasible, Makespan: chosen, Schedules: schedules, SatisfiedK: satisfied}
		}
	}

	search(pairs, map[core.TaskID]map[core.TaskID]bool{})
	if best == nil {
		return StochasticResult{Status: StatusInfeasible}
	}
	return *best
}
