package schedule

import (
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Status is the scheduler's outcome.
type Status int

const (
	StatusFeasible Status = iota
	StatusInfeasible
)

// Result is Solve's return value.
type Result struct {
	Status   Status
	Schedule *core.Schedule
}

// Scheduler solves Instances via branch-and-bound over mutex binaries,
// wrapping gonum's mat/lp packages for the continuous relaxation at each
// node.
type Scheduler struct {
	Timeout time.Duration
	Logger  hclog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(timeout time.Duration, logger hclog.Logger) *Scheduler {
	return &Scheduler{Timeout: timeout, Logger: logger}
}

type row struct {
	coeffs map[int]float64
	rhs    float64
}

// relaxation builds and solves the LP for inst with the mutex pairs in
// fixed resolved to their branch direction (true = p_ij=1) and every other
// mutex pair left unconstrained (the valid relaxation lower bound).
func (s *Scheduler) relaxation(inst *Instance, taskIndex map[core.TaskID]int, fixed map[core.TaskID]map[core.TaskID]bool) (*core.Schedule, bool) {
	n := len(inst.Tasks)
	mIdx := n // makespan variable

	for _, t := range inst.Tasks {
		if inst.Duration[t] < 0 {
			return nil, false
		}
	}

	var rows []row

	for key, delta := range inst.InitialTransition {
		i := taskIndex[key.Task]
		rows = append(rows, row{coeffs: map[int]float64{i: -1}, rhs: -delta})
	}

	for pred, succs := range inst.Precedence {
		i := taskIndex[pred]
		di := inst.Duration[pred]
		for _, succ := range succs {
			j := taskIndex[succ]
			rows = append(rows, row{coeffs: map[int]float64{i: 1, j: -1}, rhs: -di})
		}
	}

	for _, t := range inst.Tasks {
		i := taskIndex[t]
		rows = append(rows, row{coeffs: map[int]float64{i: 1, mIdx: -1}, rhs: -inst.Duration[t]})
	}

	for _, pair := range inst.MutexPairs {
		ti, tj := pair[0], pair[1]
		dir, ok := fixedDirection(fixed, ti, tj)
		if !ok {
			continue // unfixed: omit from the relaxation
		}
		i, j := taskIndex[ti], taskIndex[tj]
		if dir {
			tau := inst.Transition[pairKey{I: ti, J: tj}]
			rows = append(rows, row{coeffs: map[int]float64{i: 1, j: -1}, rhs: -(inst.Duration[ti] + tau)})
		} else {
			tau := inst.Transition[pairKey{I: tj, J: ti}]
			rows = append(rows, row{coeffs: map[int]float64{j: 1, i: -1}, rhs: -(inst.Duration[tj] + tau)})
		}
	}

	nVars := n + 1
	A := mat.NewDense(len(rows), nVars+len(rows), nil)
	b := make([]float64, len(rows))
	c := make([]float64, nVars+len(rows))
	c[mIdx] = 1

	for ri, r := range rows {
		for col, v := range r.coeffs {
			A.Set(ri, col, v)
		}
		A.Set(ri, nVars+ri, 1) // slack
		b[ri] = r.rhs
	}

	_, x, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		return nil, false
	}

	sched := core.NewSchedule()
	for _, t := range inst.Tasks {
		start := x[taskIndex[t]]
		sched.Start[t] = start
		sched.Finish[t] = start + inst.Duration[t]
	}
	sched.ComputeMakespan()
	return sched, true
}

func fixedDirection(fixed map[core.TaskID]map[core.TaskID]bool, i, j core.TaskID) (bool, bool) {
	if m, ok := fixed[i]; ok {
		if dir, ok := m[j]; ok {
			return dir, true
		}
	}
	return false, false
}

func setFixed(fixed map[core.TaskID]map[core.TaskID]bool, i, j core.TaskID, dir bool) map[core.TaskID]map[core.TaskID]bool {
	out := make(map[core.TaskID]map[core.TaskID]bool, len(fixed)+1)
	for k, v := range fixed {
		inner := make(map[core.TaskID]bool, len(v))
		for kk, vv := range v {
			inner[kk] = vv
		}
		out[k] = inner
	}
	if out[i] == nil {
		out[i] = make(map[core.TaskID]bool)
	}
	out[i][j] = dir
	return out
}

// Solve runs branch-and-bound search over inst.MutexPairs, minimizing
// makespan. A deterministic-infeasible instance (any Duration<0)
// fails before any LP is built.
func (s *Scheduler) Solve(inst *Instance) Result {
	taskIndex := make(map[core.TaskID]int, len(inst.Tasks))
	for i, t := range inst.Tasks {
		taskIndex[t] = i
	}
	for _, t := range inst.Tasks {
		if inst.Duration[t] < 0 {
			return Result{Status: StatusInfeasible}
		}
	}

	deadline := time.Now().Add(s.Timeout)
	unbounded := s.Timeout < 0

	var best *core.Schedule
	var search func(pairs [][2]core.TaskID, fixed map[core.TaskID]map[core.TaskID]bool)
	search = func(pairs [][2]core.TaskID, fixed map[core.TaskID]map[core.TaskID]bool) {
		if best != nil && !unbounded && !time.Now().Before(deadline) {
			return
		}
		sched, ok := s.relaxation(inst, taskIndex, fixed)
		if !ok {
			return
		}
		if best != nil && sched.Makespan >= best.Makespan {
			return // bound: this branch cannot improve the incumbent
		}
		if len(pairs) == 0 {
			best = sched
			return
		}
		next, rest := pairs[0], pairs[1:]
		search(rest, setFixed(fixed, next[0], next[1], true))
		search(rest, setFixed(fixed, next[0], next[1], false))
	}

	search(inst.MutexPairs, map[core.TaskID]map[core.TaskID]bool{})
	if best == nil {
		return Result{Status: StatusInfeasible}
	}
	return Result{Status: StatusFeasible, Schedule: best}
}
