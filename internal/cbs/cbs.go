package cbs

import (
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/elektrokombinacija/itags-het/internal/pqueue"
	"github.com/hashicorp/go-hclog"
)

// CostMetric selects how a constraint-tree node's cost is computed: either
// the makespan or the sum of individual path costs.
type CostMetric int

const (
	CostMakespan CostMetric = iota
	CostSumOfCosts
)

// Agent is one robot's MAPF query: start and goal cell.
type Agent struct {
	Robot      core.RobotID
	Start, Goal core.GridCell
}

// Solution is a feasible joint plan: one path per agent.
type Solution struct {
	Paths map[core.RobotID][]core.GridCell
	Cost  float64
}

// Status is the outcome of Solve.
type Status int

const (
	StatusSolved Status = iota
	StatusInfeasible
	StatusTimeout
)

// Result is Solve's return value.
type Result struct {
	Status   Status
	Solution *Solution
}

// Solver runs Conflict-Based Search over a shared grid: a high-level
// constraint tree plus a single-agent low-level search, built on the
// generic search kernel and the mutable priority queue instead of bespoke
// container/heap types.
type Solver struct {
	Grid       *motionplan.GridMap
	MaxTime    int
	Timeout    time.Duration
	Metric     CostMetric
	Logger     hclog.Logger
}

// NewSolver creates a CBS solver over grid.
func NewSolver(grid *motionplan.GridMap, maxTime int, timeout time.Duration, logger hclog.Logger) *Solver {
	return &Solver{Grid: grid, MaxTime: maxTime, Timeout: timeout, Metric: CostMakespan, Logger: logger}
}

type ctNode struct {
	constraints []Constraint
	paths       map[core.RobotID][]core.GridCell
	cost        float64
}

func (s *Solver) cost(paths map[core.RobotID][]core.GridCell) float64 {
	switch s.Metric {
	case CostSumOfCosts:
		sum := 0.0
		for _, p := range paths {
			sum += float64(len(p) - 1)
		}
		return sum
	default:
		max := 0.0
		for _, p := range paths {
			if l := float64(len(p) - 1); l > max {
				max = l
			}
		}
		return max
	}
}

// replan reruns the low-level search for exactly one robot, inheriting all
// other agents' paths from parent by reference.
func (s *Solver) replan(agents []Agent, parent *ctNode, robot core.RobotID, extra Constraint) *ctNode {
	constraints := append(append([]Constraint(nil), parent.constraints...), extra)
	paths := make(map[core.RobotID][]core.GridCell, len(parent.paths))
	for k, v := range parent.paths {
		paths[k] = v
	}

	var agent Agent
	for _, a := range agents {
		if a.Robot == robot {
			agent = a
			break
		}
	}

	path := lowLevelAStar(s.Grid, robot, agent.Start, agent.Goal, constraints, s.MaxTime, s.Timeout, s.Logger)
	if path == nil {
		return nil
	}
	paths[robot] = path
	return &ctNode{constraints: constraints, paths: paths, cost: s.cost(paths)}
}

// Solve runs the CBS high-level loop.
func (s *Solver) Solve(agents []Agent) Result {
	root := &ctNode{paths: make(map[core.RobotID][]core.GridCell)}
	for _, a := range agents {
		path := lowLevelAStar(s.Grid, a.Robot, a.Start, a.Goal, nil, s.MaxTime, s.Timeout, s.Logger)
		if path == nil {
			return Result{Status: StatusInfeasible}
		}
		root.paths[a.Robot] = path
	}
	root.cost = s.cost(root.paths)

	open := pqueue.New[int, *ctNode]()
	nextKey := 0
	open.Push(nextKey, root, root.cost)
	nextKey++

	deadline := time.Now().Add(s.Timeout)
	unbounded := s.Timeout < 0

	for !open.Empty() {
		if !unbounded && !time.Now().Before(deadline) {
			return Result{Status: StatusTimeout}
		}
		_, node, ok := open.Pop()
		if !ok {
			break
		}

		conflict := firstConflict(node.paths)
		if conflict == nil {
			return Result{Status: StatusSolved, Solution: &Solution{Paths: node.paths, Cost: node.cost}}
		}

		ca, cb := conflictConstraints(conflict)
		for _, branch := range []struct {
			robot core.RobotID
			cons  Constraint
		}{{conflict.RobotA, ca}, {conflict.RobotB, cb}} {
			if child := s.replan(agents, node, branch.robot, branch.cons); child != nil {
				open.Push(nextKey, child, child.cost)
				nextKey++
			}
		}
	}
	return Result{Status: StatusInfeasible}
}
