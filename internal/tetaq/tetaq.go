package tetaq

import (
	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
)

// Evaluator computes the combined TETAQ value h = alpha*APR + (1-alpha)*NSQ
// for an incremental allocation node. Neither term is admissible, so
// callers (internal/itags) must not assume the search never reopens a
// closed node.
type Evaluator struct {
	Problem *core.Problem
	Planner motionplan.Planner
	RobotTraits [][]float64 // robotIdx -> trait row, aligned with alloc.RobotIDs order
	Requirements [][]float64 // taskIdx -> requirement row, aligned with alloc.TaskIDs order
}

// NewEvaluator builds an Evaluator from a problem, deriving RobotTraits and
// Requirements in the robot/task id order the allocation matrices use.
func NewEvaluator(problem *core.Problem, planner motionplan.Planner, robotIDs []core.RobotID, taskIDs []core.TaskID) *Evaluator {
	traits := make([][]float64, len(robotIDs))
	for i, id := range robotIDs {
		if r := problem.RobotByID(id); r != nil {
			traits[i] = r.Traits
		}
	}
	reqs := make([][]float64, len(taskIDs))
	for i, id := range taskIDs {
		if t := problem.TaskByID(id); t != nil {
			reqs[i] = t.Requirements
		}
	}
	return &Evaluator{Problem: problem, Planner: planner, RobotTraits: traits, Requirements: reqs}
}

// APR computes the coverage term for alloc.
func (e *Evaluator) APR(alloc *core.Allocation) float64 {
	allocated := AllocatedTraits(alloc, e.RobotTraits, e.Problem.Reduction)
	return APR(e.Requirements, allocated)
}

// Evaluate computes h, APR, and NSQ together.
func (e *Evaluator) Evaluate(alloc *core.Allocation) (h, apr, nsq float64) {
	apr = e.APR(alloc)
	nsq = NSQ(e.Problem, alloc, e.Planner, e.Problem.ScheduleWorstMakespan)
	alpha := e.Problem.Alpha
	h = alpha*apr + (1-alpha)*nsq
	return h, apr, nsq
}
