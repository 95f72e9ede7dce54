package tetaq

import (
	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/elektrokombinacija/itags-het/internal/schedule"
)

// NSQ computes Normalized Schedule Quality for a partial allocation: run the
// scheduler, return 1 on failure, otherwise makespan / worstCaseMakespan.
func NSQ(problem *core.Problem, alloc *core.Allocation, planner motionplan.Planner, worstCaseMakespan float64) float64 {
	if worstCaseMakespan <= 0 {
		return 1
	}
	builder := schedule.NewBuilder(planner, problem.Species)
	inst := builder.Build(problem, alloc)
	result := schedule.NewScheduler(problem.Timeout, nil).Solve(inst)
	if result.Status != schedule.StatusFeasible {
		return 1
	}
	return result.Schedule.Makespan / worstCaseMakespan
}
