package ioformat

import (
	"strconv"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/elektrokombinacija/itags-het/internal/schedule"
)

// MotionPlanDoc is one assigned robot-task pair's path.
type MotionPlanDoc struct {
	Robot  int                `json:"robot"`
	Task   int                `json:"task"`
	Status string             `json:"status"`
	Path   []ConfigurationDoc `json:"path,omitempty"`
	Length float64            `json:"length,omitempty"`
}

// OutputDoc is the solver output format: on success, the allocation
// matrix, schedule, and motion plans; on any non-success result, just a
// status and an optional reason.
type OutputDoc struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`

	TaskIDs    []int       `json:"task_ids,omitempty"`
	RobotIDs   []int       `json:"robot_ids,omitempty"`
	Allocation [][]float64 `json:"allocation_matrix,omitempty"`

	Start    map[string]float64 `json:"start,omitempty"`
	Finish   map[string]float64 `json:"finish,omitempty"`
	Makespan float64            `json:"makespan,omitempty"`

	MotionPlans []MotionPlanDoc `json:"motion_plans,omitempty"`

	// ScenarioSchedules and SatisfiedScenarios are only populated when the
	// problem named scenarios and the stochastic scheduler ran in place of
	// the plain one.
	ScenarioSchedules  []ScenarioScheduleDoc `json:"scenario_schedules,omitempty"`
	SatisfiedScenarios int                   `json:"satisfied_scenarios,omitempty"`
}

// ScenarioScheduleDoc is one scenario's schedule under the stochastic
// scheduler's shared mutex ordering.
type ScenarioScheduleDoc struct {
	Start    map[string]float64 `json:"start"`
	Finish   map[string]float64 `json:"finish"`
	Makespan float64            `json:"makespan"`
}

// AllocationToDoc flattens a core.Allocation's id axes and matrix.
func AllocationToDoc(alloc *core.Allocation) ([]int, []int, [][]float64) {
	taskIDs := make([]int, len(alloc.TaskIDs))
	for i, id := range alloc.TaskIDs {
		taskIDs[i] = int(id)
	}
	robotIDs := make([]int, len(alloc.RobotIDs))
	for i, id := range alloc.RobotIDs {
		robotIDs[i] = int(id)
	}
	return taskIDs, robotIDs, alloc.M
}

// ScheduleToDoc converts a core.Schedule's per-task maps to string-keyed
// JSON maps (JSON object keys must be strings).
func ScheduleToDoc(sched *core.Schedule) (map[string]float64, map[string]float64) {
	start := make(map[string]float64, len(sched.Start))
	finish := make(map[string]float64, len(sched.Finish))
	for id, v := range sched.Start {
		start[strconv.Itoa(int(id))] = v
	}
	for id, v := range sched.Finish {
		finish[strconv.Itoa(int(id))] = v
	}
	return start, finish
}

// StochasticResultToDoc flattens a StochasticScheduler.Solve result into the
// per-scenario schedule list and satisfied-scenario count OutputDoc carries.
func StochasticResultToDoc(res schedule.StochasticResult) ([]ScenarioScheduleDoc, int) {
	docs := make([]ScenarioScheduleDoc, 0, len(res.Schedules))
	for _, sched := range res.Schedules {
		if sched == nil {
			continue
		}
		start, finish := ScheduleToDoc(sched)
		docs = append(docs, ScenarioScheduleDoc{Start: start, Finish: finish, Makespan: sched.Makespan})
	}
	return docs, res.SatisfiedK
}

// MotionPlanToDoc converts a planner Result to its wire form.
func MotionPlanToDoc(robot, task int, res motionplan.Result) MotionPlanDoc {
	doc := MotionPlanDoc{Robot: robot, Task: task, Status: res.Status.String(), Length: res.Length}
	for _, c := range res.Path {
		doc.Path = append(doc.Path, ConfigurationToDoc(c))
	}
	return doc
}
