// Command itags is the CLI entry point for the ITAGS/DITAGS allocation
// search, the MILP scheduler, and the standalone CBS multi-agent planner.
// It reads and writes the JSON formats of internal/ioformat using plain
// positional arguments and encoding/json, rather than reaching for a
// third-party CLI framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/cbs"
	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/ioformat"
	"github.com/elektrokombinacija/itags-het/internal/itags"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/elektrokombinacija/itags-het/internal/schedule"
	"github.com/elektrokombinacija/itags-het/internal/tetaq"
	"github.com/hashicorp/go-hclog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "repair":
		err = runRepair(os.Args[2:])
	case "mapf":
		err = runMapf(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "itags:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: itags solve <input.json> <output.json>")
	fmt.Fprintln(os.Stderr, "       itags repair <prior_state.json> <new_input.json> <output.json>")
	fmt.Fprintln(os.Stderr, "       itags mapf <input.json> <output.json>")
}

func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Name: "itags", Level: hclog.Info})
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	return dec.Decode(v)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statePath(outputPath string) string { return outputPath + ".state.json" }

// runSolve implements `itags solve <input.json> <output.json>`.
func runSolve(args []string) error {
	if len(args) != 2 {
		usage()
		return fmt.Errorf("solve takes exactly 2 arguments")
	}
	inputPath, outputPath := args[0], args[1]
	logger := newLogger()

	var doc ioformat.ProblemDoc
	if err := readJSON(inputPath, &doc); err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	problem, err := ioformat.ToProblem(&doc)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	planner, _, err := ioformat.BuildPlanner(&doc, problem.Timeout, logger)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	solver := buildSolver(problem, planner, logger)
	res := solver.Solve()

	if err := writeJSON(statePath(outputPath), ioformat.CheckpointToDoc(solver.Snapshot(true))); err != nil {
		logger.Warn("failed to persist search state", "error", err)
	}

	return writeSolveResult(outputPath, &doc, problem, planner, res)
}

// runRepair implements
// `itags repair <prior_state.json> <new_input.json> <output.json>`.
func runRepair(args []string) error {
	if len(args) != 3 {
		usage()
		return fmt.Errorf("repair takes exactly 3 arguments")
	}
	statePathIn, inputPath, outputPath := args[0], args[1], args[2]
	logger := newLogger()

	var stateDoc ioformat.StateDoc
	if err := readJSON(statePathIn, &stateDoc); err != nil {
		return fmt.Errorf("reading %s: %w", statePathIn, err)
	}
	checkpoint, err := ioformat.DocToCheckpoint(&stateDoc)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	var doc ioformat.ProblemDoc
	if err := readJSON(inputPath, &doc); err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if doc.Change == nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: "new_input.json has no change descriptor"})
	}

	problem, err := ioformat.ToProblem(&doc)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	planner, _, err := ioformat.BuildPlanner(&doc, problem.Timeout, logger)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	solver := buildSolver(problem, planner, logger)
	solver.Restore(checkpoint)

	change, err := toChange(doc.Change)
	if err != nil {
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "solver_error", Reason: err.Error()})
	}
	solver.Repair(change)
	res := solver.ContinueSearch()

	if err := writeJSON(statePath(outputPath), ioformat.CheckpointToDoc(solver.Snapshot(true))); err != nil {
		logger.Warn("failed to persist search state", "error", err)
	}

	return writeSolveResult(outputPath, &doc, problem, planner, res)
}

func toChange(d *ioformat.ChangeDoc) (itags.Change, error) {
	c := itags.Change{Robot: core.RobotID(d.Robot), Task: core.TaskID(d.Task)}
	switch d.Kind {
	case "robot_added":
		c.Kind = itags.ChangeRobotAdded
	case "robot_lost":
		c.Kind = itags.ChangeRobotLost
	case "trait_requirement_increased":
		c.Kind = itags.ChangeTraitRequirementIncreased
	case "trait_requirement_decreased":
		c.Kind = itags.ChangeTraitRequirementDecreased
	case "robot_trait_increased":
		c.Kind = itags.ChangeRobotTraitIncreased
	case "robot_trait_decreased":
		c.Kind = itags.ChangeRobotTraitDecreased
	case "task_duration_or_precedence":
		c.Kind = itags.ChangeTaskDurationOrPrecedence
	default:
		return c, fmt.Errorf("unknown change kind %q", d.Kind)
	}
	return c, nil
}

func robotAndTaskIDs(problem *core.Problem) ([]core.RobotID, []core.TaskID) {
	robotIDs := make([]core.RobotID, len(problem.Robots))
	for i, r := range problem.Robots {
		robotIDs[i] = r.ID
	}
	taskIDs := make([]core.TaskID, len(problem.Tasks))
	for i, t := range problem.Tasks {
		taskIDs[i] = t.ID
	}
	return robotIDs, taskIDs
}

func buildSolver(problem *core.Problem, planner motionplan.Planner, logger hclog.Logger) *itags.Solver {
	robotIDs, taskIDs := robotAndTaskIDs(problem)
	eval := tetaq.NewEvaluator(problem, planner, robotIDs, taskIDs)
	solver := itags.NewSolver(problem, eval)
	solver.Logger = logger
	return solver
}

// writeSolveResult maps an itags.Result to the solver output format,
// computing the schedule and per-assignment motion plans for a goal result.
func writeSolveResult(outputPath string, doc *ioformat.ProblemDoc, problem *core.Problem, planner motionplan.Planner, res itags.Result) error {
	switch res.Status {
	case itags.ResultGoal:
		return writeGoalResult(outputPath, doc, problem, planner, res.Node)
	case itags.ResultNoGoalTimeout:
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "timeout", Reason: "allocation search exhausted its time budget"})
	default:
		return writeJSON(outputPath, ioformat.OutputDoc{Status: "infeasible", Reason: "allocation search exhausted the open set without reaching goal"})
	}
}

func writeGoalResult(outputPath string, doc *ioformat.ProblemDoc, problem *core.Problem, planner motionplan.Planner, goal *itags.Node) error {
	logger := newLogger()
	taskIDs, robotIDs, matrix := ioformat.AllocationToDoc(goal.Alloc)
	out := ioformat.OutputDoc{Status: "solved", TaskIDs: taskIDs, RobotIDs: robotIDs, Allocation: matrix}

	species := problem.Species
	builder := schedule.NewBuilder(planner, species)

	if len(doc.Scenarios) > 0 {
		if !scheduleStochastic(&out, doc, problem, goal.Alloc, logger) {
			return writeJSON(outputPath, out)
		}
	} else {
		scheduler := schedule.NewScheduler(problem.Timeout, logger)
		schedResult := scheduler.Solve(builder.Build(problem, goal.Alloc))
		if schedResult.Status != schedule.StatusFeasible {
			out.Status = "infeasible"
			out.Reason = "no feasible schedule for the chosen allocation"
			return writeJSON(outputPath, out)
		}
		start, finish := ioformat.ScheduleToDoc(schedResult.Schedule)
		out.Start, out.Finish, out.Makespan = start, finish, schedResult.Schedule.Makespan
	}

	for _, t := range problem.Tasks {
		for _, rid := range goal.Alloc.Coalition(t.ID) {
			r := problem.RobotByID(rid)
			if r == nil {
				continue
			}
			sp := species[r.SpeciesName]
			planRes := planner.Query(sp, r.Initial, t.Terminal)
			out.MotionPlans = append(out.MotionPlans, ioformat.MotionPlanToDoc(int(rid), int(t.ID), planRes))
		}
	}

	return writeJSON(outputPath, out)
}

// scheduleStochastic builds one schedule.Instance per sampled scenario
// workspace and solves them jointly via the stochastic scheduler, reporting
// the chosen makespan and the per-scenario schedule list. Returns false if
// out was set to a non-success result (solver_error or infeasible) and the
// caller should write it as-is.
func scheduleStochastic(out *ioformat.OutputDoc, doc *ioformat.ProblemDoc, problem *core.Problem, alloc *core.Allocation, logger hclog.Logger) bool {
	sampled := ioformat.BuildSampledPlanner(doc.Scenarios, problem.Timeout, logger)
	instances := make([]*schedule.Instance, sampled.NumSamples())
	for i := range instances {
		scenarioPlanner, err := sampled.Scenario(i)
		if err != nil {
			out.Status, out.Reason = "solver_error", err.Error()
			return false
		}
		instances[i] = schedule.NewBuilder(scenarioPlanner, problem.Species).Build(problem, alloc)
	}

	workers := doc.StochasticWorkers
	if workers < 1 {
		workers = 4
	}
	stochastic := schedule.NewStochasticScheduler(doc.StochasticAlpha, workers, problem.Timeout)
	result := stochastic.Solve(instances)
	if result.Status != schedule.StatusFeasible {
		out.Status = "infeasible"
		out.Reason = "no scenario mutex ordering satisfies the required stochastic fraction"
		return false
	}

	out.Makespan = result.Makespan
	out.ScenarioSchedules, out.SatisfiedScenarios = ioformat.StochasticResultToDoc(result)
	return true
}

// runMapf implements `itags mapf <input.json> <output.json>`, running CBS
// standalone over a grid and an agent list, independent of any allocation
// or scheduling input.
func runMapf(args []string) error {
	if len(args) != 2 {
		usage()
		return fmt.Errorf("mapf takes exactly 2 arguments")
	}
	inputPath, outputPath := args[0], args[1]
	logger := newLogger()

	var doc ioformat.MapfDoc
	if err := readJSON(inputPath, &doc); err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	metric, err := doc.Metric()
	if err != nil {
		return writeJSON(outputPath, ioformat.MapfOutputDoc{Status: "solver_error", Reason: err.Error()})
	}

	grid := ioformat.BuildGridMap(&doc.Grid)
	timeout := time.Duration(-1)
	if doc.TimeoutSeconds >= 0 {
		timeout = time.Duration(doc.TimeoutSeconds * float64(time.Second))
	}

	solver := cbs.NewSolver(grid, doc.MaxTime, timeout, logger)
	solver.Metric = metric

	res := solver.Solve(doc.ToAgents())
	switch res.Status {
	case cbs.StatusSolved:
		return writeJSON(outputPath, ioformat.SolutionToDoc(res.Solution))
	case cbs.StatusTimeout:
		return writeJSON(outputPath, ioformat.MapfOutputDoc{Status: "timeout", Reason: "CBS search timed out"})
	default:
		return writeJSON(outputPath, ioformat.MapfOutputDoc{Status: "infeasible", Reason: "no conflict-free joint plan found"})
	}
}
