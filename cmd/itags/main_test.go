package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/ioformat"
	"github.com/elektrokombinacija/itags-het/internal/itags"
)

func TestStatePath(t *testing.T) {
	assert.Equal(t, "out.json.state.json", statePath("out.json"))
}

func TestToChange(t *testing.T) {
	cases := map[string]itags.ChangeKind{
		"robot_added":                 itags.ChangeRobotAdded,
		"robot_lost":                  itags.ChangeRobotLost,
		"trait_requirement_increased": itags.ChangeTraitRequirementIncreased,
		"trait_requirement_decreased": itags.ChangeTraitRequirementDecreased,
		"robot_trait_increased":       itags.ChangeRobotTraitIncreased,
		"robot_trait_decreased":       itags.ChangeRobotTraitDecreased,
		"task_duration_or_precedence": itags.ChangeTaskDurationOrPrecedence,
	}
	for kind, want := range cases {
		c, err := toChange(&ioformat.ChangeDoc{Kind: kind, Robot: 1, Task: 2})
		require.NoError(t, err)
		assert.Equal(t, want, c.Kind)
		assert.Equal(t, core.RobotID(1), c.Robot)
		assert.Equal(t, core.TaskID(2), c.Task)
	}
	_, err := toChange(&ioformat.ChangeDoc{Kind: "nonsense"})
	assert.Error(t, err)
}

func TestRobotAndTaskIDs(t *testing.T) {
	problem := &core.Problem{
		Robots: []*core.Robot{{ID: 1}, {ID: 2}},
		Tasks:  []*core.Task{{ID: 10}},
	}
	robotIDs, taskIDs := robotAndTaskIDs(problem)
	assert.Equal(t, []core.RobotID{1, 2}, robotIDs)
	assert.Equal(t, []core.TaskID{10}, taskIDs)
}

func TestRunSolveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	outputPath := filepath.Join(dir, "output.json")

	doc := ioformat.ProblemDoc{
		Species: []ioformat.SpeciesDoc{
			{Name: "mobile", Traits: []float64{1}, BoundingRadius: 0.3, Speed: 1, MotionPlannerType: "grid"},
		},
		Robots: []ioformat.RobotDoc{
			{ID: 1, SpeciesName: "mobile", Initial: ioformat.ConfigurationDoc{Kind: "grid", X: 0, Y: 0}, Traits: []float64{1}},
		},
		Tasks: []ioformat.TaskDoc{
			{ID: 1, Initial: ioformat.ConfigurationDoc{Kind: "grid", X: 0, Y: 0}, Terminal: ioformat.ConfigurationDoc{Kind: "grid", X: 1, Y: 0}, Requirements: []float64{1}, StaticDuration: 1},
		},
		Grid:                       &ioformat.GridDoc{Width: 3, Height: 3},
		RobotTraitsMatrixReduction: ioformat.ReductionDoc{Kind: "matrix_multiply"},
		Alpha:                      0.5,
		ScheduleWorstMakespan:      10,
		TimeoutSeconds:             5,
	}
	writeTestJSON(t, inputPath, doc)

	require.NoError(t, runSolve([]string{inputPath, outputPath}))

	var out ioformat.OutputDoc
	readTestJSON(t, outputPath, &out)
	require.Equal(t, "solved", out.Status, "reason: %s", out.Reason)
	assert.Len(t, out.RobotIDs, 1)
	assert.Len(t, out.TaskIDs, 1)

	_, err := os.Stat(statePath(outputPath))
	assert.NoError(t, err, "expected a persisted search state file")
}

func TestRunSolveStochasticEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.json")
	outputPath := filepath.Join(dir, "output.json")

	workspace := func(cost float64) ioformat.WorkspaceDoc {
		return ioformat.WorkspaceDoc{
			Vertices: []ioformat.VertexDoc{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1, Y: 0}},
			Edges:    []ioformat.EdgeDoc{{V1: 1, V2: 2, Cost: cost}},
		}
	}

	mainWorkspace := workspace(2)
	doc := ioformat.ProblemDoc{
		Species: []ioformat.SpeciesDoc{
			{Name: "aerial", Traits: []float64{1}, BoundingRadius: 0.3, Speed: 1, MotionPlannerType: "point-graph"},
		},
		Robots: []ioformat.RobotDoc{
			{ID: 1, SpeciesName: "aerial", Initial: ioformat.ConfigurationDoc{Kind: "pointgraph", ID: 1}, Traits: []float64{1}},
		},
		Tasks: []ioformat.TaskDoc{
			{ID: 1, Initial: ioformat.ConfigurationDoc{Kind: "pointgraph", ID: 1}, Terminal: ioformat.ConfigurationDoc{Kind: "pointgraph", ID: 2}, Requirements: []float64{1}, StaticDuration: 1},
		},
		Workspace:                  &mainWorkspace,
		RobotTraitsMatrixReduction: ioformat.ReductionDoc{Kind: "matrix_multiply"},
		Alpha:                      0.5,
		ScheduleWorstMakespan:      20,
		TimeoutSeconds:             5,
		Scenarios:                  []ioformat.WorkspaceDoc{workspace(1), workspace(5)},
		StochasticAlpha:            1.0,
		StochasticWorkers:          2,
	}
	writeTestJSON(t, inputPath, doc)

	require.NoError(t, runSolve([]string{inputPath, outputPath}))

	var out ioformat.OutputDoc
	readTestJSON(t, outputPath, &out)
	require.Equal(t, "solved", out.Status, "reason: %s", out.Reason)
	require.Len(t, out.ScenarioSchedules, 2)
	assert.Equal(t, 2, out.SatisfiedScenarios)
	assert.Greater(t, out.Makespan, 0.0)
}

func writeTestJSON(t *testing.T, path string, v any) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, json.NewEncoder(f).Encode(v))
}

func readTestJSON(t *testing.T, path string, v any) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, json.NewDecoder(f).Decode(v))
}
