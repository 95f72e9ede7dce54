package cbs

import (
	"testing"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
)

func TestSolverHeadOnCorridor(t *testing.T) {
	// A one-row corridor with a single passing bay at (2,1): the agents can
	// only swap ends if one of them steps aside into the bay.
	grid := motionplan.NewGridMap(5, 2)
	for _, x := range []int{0, 1, 3, 4} {
		grid.AddObstacle(x, 1)
	}
	solver := NewSolver(grid, 20, -1, nil)

	agents := []Agent{
		{Robot: 1, Start: core.GridCell{X: 0, Y: 0}, Goal: core.GridCell{X: 4, Y: 0}},
		{Robot: 2, Start: core.GridCell{X: 4, Y: 0}, Goal: core.GridCell{X: 0, Y: 0}},
	}

	res := solver.Solve(agents)
	if res.Status != StatusSolved {
		t.Fatalf("expected solved, got %v", res.Status)
	}
	if firstConflict(res.Solution.Paths) != nil {
		t.Fatal("solution still has a conflict")
	}
}

func TestSolverNoConflictIndependentPaths(t *testing.T) {
	grid := motionplan.NewGridMap(5, 5)
	solver := NewSolver(grid, 20, -1, nil)

	agents := []Agent{
		{Robot: 1, Start: core.GridCell{X: 0, Y: 0}, Goal: core.GridCell{X: 0, Y: 4}},
		{Robot: 2, Start: core.GridCell{X: 4, Y: 0}, Goal: core.GridCell{X: 4, Y: 4}},
	}
	res := solver.Solve(agents)
	if res.Status != StatusSolved {
		t.Fatalf("expected solved, got %v", res.Status)
	}
}

func TestSolverInfeasibleBlockedGoal(t *testing.T) {
	grid := motionplan.NewGridMap(3, 1)
	grid.AddObstacle(1, 0)
	solver := NewSolver(grid, 10, -1, nil)

	agents := []Agent{{Robot: 1, Start: core.GridCell{X: 0, Y: 0}, Goal: core.GridCell{X: 2, Y: 0}}}
	res := solver.Solve(agents)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible, got %v", res.Status)
	}
}
