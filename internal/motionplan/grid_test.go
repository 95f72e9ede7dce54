package motionplan

import (
	"testing"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

// TestGridPlannerS1 reproduces spec scenario S1: a 3x3 grid with obstacles
// at (1,1) and (2,2), start (0,0), goal (1,2), expected path length 3.
func TestGridPlannerS1(t *testing.T) {
	m := NewGridMap(3, 3)
	m.AddObstacle(1, 1)
	m.AddObstacle(2, 2)
	planner := NewGridPlanner(m, -1, nil)

	species := &core.Species{Name: "mobile", SpeedMPS: 1}
	res := planner.Query(species, core.GridCell{X: 0, Y: 0}, core.GridCell{X: 1, Y: 2})
	if res.Status != StatusSuccess {
		t.Fatalf("expected success, got %v: %s", res.Status, res.Reason)
	}
	if res.Length != 3 {
		t.Fatalf("expected path length 3, got %v", res.Length)
	}
}

func TestGridPlannerMemoizes(t *testing.T) {
	m := NewGridMap(3, 3)
	planner := NewGridPlanner(m, -1, nil)
	species := &core.Species{Name: "mobile", SpeedMPS: 1}
	from, to := core.GridCell{X: 0, Y: 0}, core.GridCell{X: 2, Y: 2}

	if planner.IsMemoized(species, from, to) {
		t.Fatal("expected not memoized before first query")
	}
	first := planner.Query(species, from, to)
	if !planner.IsMemoized(species, from, to) {
		t.Fatal("expected memoized after first query")
	}
	second := planner.Query(species, from, to)
	if first.Length != second.Length {
		t.Fatalf("memoized result changed: %v vs %v", first.Length, second.Length)
	}
}

func TestGridPlannerNoPath(t *testing.T) {
	m := NewGridMap(3, 3)
	for x := 0; x < 3; x++ {
		m.AddObstacle(x, 1)
	}
	planner := NewGridPlanner(m, -1, nil)
	species := &core.Species{Name: "mobile", SpeedMPS: 1}
	res := planner.Query(species, core.GridCell{X: 0, Y: 0}, core.GridCell{X: 0, Y: 2})
	if res.Status != StatusFailure {
		t.Fatalf("expected failure, got %v", res.Status)
	}
	if d := planner.DurationQuery(species, core.GridCell{X: 0, Y: 0}, core.GridCell{X: 0, Y: 2}); d != -1 {
		t.Fatalf("expected duration -1 on failure, got %v", d)
	}
}
