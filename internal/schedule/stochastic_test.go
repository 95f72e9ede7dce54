package schedule

import (
	"testing"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

func scenarioInstance(transition float64) *Instance {
	const t1, t2 core.TaskID = 1, 2
	return &Instance{
		Tasks:             []core.TaskID{t1, t2},
		Duration:          map[core.TaskID]float64{t1: 5, t2: 3},
		Precedence:        map[core.TaskID][]core.TaskID{},
		InitialTransition: map[pairKeyRobotTask]float64{{Robot: 1, Task: t1}: 0, {Robot: 1, Task: t2}: 0},
		Transition:        map[pairKey]float64{{I: t1, J: t2}: transition, {I: t2, J: t1}: transition},
		MutexPairs:        [][2]core.TaskID{{t1, t2}},
	}
}

func TestStochasticSchedulerAllScenariosSatisfied(t *testing.T) {
	instances := []*Instance{scenarioInstance(1), scenarioInstance(2)}
	s := NewStochasticScheduler(1.0, 2, -1)
	res := s.Solve(instances)
	if res.Status != StatusFeasible {
		t.Fatalf("expected feasible, got %v", res.Status)
	}
	if len(res.Schedules) != 2 {
		t.Fatalf("expected 2 per-scenario schedules, got %d", len(res.Schedules))
	}
	if res.SatisfiedK != 2 {
		t.Fatalf("expected both scenarios satisfied at alpha=1, got %d", res.SatisfiedK)
	}
	// Both task orderings cost Duration[t1]+Duration[t2]+transition here;
	// at alpha=1 every scenario must be satisfied, so the larger
	// transition (scenario 2) sets the chosen makespan.
	want := 3 + 2 + 5.0
	if res.Makespan != want {
		t.Fatalf("expected makespan %v, got %v", want, res.Makespan)
	}
}

func TestStochasticSchedulerPartialAlpha(t *testing.T) {
	instances := []*Instance{scenarioInstance(1), scenarioInstance(100)}
	s := NewStochasticScheduler(0.5, 2, -1)
	res := s.Solve(instances)
	if res.Status != StatusFeasible {
		t.Fatalf("expected feasible, got %v", res.Status)
	}
	if res.SatisfiedK < 1 {
		t.Fatalf("expected at least 1 satisfied scenario, got %d", res.SatisfiedK)
	}
	// With only 1 of 2 scenarios required, the cheaper scenario's makespan
	// should be chosen rather than being dragged up by the expensive one.
	if res.Makespan != 3+1+5.0 {
		t.Fatalf("expected the cheap scenario's makespan 9, got %v", res.Makespan)
	}
}

func TestStochasticSchedulerNoInstancesIsInfeasible(t *testing.T) {
	s := NewStochasticScheduler(1.0, 2, -1)
	res := s.Solve(nil)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible for an empty scenario set, got %v", res.Status)
	}
}
