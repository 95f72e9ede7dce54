package schedule

import (
	"testing"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

func simpleInstance() *Instance {
	const t1, t2 core.TaskID = 1, 2
	return &Instance{
		Tasks:             []core.TaskID{t1, t2},
		Duration:          map[core.TaskID]float64{t1: 5, t2: 3},
		Precedence:        map[core.TaskID][]core.TaskID{},
		InitialTransition: map[pairKeyRobotTask]float64{{Robot: 1, Task: t1}: 0, {Robot: 1, Task: t2}: 0},
		Transition:        map[pairKey]float64{},
	}
}

func TestSolveNoPrecedenceNoMutex(t *testing.T) {
	inst := simpleInstance()
	s := NewScheduler(-1, nil)
	res := s.Solve(inst)
	if res.Status != StatusFeasible {
		t.Fatalf("expected feasible, got %v", res.Status)
	}
	if res.Schedule.Makespan != 5 {
		t.Fatalf("expected makespan 5, got %v", res.Schedule.Makespan)
	}
}

func TestSolvePrecedenceChain(t *testing.T) {
	inst := simpleInstance()
	inst.Precedence[1] = []core.TaskID{2}
	s := NewScheduler(-1, nil)
	res := s.Solve(inst)
	if res.Status != StatusFeasible {
		t.Fatalf("expected feasible, got %v", res.Status)
	}
	if res.Schedule.Makespan != 8 {
		t.Fatalf("expected makespan 8 (5+3 sequential), got %v", res.Schedule.Makespan)
	}
}

func TestSolveMutexPair(t *testing.T) {
	inst := simpleInstance()
	inst.MutexPairs = [][2]core.TaskID{{1, 2}}
	inst.Transition[pairKey{I: 1, J: 2}] = 1
	inst.Transition[pairKey{I: 2, J: 1}] = 1
	s := NewScheduler(-1, nil)
	res := s.Solve(inst)
	if res.Status != StatusFeasible {
		t.Fatalf("expected feasible, got %v", res.Status)
	}
	// Sharing a robot forces sequential execution with a transition gap;
	// with equal transitions both orderings cost 5 + 1 + 3 = 9.
	if res.Schedule.Makespan != 9 {
		t.Fatalf("expected makespan 9, got %v", res.Schedule.Makespan)
	}
}

func TestSolveInfeasibleDuration(t *testing.T) {
	inst := simpleInstance()
	inst.Duration[2] = -1
	s := NewScheduler(-1, nil)
	res := s.Solve(inst)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible, got %v", res.Status)
	}
}
