// Package schedule implements a MILP scheduler: given a fixed allocation,
// compute start/finish times for every task minimizing makespan, via a
// sequential depth-first branch-and-bound that solves an LP relaxation at
// each node, branches on the mutex pairs in list order, and prunes a branch
// whose relaxation cannot beat the incumbent. The branched variables are
// pairwise mutex orderings rather than general 0/1 integers.
package schedule

import (
	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
)

// pairKey identifies an ordered task pair (i,j).
type pairKey struct{ I, J core.TaskID }

// Instance is the LP/MILP data the scheduler solves over, built from a
// Problem and a fixed Allocation by Build.
type Instance struct {
	Tasks      []core.TaskID
	Duration   map[core.TaskID]float64 // d_i; -1 means infeasible (empty coalition)
	Precedence map[core.TaskID][]core.TaskID // i -> tasks that must start no earlier than i finishes

	// InitialTransition[(r,i)] = delta_{r->i}, the duration from robot r's
	// initial configuration to task i's initial configuration, for every
	// robot r assigned to task i.
	InitialTransition map[pairKeyRobotTask]float64

	// Transition[(i,j)] = tau_{i->j}, the max-over-shared-robots duration
	// from task i's terminal to task j's initial configuration.
	Transition map[pairKey]float64

	MutexPairs [][2]core.TaskID
}

type pairKeyRobotTask struct {
	Robot core.RobotID
	Task  core.TaskID
}

// Builder computes an Instance's durations and transitions from motion-plan
// queries.
type Builder struct {
	Planner motionplan.Planner
	Species map[string]*core.Species
}

// NewBuilder creates a Builder.
func NewBuilder(planner motionplan.Planner, species map[string]*core.Species) *Builder {
	return &Builder{Planner: planner, Species: species}
}

func (b *Builder) widestRobot(problem *core.Problem, coalition []core.RobotID) *core.Robot {
	var widest *core.Robot
	best := -1.0
	for _, rid := range coalition {
		r := problem.RobotByID(rid)
		if r == nil {
			continue
		}
		radius := r.BoundingRadius(b.Species)
		if radius > best {
			best = radius
			widest = r
		}
	}
	return widest
}

func (b *Builder) speciesOf(r *core.Robot) *core.Species {
	if r == nil {
		return nil
	}
	return b.Species[r.SpeciesName]
}

// Build computes an Instance from problem and alloc. Tasks with an empty
// coalition get Duration == -1, the scheduler's fail-early signal.
func (b *Builder) Build(problem *core.Problem, alloc *core.Allocation) *Instance {
	inst := &Instance{
		Tasks:             append([]core.TaskID(nil), alloc.TaskIDs...),
		Duration:          make(map[core.TaskID]float64),
		Precedence:        make(map[core.TaskID][]core.TaskID),
		InitialTransition: make(map[pairKeyRobotTask]float64),
		Transition:        make(map[pairKey]float64),
		MutexPairs:        alloc.MutexPairs(),
	}

	for _, t := range problem.Tasks {
		for _, pred := range t.Precedence {
			inst.Precedence[pred] = append(inst.Precedence[pred], t.ID)
		}

		coalition := alloc.Coalition(t.ID)
		widest := b.widestRobot(problem, coalition)
		if widest == nil {
			inst.Duration[t.ID] = -1
			continue
		}
		inst.Duration[t.ID] = b.Planner.DurationQuery(b.speciesOf(widest), t.Initial, t.Terminal)

		for _, rid := range coalition {
			r := problem.RobotByID(rid)
			if r == nil {
				continue
			}
			delta := b.Planner.DurationQuery(b.speciesOf(r), r.Initial, t.Initial)
			inst.InitialTransition[pairKeyRobotTask{Robot: rid, Task: t.ID}] = delta
		}
	}

	for i := 0; i < len(problem.Tasks); i++ {
		for j := 0; j < len(problem.Tasks); j++ {
			if i == j {
				continue
			}
			ti, tj := problem.Tasks[i], problem.Tasks[j]
			shared := sharedRobots(alloc.Coalition(ti.ID), alloc.Coalition(tj.ID))
			if len(shared) == 0 {
				continue
			}
			max := -1.0
			for _, rid := range shared {
				r := problem.RobotByID(rid)
				d := b.Planner.DurationQuery(b.speciesOf(r), ti.Terminal, tj.Initial)
				if d > max {
					max = d
				}
			}
			inst.Transition[pairKey{I: ti.ID, J: tj.ID}] = max
		}
	}

	return inst
}

func sharedRobots(a, b []core.RobotID) []core.RobotID {
	set := make(map[core.RobotID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	var out []core.RobotID
	for _, id := range b {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}
