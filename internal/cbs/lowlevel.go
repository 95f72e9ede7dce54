package cbs

import (
	"strconv"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/elektrokombinacija/itags-het/internal/search"
	"github.com/hashicorp/go-hclog"
)

// stState is the low-level search's (t,x,y) state.
type stState struct {
	C core.GridCell
	T int
}

func manhattan(a, b core.GridCell) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// lowLevelAStar finds a single-agent shortest path on grid from start to
// goal respecting constraints, via space-time A*: state (t,x,y), successors
// N/S/E/W/Wait each advancing t by 1, unit edge cost,
// Manhattan heuristic, pre-pruning on constraint violation, and the
// wait-past-block goal test.
func lowLevelAStar(grid *motionplan.GridMap, robot core.RobotID, start, goal core.GridCell, constraints []Constraint, maxTime int, timeout time.Duration, logger hclog.Logger) []core.GridCell {
	robotConstraints := constraintsFor(constraints, robot)
	blockedUntil := latestGoalBlock(robotConstraints, goal)

	deltas := []core.GridCell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

	strategy := search.Strategy[stState]{
		GenerateRoot: func() stState { return stState{C: start, T: 0} },
		GenerateSuccessors: func(parent *search.Node[stState]) []stState {
			if parent.Payload.T >= maxTime {
				return nil
			}
			var out []stState
			t := parent.Payload.T
			for _, d := range deltas {
				c := core.GridCell{X: parent.Payload.C.X + d.X, Y: parent.Payload.C.Y + d.Y}
				if !grid.FreeCell(c) {
					continue
				}
				if forbidsVertex(robotConstraints, c, t+1) {
					continue
				}
				if forbidsEdge(robotConstraints, parent.Payload.C, c, t) {
					continue
				}
				out = append(out, stState{C: c, T: t + 1})
			}
			return out
		},
		PathCost: func(parent *search.Node[stState], child stState) float64 { return parent.G + 1 },
		Heuristic: func(child stState) float64 { return manhattan(child.C, goal) },
		IsGoal: func(n *search.Node[stState]) bool {
			return n.Payload.C == goal && n.Payload.T > blockedUntil
		},
		Key: func(s stState) string { return s.C.Key() + "@" + strconv.Itoa(s.T) },
	}

	kernel := search.NewKernel(strategy, timeout, logger)
	res := kernel.Search()
	if res.Status != search.ResultGoal {
		return nil
	}

	var states []stState
	for n := res.Node; n != nil; n = n.Parent {
		states = append([]stState{n.Payload}, states...)
	}
	path := make([]core.GridCell, len(states))
	for i, s := range states {
		path[i] = s.C
	}
	return path
}
