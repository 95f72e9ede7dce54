package cbs

import "github.com/elektrokombinacija/itags-het/internal/core"

// ConstraintKind tags whether a Constraint forbids occupying a vertex at a
// time, or traversing a directed edge between two consecutive time steps.
type ConstraintKind int

const (
	ConstraintVertex ConstraintKind = iota
	ConstraintEdge
)

// Constraint restricts one robot's low-level search. Vertex constraints
// forbid occupying Vertex at Time; edge constraints forbid the directed
// traversal From->To between Time and Time+1.
type Constraint struct {
	Kind   ConstraintKind
	Robot  core.RobotID
	Vertex core.GridCell
	From, To core.GridCell
	Time   int
}

// constraintsFor filters the inherited constraint list down to one robot.
func constraintsFor(all []Constraint, robot core.RobotID) []Constraint {
	var out []Constraint
	for _, c := range all {
		if c.Robot == robot {
			out = append(out, c)
		}
	}
	return out
}

// forbidsVertex reports whether occupying v at time t is forbidden.
func forbidsVertex(cs []Constraint, v core.GridCell, t int) bool {
	for _, c := range cs {
		if c.Kind == ConstraintVertex && c.Vertex == v && c.Time == t {
			return true
		}
	}
	return false
}

// forbidsEdge reports whether traversing from->to at time t is forbidden.
func forbidsEdge(cs []Constraint, from, to core.GridCell, t int) bool {
	for _, c := range cs {
		if c.Kind == ConstraintEdge && c.From == from && c.To == to && c.Time == t {
			return true
		}
	}
	return false
}

// latestGoalBlock returns the latest time step at which a vertex-constraint
// forbids occupying goal, or -1 if none does. Used by the low-level goal
// test: the agent may only stop at the goal strictly after this time.
func latestGoalBlock(cs []Constraint, goal core.GridCell) int {
	latest := -1
	for _, c := range cs {
		if c.Kind == ConstraintVertex && c.Vertex == goal && c.Time > latest {
			latest = c.Time
		}
	}
	return latest
}

// conflictConstraints produces the constraint each agent in a conflict
// receives: a vertex conflict yields identical vertex-constraints for both;
// an edge conflict yields per-agent edge-constraints that forbid the
// directed traversal each agent was attempting.
func conflictConstraints(c *Conflict) (a, b Constraint) {
	if c.Kind == ConflictVertex {
		a = Constraint{Kind: ConstraintVertex, Robot: c.RobotA, Vertex: c.Vertex, Time: c.Time}
		b = Constraint{Kind: ConstraintVertex, Robot: c.RobotB, Vertex: c.Vertex, Time: c.Time}
		return a, b
	}
	a = Constraint{Kind: ConstraintEdge, Robot: c.RobotA, From: c.EdgeAFrom, To: c.EdgeATo, Time: c.Time}
	b = Constraint{Kind: ConstraintEdge, Robot: c.RobotB, From: c.EdgeBFrom, To: c.EdgeBTo, Time: c.Time}
	return a, b
}
