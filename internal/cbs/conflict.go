// Package cbs implements Conflict-Based Search multi-agent pathfinding: a
// high-level constraint tree searched over single-agent low-level
// space-time A* solutions on a shared 4-connected grid, where every agent
// moves one cell (or waits) per unit time step.
package cbs

import (
	"sort"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

// ConflictKind tags the two conflict shapes CBS detects.
type ConflictKind int

const (
	ConflictVertex ConflictKind = iota
	ConflictEdge
)

// Conflict is a tagged variant: a vertex conflict carries Vertex/Time; an
// edge conflict additionally carries the two endpoints each agent was
// swapping through.
type Conflict struct {
	Kind       ConflictKind
	RobotA, RobotB core.RobotID
	Vertex     core.GridCell
	Time       int
	EdgeAFrom, EdgeATo core.GridCell
	EdgeBFrom, EdgeBTo core.GridCell
}

// positionAt returns the robot's cell at time step t, clamped to its final
// position once the path has ended (t beyond len(path)-1 holds at the goal).
func positionAt(path []core.GridCell, t int) core.GridCell {
	if t < len(path) {
		return path[t]
	}
	return path[len(path)-1]
}

// firstConflict implements getFirstConflict: a full scan over every time
// step and agent pair, vertex conflicts taking precedence over edge
// conflicts at the same time step.
func firstConflict(paths map[core.RobotID][]core.GridCell) *Conflict {
	ids := make([]core.RobotID, 0, len(paths))
	maxLen := 0
	for id, p := range paths {
		ids = append(ids, id)
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for t := 0; t < maxLen; t++ {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if positionAt(paths[a], t) == positionAt(paths[b], t) {
					return &Conflict{Kind: ConflictVertex, RobotA: a, RobotB: b, Vertex: positionAt(paths[a], t), Time: t}
				}
			}
		}
		if t >= maxLen-1 {
			continue
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				aFrom, aTo := positionAt(paths[a], t), positionAt(paths[a], t+1)
				bFrom, bTo := positionAt(paths[b], t), positionAt(paths[b], t+1)
				if aFrom == bTo && aTo == bFrom {
					return &Conflict{
						Kind: ConflictEdge, RobotA: a, RobotB: b, Time: t,
						EdgeAFrom: aFrom, EdgeATo: aTo, EdgeBFrom: bFrom, EdgeBTo: bTo,
					}
				}
			}
		}
	}
	return nil
}
