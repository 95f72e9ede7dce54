// Package motionplan implements two concrete motion planners: a
// 4-connected grid A* and a point-graph (roadmap) A*, both built on the
// generic search kernel (internal/search), plus the memoization layer both
// share.
package motionplan

import "github.com/elektrokombinacija/itags-het/internal/core"

// Status is the outcome of a planning query.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimeout:
		return "timeout"
	default:
		return "failure"
	}
}

// Result is a planner's answer to a query: a path of configurations and its
// total length, or a failure/timeout with a reason.
type Result struct {
	Status Status
	Path   []core.Configuration
	Length float64
	Reason string
}

// Planner is the common interface for the grid and point-graph planners:
// Query resolves a path, DurationQuery resolves a duration, IsMemoized
// reports whether results are cached. Species carries both the memoization
// identity (Name) and the speed DurationQuery divides path length by.
type Planner interface {
	Query(species *core.Species, from, to core.Configuration) Result
	DurationQuery(species *core.Species, from, to core.Configuration) float64
	IsMemoized(species *core.Species, from, to core.Configuration) bool
}
