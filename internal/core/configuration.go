// Package core defines the domain model shared by every component: robots,
// species, tasks, the workspace graph, allocations, and schedules.
package core

import "fmt"

// Configuration is a robot or task endpoint in space. Every concrete
// configuration type must provide structural equality (via Key) and an XY
// projection for Euclidean-distance heuristics, since equality and hashing
// are required for motion-plan memoization keys.
type Configuration interface {
	// Key returns a string that is equal for two configurations iff they
	// are structurally equal. Used directly as part of motion-plan
	// memoization keys (internal/motionplan).
	Key() string
	// XY projects the configuration onto the plane for heuristic distance.
	XY() (x, y float64)
}

// GridCell is an integer grid coordinate, the configuration type for the
// grid motion planner.
type GridCell struct {
	X, Y int
}

func (c GridCell) Key() string       { return fmt.Sprintf("grid:%d,%d", c.X, c.Y) }
func (c GridCell) XY() (float64, float64) { return float64(c.X), float64(c.Y) }

// PointGraphConfiguration identifies a vertex on a pre-built roadmap, the
// configuration type for the point-graph motion planner.
type PointGraphConfiguration struct {
	ID   int
	X, Y float64
}

func (c PointGraphConfiguration) Key() string { return fmt.Sprintf("pg:%d", c.ID) }
func (c PointGraphConfiguration) XY() (float64, float64) { return c.X, c.Y }

// SE2 is a planar pose (x, y, yaw), used by motion models that care about
// heading (e.g. non-holonomic ground robots).
type SE2 struct {
	X, Y, Yaw float64
}

func (c SE2) Key() string { return fmt.Sprintf("se2:%.6f,%.6f,%.6f", c.X, c.Y, c.Yaw) }
func (c SE2) XY() (float64, float64) { return c.X, c.Y }
