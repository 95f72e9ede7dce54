package ioformat

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
	"github.com/hashicorp/go-hclog"
)

// compositePlanner routes a query to the grid or point-graph planner
// depending on the queried species' MotionPlannerKind, so one problem can
// mix ground robots (grid) and aerial robots (point graph) the way
// DefaultSpecies does.
type compositePlanner struct {
	grid       motionplan.Planner
	pointGraph motionplan.Planner
}

func (c *compositePlanner) route(species *core.Species) motionplan.Planner {
	if species != nil && species.MotionPlanner != core.MotionPlannerGrid && c.pointGraph != nil {
		return c.pointGraph
	}
	return c.grid
}

func (c *compositePlanner) Query(species *core.Species, from, to core.Configuration) motionplan.Result {
	p := c.route(species)
	if p == nil {
		return motionplan.Result{Status: motionplan.StatusFailure, Reason: "no planner configured for species"}
	}
	return p.Query(species, from, to)
}

func (c *compositePlanner) DurationQuery(species *core.Species, from, to core.Configuration) float64 {
	p := c.route(species)
	if p == nil {
		return -1
	}
	return p.DurationQuery(species, from, to)
}

func (c *compositePlanner) IsMemoized(species *core.Species, from, to core.Configuration) bool {
	p := c.route(species)
	if p == nil {
		return false
	}
	return p.IsMemoized(species, from, to)
}

var _ motionplan.Planner = (*compositePlanner)(nil)

// BuildGridMap converts a GridDoc to a motionplan.GridMap.
func BuildGridMap(doc *GridDoc) *motionplan.GridMap {
	if doc == nil {
		return nil
	}
	m := motionplan.NewGridMap(doc.Width, doc.Height)
	for _, o := range doc.Obstacles {
		m.AddObstacle(o[0], o[1])
	}
	return m
}

// BuildPlanner constructs the motion planner(s) a problem needs from its
// grid/workspace environment docs, wrapped behind the single Planner
// interface internal/schedule and internal/tetaq expect.
func BuildPlanner(doc *ProblemDoc, timeout time.Duration, logger hclog.Logger) (motionplan.Planner, *motionplan.GridMap, error) {
	var grid motionplan.Planner
	var gridMap *motionplan.GridMap
	if doc.Grid != nil {
		gridMap = BuildGridMap(doc.Grid)
		grid = motionplan.NewGridPlanner(gridMap, timeout, logger)
	}

	var pointGraph motionplan.Planner
	if doc.Workspace != nil {
		pointGraph = motionplan.NewPointGraphPlanner(buildWorkspace(doc.Workspace), timeout, logger)
	}

	if grid == nil && pointGraph == nil {
		return nil, nil, fmt.Errorf("problem has neither a grid nor a workspace environment")
	}
	return &compositePlanner{grid: grid, pointGraph: pointGraph}, gridMap, nil
}

// BuildSampledPlanner constructs a SampledPointGraphPlanner from a list of
// scenario workspace docs, one independent point-graph planner per scenario,
// for the stochastic scheduler to draw per-scenario transition durations from.
func BuildSampledPlanner(docs []WorkspaceDoc, timeout time.Duration, logger hclog.Logger) *motionplan.SampledPointGraphPlanner {
	workspaces := make([]*core.Workspace, len(docs))
	for i := range docs {
		workspaces[i] = buildWorkspace(&docs[i])
	}
	return motionplan.NewSampledPointGraphPlanner(workspaces, timeout, logger)
}

func buildWorkspace(doc *WorkspaceDoc) *core.Workspace {
	w := core.NewWorkspace()
	for _, v := range doc.Vertices {
		w.AddVertex(&core.Vertex{ID: core.VertexID(v.ID), Pos: core.Pos{X: v.X, Y: v.Y}})
	}
	for _, e := range doc.Edges {
		w.AddEdgeWithLength(core.VertexID(e.V1), core.VertexID(e.V2), e.Cost)
	}
	return w
}
