package motionplan

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/search"
	"github.com/hashicorp/go-hclog"
)

// PointGraphPlanner runs A* over a fixed roadmap graph: successors enumerate
// the current vertex's edges, the heuristic is Euclidean distance to the
// goal configuration, and edge cost is edge length.
type PointGraphPlanner struct {
	Workspace *core.Workspace
	Timeout   time.Duration
	Logger    hclog.Logger

	memo *memo
}

// NewPointGraphPlanner creates a point-graph planner over ws.
func NewPointGraphPlanner(ws *core.Workspace, timeout time.Duration, logger hclog.Logger) *PointGraphPlanner {
	return &PointGraphPlanner{Workspace: ws, Timeout: timeout, Logger: logger, memo: newMemo()}
}

func (p *PointGraphPlanner) plan(from, to core.VertexID) Result {
	goalVertex := p.Workspace.Vertices[to]
	if goalVertex == nil {
		return Result{Status: StatusFailure, Reason: "goal vertex not in workspace"}
	}

	strategy := search.Strategy[core.VertexID]{
		GenerateRoot: func() core.VertexID { return from },
		GenerateSuccessors: func(parent *search.Node[core.VertexID]) []core.VertexID {
			return p.Workspace.Neighbors(parent.Payload)
		},
		PathCost: func(parent *search.Node[core.VertexID], child core.VertexID) float64 {
			e := p.Workspace.GetEdge(parent.Payload, child)
			if e == nil {
				return parent.G + 1
			}
			return parent.G + e.LengthMeters
		},
		Heuristic: func(child core.VertexID) float64 {
			v := p.Workspace.Vertices[child]
			if v == nil {
				return 0
			}
			return euclidean(v.Pos.X, v.Pos.Y, goalVertex.Pos.X, goalVertex.Pos.Y)
		},
		IsGoal: func(n *search.Node[core.VertexID]) bool { return n.Payload == to },
		Key:    func(v core.VertexID) string { return fmt.Sprintf("vid:%d", v) },
	}

	kernel := search.NewKernel(strategy, p.Timeout, p.Logger)
	res := kernel.Search()

	switch res.Status {
	case search.ResultGoal:
		return Result{Status: StatusSuccess, Path: reconstructVertices(p.Workspace, res.Node), Length: res.Node.G}
	case search.ResultNoGoalTimeout:
		return Result{Status: StatusTimeout, Reason: "search timed out"}
	default:
		return Result{Status: StatusFailure, Reason: "no path to goal"}
	}
}

func reconstructVertices(ws *core.Workspace, n *search.Node[core.VertexID]) []core.Configuration {
	var ids []core.VertexID
	for cur := n; cur != nil; cur = cur.Parent {
		ids = append([]core.VertexID{cur.Payload}, ids...)
	}
	path := make([]core.Configuration, len(ids))
	for i, id := range ids {
		v := ws.Vertices[id]
		path[i] = core.PointGraphConfiguration{ID: int(id), X: v.Pos.X, Y: v.Pos.Y}
	}
	return path
}

func asVertexID(c core.Configuration) core.VertexID {
	if pg, ok := c.(core.PointGraphConfiguration); ok {
		return core.VertexID(pg.ID)
	}
	x, _ := c.XY()
	return core.VertexID(int(x))
}

// Query implements Planner.
func (p *PointGraphPlanner) Query(species *core.Species, from, to core.Configuration) Result {
	key := memoKey(species, from, to)
	return p.memo.resolve(key, func() Result {
		return p.plan(asVertexID(from), asVertexID(to))
	})
}

// DurationQuery implements Planner.
func (p *PointGraphPlanner) DurationQuery(species *core.Species, from, to core.Configuration) float64 {
	res := p.Query(species, from, to)
	if res.Status != StatusSuccess || species == nil || species.SpeedMPS <= 0 {
		return -1
	}
	return res.Length / species.SpeedMPS
}

// IsMemoized implements Planner.
func (p *PointGraphPlanner) IsMemoized(species *core.Species, from, to core.Configuration) bool {
	return p.memo.has(memoKey(species, from, to))
}

var _ Planner = (*PointGraphPlanner)(nil)
