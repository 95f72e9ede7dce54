package motionplan

import (
	"math"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/search"
	"github.com/hashicorp/go-hclog"
)

// GridMap is a bounded 4-connected occupancy grid: Obstacles holds the cells
// a robot cannot occupy, everything else in [0,Width)x[0,Height) is free.
type GridMap struct {
	Width, Height int
	Obstacles     map[core.GridCell]bool
}

// NewGridMap creates an empty-obstacle grid of the given size.
func NewGridMap(width, height int) *GridMap {
	return &GridMap{Width: width, Height: height, Obstacles: make(map[core.GridCell]bool)}
}

// AddObstacle marks a cell impassable.
func (g *GridMap) AddObstacle(x, y int) {
	g.Obstacles[core.GridCell{X: x, Y: y}] = true
}

func (g *GridMap) inBounds(c core.GridCell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

func (g *GridMap) free(c core.GridCell) bool {
	return g.inBounds(c) && !g.Obstacles[c]
}

// FreeCell reports whether c is in bounds and not an obstacle, for planners
// outside this package (internal/cbs's low-level search) that share a
// GridMap with the grid motion planner.
func (g *GridMap) FreeCell(c core.GridCell) bool {
	return g.free(c)
}

// GridPlanner runs A* over a 2D occupancy grid: four cardinal successors,
// an admissible Euclidean-distance heuristic, unit edge cost.
type GridPlanner struct {
	Map     *GridMap
	Timeout time.Duration
	Logger  hclog.Logger

	memo *memo
}

// NewGridPlanner creates a grid planner over m. A zero timeout means the
// search kernel's zero-timeout semantics apply (instant timeout); pass
// search.Unbounded for no deadline.
func NewGridPlanner(m *GridMap, timeout time.Duration, logger hclog.Logger) *GridPlanner {
	return &GridPlanner{Map: m, Timeout: timeout, Logger: logger, memo: newMemo()}
}

var gridCardinals = []core.GridCell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

func euclidean(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return math.Sqrt(dx*dx + dy*dy)
}

func (p *GridPlanner) plan(from, to core.GridCell) Result {
	strategy := search.Strategy[core.GridCell]{
		GenerateRoot: func() core.GridCell { return from },
		GenerateSuccessors: func(parent *search.Node[core.GridCell]) []core.GridCell {
			var out []core.GridCell
			for _, d := range gridCardinals {
				c := core.GridCell{X: parent.Payload.X + d.X, Y: parent.Payload.Y + d.Y}
				if p.Map.free(c) {
					out = append(out, c)
				}
			}
			return out
		},
		PathCost: func(parent *search.Node[core.GridCell], child core.GridCell) float64 {
			return parent.G + 1
		},
		Heuristic: func(child core.GridCell) float64 {
			return euclidean(float64(child.X), float64(child.Y), float64(to.X), float64(to.Y))
		},
		IsGoal: func(n *search.Node[core.GridCell]) bool { return n.Payload == to },
		Key:    func(c core.GridCell) string { return c.Key() },
	}

	kernel := search.NewKernel(strategy, p.Timeout, p.Logger)
	res := kernel.Search()

	switch res.Status {
	case search.ResultGoal:
		return Result{Status: StatusSuccess, Path: reconstructGrid(res.Node), Length: res.Node.G}
	case search.ResultNoGoalTimeout:
		return Result{Status: StatusTimeout, Reason: "search timed out"}
	default:
		return Result{Status: StatusFailure, Reason: "no path to goal"}
	}
}

func reconstructGrid(n *search.Node[core.GridCell]) []core.Configuration {
	var cells []core.GridCell
	for cur := n; cur != nil; cur = cur.Parent {
		cells = append([]core.GridCell{cur.Payload}, cells...)
	}
	path := make([]core.Configuration, len(cells))
	for i, c := range cells {
		path[i] = c
	}
	return path
}

func asGridCell(c core.Configuration) core.GridCell {
	if g, ok := c.(core.GridCell); ok {
		return g
	}
	x, y := c.XY()
	return core.GridCell{X: int(x), Y: int(y)}
}

// Query implements Planner.
func (p *GridPlanner) Query(species *core.Species, from, to core.Configuration) Result {
	key := memoKey(species, from, to)
	return p.memo.resolve(key, func() Result {
		return p.plan(asGridCell(from), asGridCell(to))
	})
}

// DurationQuery implements Planner: path length divided by species speed.
// A timed-out or failed query yields -1.
func (p *GridPlanner) DurationQuery(species *core.Species, from, to core.Configuration) float64 {
	res := p.Query(species, from, to)
	if res.Status != StatusSuccess || species == nil || species.SpeedMPS <= 0 {
		return -1
	}
	return res.Length / species.SpeedMPS
}

// IsMemoized implements Planner.
func (p *GridPlanner) IsMemoized(species *core.Species, from, to core.Configuration) bool {
	return p.memo.has(memoKey(species, from, to))
}

var _ Planner = (*GridPlanner)(nil)
