package core

// Pos is a 3D position (Z=0 for ground-bound robots).
type Pos struct {
	X, Y, Z float64
}

// AirspaceLayer is a discrete altitude layer for aerial species.
type AirspaceLayer int

const (
	LayerGround AirspaceLayer = 0
	Layer1      AirspaceLayer = 5
	Layer2      AirspaceLayer = 10
	Layer3      AirspaceLayer = 15
)

// Height returns the altitude in meters for a layer.
func (l AirspaceLayer) Height() float64 { return float64(l) }

// VertexID is a unique vertex identifier in the workspace graph (this is
// the Configuration type a GridCell or PointGraphConfiguration wraps a
// VertexID-addressable location into, but the workspace graph itself is
// addressed directly by VertexID for adjacency lookups).
type VertexID int

// Vertex is a location in the workspace graph.
type Vertex struct {
	ID     VertexID
	Pos    Pos
	Shared bool     // multiple robots may occupy simultaneously
	Restrict []string // if non-empty, only these species names may occupy

	Layer      AirspaceLayer
	IsCorridor bool // vertical corridor: layer transitions allowed here
	IsPad      bool // charging/landing pad
	NoFlyZone  bool
}

// Edge connects two vertices.
//
// Priority for computing traversal time: TravelTimeSec, if set, is
// authoritative (elevators, rail segments with a fixed dwell); otherwise
// LengthMeters / speed.
type Edge struct {
	From, To      VertexID
	LengthMeters  float64
	TravelTimeSec float64
}

// TravelTime returns the traversal duration of this edge for a robot
// moving at speedMPS.
func (e Edge) TravelTime(speedMPS float64) float64 {
	if e.TravelTimeSec > 0 {
		return e.TravelTimeSec
	}
	if e.LengthMeters > 0 && speedMPS > 0 {
		return e.LengthMeters / speedMPS
	}
	return 1.0
}

// Workspace is the traversable space: a graph of vertices and weighted
// edges, searched by the point-graph motion planner (internal/motionplan).
// The grid motion planner and CBS's low-level space-time A* (internal/cbs)
// use motionplan.GridMap instead.
type Workspace struct {
	Vertices map[VertexID]*Vertex
	Edges    map[VertexID][]Edge
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		Vertices: make(map[VertexID]*Vertex),
		Edges:    make(map[VertexID][]Edge),
	}
}

// AddVertex adds a vertex to the workspace.
func (w *Workspace) AddVertex(v *Vertex) {
	w.Vertices[v.ID] = v
	if w.Edges[v.ID] == nil {
		w.Edges[v.ID] = []Edge{}
	}
}

// AddEdgeWithLength adds a bidirectional edge with explicit length.
func (w *Workspace) AddEdgeWithLength(from, to VertexID, lengthMeters float64) {
	w.Edges[from] = append(w.Edges[from], Edge{From: from, To: to, LengthMeters: lengthMeters})
	w.Edges[to] = append(w.Edges[to], Edge{From: to, To: from, LengthMeters: lengthMeters})
}

// AddEdgeWithFixedTime adds a bidirectional edge with a fixed traversal time
// (elevators, rail segments).
func (w *Workspace) AddEdgeWithFixedTime(from, to VertexID, lengthMeters, travelTimeSec float64) {
	w.Edges[from] = append(w.Edges[from], Edge{From: from, To: to, LengthMeters: lengthMeters, TravelTimeSec: travelTimeSec})
	w.Edges[to] = append(w.Edges[to], Edge{From: to, To: from, LengthMeters: lengthMeters, TravelTimeSec: travelTimeSec})
}

// GetEdge returns the edge between two vertices, or nil if none exists.
func (w *Workspace) GetEdge(from, to VertexID) *Edge {
	for i := range w.Edges[from] {
		if w.Edges[from][i].To == to {
			return &w.Edges[from][i]
		}
	}
	return nil
}

// Neighbors returns adjacent vertices.
func (w *Workspace) Neighbors(v VertexID) []VertexID {
	edges := w.Edges[v]
	neighbors := make([]VertexID, len(edges))
	for i, e := range edges {
		neighbors[i] = e.To
	}
	return neighbors
}

// CanOccupy reports whether a species may occupy a vertex.
func (w *Workspace) CanOccupy(v VertexID, speciesName string) bool {
	vertex := w.Vertices[v]
	if vertex == nil {
		return false
	}
	if len(vertex.Restrict) == 0 {
		return true
	}
	for _, allowed := range vertex.Restrict {
		if allowed == speciesName {
			return true
		}
	}
	return false
}

// IsObstacle reports whether the vertex is absent from the workspace.
func (w *Workspace) IsObstacle(v VertexID) bool {
	_, ok := w.Vertices[v]
	return !ok
}
