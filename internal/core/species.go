package core

// MotionPlannerKind selects which concrete planner (internal/motionplan)
// serves a species' transition queries.
type MotionPlannerKind int

const (
	MotionPlannerGrid MotionPlannerKind = iota
	MotionPlannerPointGraph
	MotionPlannerPointGraphSampled
)

func (k MotionPlannerKind) String() string {
	switch k {
	case MotionPlannerGrid:
		return "grid"
	case MotionPlannerPointGraph:
		return "point-graph"
	case MotionPlannerPointGraphSampled:
		return "point-graph-sampled"
	default:
		return "unknown"
	}
}

// Species is a class of robots sharing a capability (trait) vector, a
// motion model, a bounding radius, and a speed, held in a data-driven table
// so new species can be added from the problem JSON without a code change;
// DefaultSpecies below provides three as shipped fixtures.
type Species struct {
	Name           string
	Traits         []float64 // capability vector, indexed by the problem's shared trait axes
	BoundingRadius float64   // meters
	SpeedMPS       float64   // meters/second
	MotionPlanner  MotionPlannerKind
}

// DefaultSpecies provides three named robot classes as fixtures: a
// holonomic ground mobile unit, a rail-mounted unit, and an aerial drone.
func DefaultSpecies() map[string]*Species {
	return map[string]*Species{
		"mobile": {
			Name:           "mobile",
			Traits:         []float64{1, 0, 1, 0}, // swap-module, swap-battery, diagnose+clean, aerial
			BoundingRadius: 0.35,
			SpeedMPS:       0.5,
			MotionPlanner:  MotionPlannerGrid,
		},
		"rail": {
			Name:           "rail",
			Traits:         []float64{1, 1, 1, 0},
			BoundingRadius: 0.6,
			SpeedMPS:       2.0,
			MotionPlanner:  MotionPlannerGrid,
		},
		"aerial": {
			Name:           "aerial",
			Traits:         []float64{0, 0, 0, 1},
			BoundingRadius: 0.15,
			SpeedMPS:       15.0,
			MotionPlanner:  MotionPlannerPointGraph,
		},
	}
}
