package ioformat

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

// SpeciesDoc is the wire form of core.Species.
type SpeciesDoc struct {
	Name              string    `json:"name"`
	Traits            []float64 `json:"traits"`
	BoundingRadius    float64   `json:"bounding_radius"`
	Speed             float64   `json:"speed"`
	MotionPlannerType string    `json:"motion_planner_type"`
}

func parseMotionPlannerKind(s string) (core.MotionPlannerKind, error) {
	switch s {
	case "", "grid":
		return core.MotionPlannerGrid, nil
	case "point-graph":
		return core.MotionPlannerPointGraph, nil
	case "point-graph-sampled":
		return core.MotionPlannerPointGraphSampled, nil
	default:
		return 0, fmt.Errorf("unknown motion_planner_type %q", s)
	}
}

// RobotDoc is the wire form of core.Robot.
type RobotDoc struct {
	ID          int              `json:"id"`
	SpeciesName string           `json:"species_name"`
	Initial     ConfigurationDoc `json:"initial_configuration"`
	Traits      []float64        `json:"traits"`
}

// TaskDoc is the wire form of core.Task.
type TaskDoc struct {
	ID             int              `json:"id"`
	Initial        ConfigurationDoc `json:"initial_configuration"`
	Terminal       ConfigurationDoc `json:"terminal_configuration"`
	Requirements   []float64        `json:"requirements"`
	StaticDuration float64          `json:"static_duration"`
}

// CustomReductionDoc names a custom reduction cell and the threshold its
// ThresholdCumulative reduction uses — the only custom reduction this
// repository ships, so it is the only custom-function descriptor the wire
// format needs.
type CustomReductionDoc struct {
	Task      int     `json:"task"`
	Trait     int     `json:"trait"`
	Threshold float64 `json:"threshold"`
}

// ReductionDoc is the wire form of core.ReductionSpec.
type ReductionDoc struct {
	Kind    string               `json:"robot_traits_matrix_reduction"` // matrix_multiply | per_cell
	Cells   [][]string           `json:"cells,omitempty"`               // per task x trait, only for per_cell
	Customs []CustomReductionDoc `json:"customs,omitempty"`
}

func parseReductionKind(s string) (core.ReductionKind, error) {
	switch s {
	case "sum":
		return core.ReductionSum, nil
	case "product":
		return core.ReductionProduct, nil
	case "min":
		return core.ReductionMin, nil
	case "max":
		return core.ReductionMax, nil
	case "custom":
		return core.ReductionCustom, nil
	default:
		return 0, fmt.Errorf("unknown reduction cell kind %q", s)
	}
}

// GridDoc is the wire form of a motionplan.GridMap environment.
type GridDoc struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Obstacles [][2]int `json:"obstacles"`
}

// VertexDoc and EdgeDoc are the wire form of a point-graph environment: a
// vertex list (id, payload) and an edge list (v1, v2, cost).
type VertexDoc struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type EdgeDoc struct {
	V1   int     `json:"v1"`
	V2   int     `json:"v2"`
	Cost float64 `json:"cost"`
}

type WorkspaceDoc struct {
	Vertices []VertexDoc `json:"vertices"`
	Edges    []EdgeDoc   `json:"edges"`
}

// ChangeDoc describes one DITAGS repair edit applied by cmd/itags's repair
// subcommand, naming the same seven change kinds itags.ChangeKind defines.
type ChangeDoc struct {
	Kind  string `json:"kind"`
	Robot int    `json:"robot,omitempty"`
	Task  int    `json:"task,omitempty"`
}

// ProblemDoc is the top-level wire form of a Problem.
type ProblemDoc struct {
	Robots                     []RobotDoc   `json:"robots"`
	Species                    []SpeciesDoc `json:"species"`
	Tasks                      []TaskDoc    `json:"tasks"`
	PrecedenceConstraints      [][2]int     `json:"precedence_constraints"`
	RobotTraitsMatrixReduction ReductionDoc `json:"robot_traits_matrix_reduction"`
	Alpha                      float64      `json:"alpha"`
	ScheduleWorstMakespan      float64      `json:"schedule_worst_makespan"`
	TimeoutSeconds             float64      `json:"timeout"` // seconds; negative means unbounded

	Grid      *GridDoc      `json:"grid,omitempty"`
	Workspace *WorkspaceDoc `json:"workspace,omitempty"`

	// Scenarios, when non-empty, switches scheduling from the plain
	// branch-and-bound Scheduler to the StochasticScheduler: each entry is
	// an independently-sampled point-graph workspace standing in for
	// uncertain transition durations, and StochasticAlpha is the fraction
	// of scenarios required to meet the chosen makespan.
	Scenarios         []WorkspaceDoc `json:"scenarios,omitempty"`
	StochasticAlpha   float64        `json:"stochastic_alpha,omitempty"`
	StochasticWorkers int            `json:"stochastic_workers,omitempty"`

	// Change is only read by the repair subcommand.
	Change *ChangeDoc `json:"change,omitempty"`
}

func timeoutFromSeconds(s float64) time.Duration {
	if s < 0 {
		return -1
	}
	return time.Duration(s * float64(time.Second))
}

// ToProblem decodes doc into a core.Problem, reporting a decode error for
// any malformed reference (unknown species, bad configuration kind) rather
// than silently dropping it.
func ToProblem(doc *ProblemDoc) (*core.Problem, error) {
	p := core.NewProblem()
	p.Alpha = doc.Alpha
	p.ScheduleWorstMakespan = doc.ScheduleWorstMakespan
	p.Timeout = timeoutFromSeconds(doc.TimeoutSeconds)

	for _, sd := range doc.Species {
		kind, err := parseMotionPlannerKind(sd.MotionPlannerType)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", sd.Name, err)
		}
		p.Species[sd.Name] = &core.Species{
			Name:           sd.Name,
			Traits:         sd.Traits,
			BoundingRadius: sd.BoundingRadius,
			SpeedMPS:       sd.Speed,
			MotionPlanner:  kind,
		}
	}

	for _, rd := range doc.Robots {
		cfg, err := rd.Initial.ToConfiguration()
		if err != nil {
			return nil, fmt.Errorf("robot %d: %w", rd.ID, err)
		}
		p.Robots = append(p.Robots, &core.Robot{
			ID:          core.RobotID(rd.ID),
			SpeciesName: rd.SpeciesName,
			Initial:     cfg,
			Traits:      rd.Traits,
		})
	}

	precedence := make(map[int][]core.TaskID)
	for _, pc := range doc.PrecedenceConstraints {
		precedence[pc[1]] = append(precedence[pc[1]], core.TaskID(pc[0]))
	}

	for _, td := range doc.Tasks {
		initial, err := td.Initial.ToConfiguration()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", td.ID, err)
		}
		terminal, err := td.Terminal.ToConfiguration()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", td.ID, err)
		}
		p.Tasks = append(p.Tasks, &core.Task{
			ID:             core.TaskID(td.ID),
			Initial:        initial,
			Terminal:       terminal,
			Requirements:   td.Requirements,
			StaticDuration: td.StaticDuration,
			Precedence:     precedence[td.ID],
		})
	}

	numTraits := 0
	if len(doc.Tasks) > 0 {
		numTraits = len(doc.Tasks[0].Requirements)
	}
	reduction, err := toReduction(doc.RobotTraitsMatrixReduction, len(doc.Tasks), numTraits)
	if err != nil {
		return nil, err
	}
	p.Reduction = reduction

	if doc.Workspace != nil {
		for _, v := range doc.Workspace.Vertices {
			p.Workspace.AddVertex(&core.Vertex{
				ID:  core.VertexID(v.ID),
				Pos: core.Pos{X: v.X, Y: v.Y},
			})
		}
		for _, e := range doc.Workspace.Edges {
			p.Workspace.AddEdgeWithLength(core.VertexID(e.V1), core.VertexID(e.V2), e.Cost)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("problem fails validation: %w", err)
	}
	return p, nil
}

func toReduction(doc ReductionDoc, numTasks, numTraits int) (*core.ReductionSpec, error) {
	switch doc.Kind {
	case "", "matrix_multiply":
		return core.NewMatrixMultiplyReduction(numTasks, numTraits), nil
	case "per_cell":
		spec := core.NewMatrixMultiplyReduction(numTasks, numTraits)
		for i, row := range doc.Cells {
			for j, cell := range row {
				kind, err := parseReductionKind(cell)
				if err != nil {
					return nil, err
				}
				spec.Tags[i][j] = kind
			}
		}
		for _, c := range doc.Customs {
			spec.SetCustom(c.Task, c.Trait, core.ThresholdCumulative(c.Threshold))
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return spec, nil
	default:
		return nil, fmt.Errorf("unknown robot_traits_matrix_reduction %q", doc.Kind)
	}
}
