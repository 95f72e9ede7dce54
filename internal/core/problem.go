package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Problem bundles the ITAGS problem inputs: tasks, robots, species, the
// precedence DAG, the robot-traits matrix, the allocation-to-traits
// reduction, alpha, and the schedule worst-case makespan used to
// normalize NSQ.
type Problem struct {
	ID uuid.UUID // run identifier for the persisted DITAGS checkpoint envelope

	Workspace *Workspace
	Species   map[string]*Species
	Robots    []*Robot
	Tasks     []*Task

	Reduction             *ReductionSpec
	Alpha                 float64
	ScheduleWorstMakespan float64
	Timeout               time.Duration
}

// NewProblem creates an empty problem with a fresh run id.
func NewProblem() *Problem {
	return &Problem{
		ID:        uuid.New(),
		Workspace: NewWorkspace(),
		Species:   make(map[string]*Species),
	}
}

// RobotByID finds a robot by id.
func (p *Problem) RobotByID(id RobotID) *Robot {
	for _, r := range p.Robots {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// TaskByID finds a task by id.
func (p *Problem) TaskByID(id TaskID) *Task {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Validate checks structural invariants: non-square matrices, a malformed
// precedence DAG with a cycle, and similar construction-time defects. Every
// problem found is aggregated via multierror rather than failing on the
// first one, so a caller fixing up a hand-built Problem sees every defect
// in one pass.
func (p *Problem) Validate() error {
	var result *multierror.Error

	for _, r := range p.Robots {
		if _, ok := p.Species[r.SpeciesName]; !ok {
			result = multierror.Append(result, fmt.Errorf("robot %d references unknown species %q", r.ID, r.SpeciesName))
		}
	}

	traitWidth := -1
	for _, r := range p.Robots {
		if traitWidth == -1 {
			traitWidth = len(r.Traits)
		} else if len(r.Traits) != traitWidth {
			result = multierror.Append(result, fmt.Errorf("robot %d trait vector width %d does not match expected %d", r.ID, len(r.Traits), traitWidth))
		}
	}
	for _, t := range p.Tasks {
		if traitWidth != -1 && len(t.Requirements) != traitWidth {
			result = multierror.Append(result, fmt.Errorf("task %d requirement vector width %d does not match robot trait width %d", t.ID, len(t.Requirements), traitWidth))
		}
	}

	if err := p.validateAcyclic(); err != nil {
		result = multierror.Append(result, err)
	}

	if p.Reduction != nil {
		if err := p.Reduction.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if p.Alpha < 0 || p.Alpha > 1 {
		result = multierror.Append(result, fmt.Errorf("alpha %v out of range [0,1]", p.Alpha))
	}

	return result.ErrorOrNil()
}

// validateAcyclic checks that the task precedence graph is a DAG. A cycle
// is a fatal contract violation.
func (p *Problem) validateAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[TaskID]int, len(p.Tasks))
	for _, t := range p.Tasks {
		color[t.ID] = white
	}

	var visit func(id TaskID) error
	visit = func(id TaskID) error {
		color[id] = gray
		t := p.TaskByID(id)
		if t != nil {
			for _, dep := range t.Precedence {
				switch color[dep] {
				case gray:
					return fmt.Errorf("precedence graph has a cycle involving task %d", dep)
				case white:
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}
		color[id] = black
		return nil
	}

	for _, t := range p.Tasks {
		if color[t.ID] == white {
			if err := visit(t.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
