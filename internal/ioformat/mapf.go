package ioformat

import (
	"fmt"

	"github.com/elektrokombinacija/itags-het/internal/cbs"
	"github.com/elektrokombinacija/itags-het/internal/core"
)

// AgentDoc is one robot's start/goal cell for the standalone mapf
// subcommand, which runs CBS independent of any allocation or scheduling
// input.
type AgentDoc struct {
	Robot int    `json:"robot"`
	Start [2]int `json:"start"`
	Goal  [2]int `json:"goal"`
}

// MapfDoc is the mapf subcommand's input: a grid plus a list of agents.
type MapfDoc struct {
	Grid           GridDoc    `json:"grid"`
	Agents         []AgentDoc `json:"agents"`
	MaxTime        int        `json:"max_time"`
	TimeoutSeconds float64    `json:"timeout"`
	Metric         string     `json:"metric"` // makespan | sum_of_costs
}

// MapfOutputDoc is the mapf subcommand's output.
type MapfOutputDoc struct {
	Status string        `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Cost   float64       `json:"cost,omitempty"`
	Plans  []MapfPathDoc `json:"paths,omitempty"`
}

// MapfPathDoc is one robot's solved path, a list of [x,y] cells.
type MapfPathDoc struct {
	Robot int      `json:"robot"`
	Cells [][2]int `json:"cells"`
}

func parseCostMetric(s string) (cbs.CostMetric, error) {
	switch s {
	case "", "makespan":
		return cbs.CostMakespan, nil
	case "sum_of_costs":
		return cbs.CostSumOfCosts, nil
	default:
		return 0, fmt.Errorf("unknown mapf metric %q", s)
	}
}

// ToAgents converts the doc's agent list to cbs.Agent values.
func (d *MapfDoc) ToAgents() []cbs.Agent {
	agents := make([]cbs.Agent, len(d.Agents))
	for i, a := range d.Agents {
		agents[i] = cbs.Agent{
			Robot: core.RobotID(a.Robot),
			Start: core.GridCell{X: a.Start[0], Y: a.Start[1]},
			Goal:  core.GridCell{X: a.Goal[0], Y: a.Goal[1]},
		}
	}
	return agents
}

// Metric parses the doc's cost metric.
func (d *MapfDoc) Metric() (cbs.CostMetric, error) { return parseCostMetric(d.Metric) }

// SolutionToDoc converts a solved cbs.Solution to its wire form.
func SolutionToDoc(sol *cbs.Solution) MapfOutputDoc {
	out := MapfOutputDoc{Status: "solved", Cost: sol.Cost}
	for robot, path := range sol.Paths {
		cells := make([][2]int, len(path))
		for i, c := range path {
			cells[i] = [2]int{c.X, c.Y}
		}
		out.Plans = append(out.Plans, MapfPathDoc{Robot: int(robot), Cells: cells})
	}
	return out
}
