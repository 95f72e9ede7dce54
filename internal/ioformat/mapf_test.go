package ioformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/cbs"
	"github.com/elektrokombinacija/itags-het/internal/core"
)

func TestMapfDocToAgents(t *testing.T) {
	doc := &MapfDoc{
		Agents: []AgentDoc{
			{Robot: 1, Start: [2]int{0, 0}, Goal: [2]int{3, 3}},
			{Robot: 2, Start: [2]int{1, 0}, Goal: [2]int{1, 3}},
		},
	}
	agents := doc.ToAgents()
	require.Len(t, agents, 2)
	assert.Equal(t, core.RobotID(1), agents[0].Robot)
	assert.Equal(t, core.GridCell{X: 3, Y: 3}, agents[0].Goal)
}

func TestParseCostMetric(t *testing.T) {
	cases := map[string]cbs.CostMetric{
		"":             cbs.CostMakespan,
		"makespan":     cbs.CostMakespan,
		"sum_of_costs": cbs.CostSumOfCosts,
	}
	for input, want := range cases {
		got, err := parseCostMetric(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := parseCostMetric("fastest")
	assert.Error(t, err)
}

func TestSolutionToDoc(t *testing.T) {
	sol := &cbs.Solution{
		Cost: 7,
		Paths: map[core.RobotID][]core.GridCell{
			1: {{X: 0, Y: 0}, {X: 1, Y: 0}},
		},
	}
	doc := SolutionToDoc(sol)
	assert.Equal(t, "solved", doc.Status)
	assert.Equal(t, 7.0, doc.Cost)
	require.Len(t, doc.Plans, 1)
	require.Len(t, doc.Plans[0].Cells, 2)
	assert.Equal(t, [2]int{1, 0}, doc.Plans[0].Cells[1])
}
