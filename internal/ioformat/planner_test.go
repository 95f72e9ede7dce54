package ioformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
)

func TestBuildPlannerRequiresAnEnvironment(t *testing.T) {
	doc := sampleProblemDoc()
	_, _, err := BuildPlanner(doc, time.Second, nil)
	assert.Error(t, err)
}

func TestBuildPlannerGrid(t *testing.T) {
	doc := sampleProblemDoc()
	doc.Grid = &GridDoc{Width: 5, Height: 5, Obstacles: [][2]int{{2, 2}}}
	planner, gridMap, err := BuildPlanner(doc, time.Second, nil)
	require.NoError(t, err)
	require.NotNil(t, gridMap)
	assert.True(t, gridMap.Obstacles[core.GridCell{X: 2, Y: 2}])

	species := &core.Species{Name: "mobile", MotionPlanner: core.MotionPlannerGrid, SpeedMPS: 1}
	res := planner.Query(species, core.GridCell{X: 0, Y: 0}, core.GridCell{X: 0, Y: 1})
	assert.Equal(t, motionplan.StatusSuccess, res.Status, "reason: %s", res.Reason)
}

func TestCompositePlannerRoutesBySpecies(t *testing.T) {
	doc := sampleProblemDoc()
	doc.Grid = &GridDoc{Width: 5, Height: 5}
	doc.Workspace = &WorkspaceDoc{
		Vertices: []VertexDoc{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1, Y: 0}},
		Edges:    []EdgeDoc{{V1: 1, V2: 2, Cost: 1}},
	}
	planner, _, err := BuildPlanner(doc, time.Second, nil)
	require.NoError(t, err)

	aerial := &core.Species{Name: "aerial", MotionPlanner: core.MotionPlannerPointGraph, SpeedMPS: 1}
	res := planner.Query(aerial, core.PointGraphConfiguration{ID: 1}, core.PointGraphConfiguration{ID: 2})
	assert.Equal(t, motionplan.StatusSuccess, res.Status, "reason: %s", res.Reason)
}
