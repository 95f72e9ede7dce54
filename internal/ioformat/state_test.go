package ioformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/itags"
)

func TestCheckpointRoundTrip(t *testing.T) {
	root := itags.RestoreNode(1, &core.Allocation{
		TaskIDs:  []core.TaskID{1, 2},
		RobotIDs: []core.RobotID{1, 2},
		M:        [][]float64{{0, 0}, {0, 0}},
	}, nil, 0, 0.8, 0.5, 0.5, itags.StatusClosed, false, false)

	child := itags.RestoreNode(2, &core.Allocation{
		TaskIDs:  []core.TaskID{1, 2},
		RobotIDs: []core.RobotID{1, 2},
		M:        [][]float64{{1, 0}, {0, 0}},
	}, root, 0, 0.4, 0.2, 0.6, itags.StatusOpen, true, false)

	cp := itags.NewCheckpoint(
		map[string]*itags.Node{child.Alloc.Key(): child},
		map[string]*itags.Node{root.Alloc.Key(): root},
		map[string]*itags.Node{},
		root,
	)

	doc := CheckpointToDoc(cp)
	assert.Equal(t, stateVersion, doc.Version)
	assert.Len(t, doc.Open, 1)
	assert.Len(t, doc.Closed, 1)
	assert.Equal(t, root.ID(), doc.LastGoalID)

	restored, err := DocToCheckpoint(doc)
	require.NoError(t, err)

	restoredChild, ok := restored.Open()[child.Alloc.Key()]
	require.True(t, ok, "expected restored open bucket to contain the child node")
	require.NotNil(t, restoredChild.Parent)
	assert.Equal(t, root.ID(), restoredChild.Parent.ID())
	assert.True(t, restoredChild.APRStale, "expected APRStale to survive the round trip")

	require.NotNil(t, restored.LastGoal())
	assert.Equal(t, root.ID(), restored.LastGoal().ID())
}

func TestDocToCheckpointRejectsWrongVersion(t *testing.T) {
	doc := &StateDoc{Version: stateVersion + 1}
	_, err := DocToCheckpoint(doc)
	assert.Error(t, err)
}

func TestDocToCheckpointRejectsUnknownParent(t *testing.T) {
	doc := &StateDoc{
		Version: stateVersion,
		Open: []NodeDoc{
			{ID: 1, ParentID: 99, Status: "open"},
		},
	}
	_, err := DocToCheckpoint(doc)
	assert.Error(t, err)
}
