package ioformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/motionplan"
)

func TestAllocationToDoc(t *testing.T) {
	alloc := &core.Allocation{
		TaskIDs:  []core.TaskID{1, 2},
		RobotIDs: []core.RobotID{1},
		M:        [][]float64{{1}, {0}},
	}
	taskIDs, robotIDs, matrix := AllocationToDoc(alloc)
	assert.Len(t, taskIDs, 2)
	assert.Len(t, robotIDs, 1)
	assert.Equal(t, 1.0, matrix[0][0])
	assert.Equal(t, 0.0, matrix[1][0])
}

func TestScheduleToDocStringKeys(t *testing.T) {
	sched := &core.Schedule{
		Start:  map[core.TaskID]float64{3: 1.5},
		Finish: map[core.TaskID]float64{3: 4.5},
	}
	start, finish := ScheduleToDoc(sched)
	assert.Equal(t, 1.5, start["3"])
	assert.Equal(t, 4.5, finish["3"])
}

func TestMotionPlanToDoc(t *testing.T) {
	res := motionplan.Result{
		Status: motionplan.StatusSuccess,
		Path:   []core.Configuration{core.GridCell{X: 0, Y: 0}, core.GridCell{X: 1, Y: 0}},
		Length: 1,
	}
	doc := MotionPlanToDoc(5, 9, res)
	assert.Equal(t, 5, doc.Robot)
	assert.Equal(t, 9, doc.Task)
	assert.Equal(t, "success", doc.Status)
	assert.Len(t, doc.Path, 2)
}
