package ioformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

func sampleProblemDoc() *ProblemDoc {
	return &ProblemDoc{
		Species: []SpeciesDoc{
			{Name: "mobile", Traits: []float64{1, 0}, BoundingRadius: 0.3, Speed: 1, MotionPlannerType: "grid"},
		},
		Robots: []RobotDoc{
			{ID: 1, SpeciesName: "mobile", Initial: ConfigurationDoc{Kind: "grid", X: 0, Y: 0}, Traits: []float64{1, 0}},
		},
		Tasks: []TaskDoc{
			{ID: 1, Initial: ConfigurationDoc{Kind: "grid", X: 1, Y: 1}, Terminal: ConfigurationDoc{Kind: "grid", X: 2, Y: 2}, Requirements: []float64{1, 0}, StaticDuration: 3},
		},
		RobotTraitsMatrixReduction: ReductionDoc{Kind: "matrix_multiply"},
		Alpha:                      0.5,
		ScheduleWorstMakespan:      10,
		TimeoutSeconds:             5,
	}
}

func TestToProblemDecodesFields(t *testing.T) {
	p, err := ToProblem(sampleProblemDoc())
	require.NoError(t, err)
	assert.Len(t, p.Robots, 1)
	assert.Len(t, p.Tasks, 1)
	assert.Len(t, p.Species, 1)
	assert.Greater(t, p.Timeout.Seconds(), 0.0)

	_, ok := p.Robots[0].Initial.(core.GridCell)
	assert.True(t, ok, "expected robot initial configuration to decode to GridCell")
}

func TestToProblemUnboundedTimeout(t *testing.T) {
	doc := sampleProblemDoc()
	doc.TimeoutSeconds = -1
	p, err := ToProblem(doc)
	require.NoError(t, err)
	assert.Less(t, p.Timeout.Seconds(), 0.0)
}

func TestToProblemUnknownSpeciesFails(t *testing.T) {
	doc := sampleProblemDoc()
	doc.Robots[0].SpeciesName = "ghost"
	_, err := ToProblem(doc)
	assert.Error(t, err)
}

func TestToProblemPerCellReduction(t *testing.T) {
	doc := sampleProblemDoc()
	doc.RobotTraitsMatrixReduction = ReductionDoc{
		Kind:  "per_cell",
		Cells: [][]string{{"sum", "max"}},
	}
	p, err := ToProblem(doc)
	require.NoError(t, err)
	assert.False(t, p.Reduction.IsMatrixMultiply(), "expected a non-matrix-multiply reduction after setting a max cell")
}

func TestToProblemBadReductionKind(t *testing.T) {
	doc := sampleProblemDoc()
	doc.RobotTraitsMatrixReduction = ReductionDoc{Kind: "nonsense"}
	_, err := ToProblem(doc)
	assert.Error(t, err)
}
