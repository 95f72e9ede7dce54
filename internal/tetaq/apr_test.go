package tetaq

import (
	"testing"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

func TestAPRFullCoverage(t *testing.T) {
	requirements := [][]float64{{1, 1}}
	allocated := [][]float64{{1, 1}}
	if apr := APR(requirements, allocated); apr != 0 {
		t.Fatalf("expected 0, got %v", apr)
	}
}

func TestAPRPartialCoverage(t *testing.T) {
	requirements := [][]float64{{2, 2}}
	allocated := [][]float64{{1, 0}}
	// deficit = (1 + 2) = 3, requirement norm = 4
	if apr := APR(requirements, allocated); apr != 0.75 {
		t.Fatalf("expected 0.75, got %v", apr)
	}
}

func TestAllocatedTraitsMatrixMultiplyFastPath(t *testing.T) {
	alloc := core.NewAllocation([]core.TaskID{1}, []core.RobotID{1, 2})
	alloc.M[0][0] = 1
	robotTraits := [][]float64{{1, 0}, {0, 1}}
	reduction := core.NewMatrixMultiplyReduction(1, 2)

	P := AllocatedTraits(alloc, robotTraits, reduction)
	if P[0][0] != 1 || P[0][1] != 0 {
		t.Fatalf("expected [1 0], got %v", P[0])
	}
}

func TestAllocatedTraitsCustomReduction(t *testing.T) {
	alloc := core.NewAllocation([]core.TaskID{1}, []core.RobotID{1, 2})
	alloc.M[0][0] = 1
	alloc.M[0][1] = 1
	robotTraits := [][]float64{{5}, {10}}
	reduction := core.NewMatrixMultiplyReduction(1, 1)
	reduction.SetCustom(0, 0, core.ThresholdCumulative(7))

	P := AllocatedTraits(alloc, robotTraits, reduction)
	if P[0][0] != 1 {
		t.Fatalf("expected 1 (one robot above threshold), got %v", P[0][0])
	}
}
