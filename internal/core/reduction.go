package core

import "fmt"

// ReductionKind names a per-cell trait-reduction strategy. Sum/product/
// min/max are builtin; Custom defers to a side-table of callables.
type ReductionKind int

const (
	ReductionSum ReductionKind = iota
	ReductionProduct
	ReductionMin
	ReductionMax
	ReductionCustom
)

func (k ReductionKind) String() string {
	switch k {
	case ReductionSum:
		return "sum"
	case ReductionProduct:
		return "product"
	case ReductionMin:
		return "min"
	case ReductionMax:
		return "max"
	case ReductionCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// CustomReduction maps the trait column of a task's assigned robots
// (one value per assigned robot, for a single trait) to a scalar. The
// repository ships ThresholdCumulative, which counts how many assigned
// robots exceed a threshold for that trait.
type CustomReduction func(assignedValues []float64) float64

// ThresholdCumulative counts how many values in the column strictly exceed
// threshold. This is the one custom reduction the repository ships.
func ThresholdCumulative(threshold float64) CustomReduction {
	return func(assignedValues []float64) float64 {
		count := 0.0
		for _, v := range assignedValues {
			if v > threshold {
				count++
			}
		}
		return count
	}
}

// ReductionSpec is a task x trait matrix of reduction tags, plus a side
// table of callables for the cells tagged Custom. When every cell is
// ReductionSum, the reduction degenerates to a plain matrix product
// (handled as a fast path by internal/tetaq), which is also the default
// produced by NewMatrixMultiplyReduction.
type ReductionSpec struct {
	Tags   [][]ReductionKind // [taskIdx][traitIdx]
	Custom map[[2]int]CustomReduction
}

// NewMatrixMultiplyReduction builds an all-sum reduction spec of the given
// shape — the matrix_multiply case of the wire format's reduction kind.
func NewMatrixMultiplyReduction(numTasks, numTraits int) *ReductionSpec {
	tags := make([][]ReductionKind, numTasks)
	for i := range tags {
		tags[i] = make([]ReductionKind, numTraits)
	}
	return &ReductionSpec{Tags: tags, Custom: make(map[[2]int]CustomReduction)}
}

// IsMatrixMultiply reports whether every cell is ReductionSum, letting
// callers take the matrix-product A·T fast path instead of per-cell
// reduction.
func (r *ReductionSpec) IsMatrixMultiply() bool {
	for _, row := range r.Tags {
		for _, k := range row {
			if k != ReductionSum {
				return false
			}
		}
	}
	return true
}

// Validate checks that every Custom-tagged cell has exactly one bound
// callable.
func (r *ReductionSpec) Validate() error {
	for i, row := range r.Tags {
		for j, k := range row {
			if k == ReductionCustom {
				if _, ok := r.Custom[[2]int{i, j}]; !ok {
					return fmt.Errorf("reduction cell (%d,%d) tagged custom with no bound callable", i, j)
				}
			}
		}
	}
	return nil
}

// SetCustom tags cell (task, trait) as Custom and binds fn.
func (r *ReductionSpec) SetCustom(taskIdx, traitIdx int, fn CustomReduction) {
	r.Tags[taskIdx][traitIdx] = ReductionCustom
	r.Custom[[2]int{taskIdx, traitIdx}] = fn
}
