// Package tetaq implements the TETAQ heuristic: APR (coverage) blended with
// NSQ (schedule quality) into a single value in [0,1] guiding the
// allocation search. The matrix/reduction arithmetic uses gonum/mat for a
// matrix-multiply fast path, consistent with the scheduler's gonum usage.
package tetaq

import (
	"github.com/elektrokombinacija/itags-het/internal/core"
	"gonum.org/v1/gonum/mat"
)

// AllocatedTraits reduces an allocation and robot-traits matrix into a
// task x trait allocated-traits matrix P using the reduction spec. When
// every cell is ReductionSum, P = A . T is computed directly via gonum/mat;
// otherwise each cell is reduced per-cell from the assigned robots' column
// of trait values.
func AllocatedTraits(alloc *core.Allocation, robotTraits [][]float64, reduction *core.ReductionSpec) [][]float64 {
	numTasks := len(alloc.TaskIDs)
	numTraits := 0
	if numTasks > 0 && len(robotTraits) > 0 {
		numTraits = len(robotTraits[0])
	}

	if reduction == nil || reduction.IsMatrixMultiply() {
		return matrixMultiply(alloc.M, robotTraits, numTasks, numTraits)
	}

	P := make([][]float64, numTasks)
	for i := range P {
		P[i] = make([]float64, numTraits)
		for j := 0; j < numTraits; j++ {
			var assigned []float64
			for k, v := range alloc.M[i] {
				if v > 0.5 {
					assigned = append(assigned, robotTraits[k][j])
				}
			}
			P[i][j] = reduceCell(reduction, i, j, assigned)
		}
	}
	return P
}

func reduceCell(reduction *core.ReductionSpec, taskIdx, traitIdx int, assigned []float64) float64 {
	kind := core.ReductionSum
	if taskIdx < len(reduction.Tags) && traitIdx < len(reduction.Tags[taskIdx]) {
		kind = reduction.Tags[taskIdx][traitIdx]
	}
	switch kind {
	case core.ReductionProduct:
		v := 1.0
		for _, a := range assigned {
			v *= a
		}
		if len(assigned) == 0 {
			v = 0
		}
		return v
	case core.ReductionMin:
		if len(assigned) == 0 {
			return 0
		}
		min := assigned[0]
		for _, a := range assigned[1:] {
			if a < min {
				min = a
			}
		}
		return min
	case core.ReductionMax:
		if len(assigned) == 0 {
			return 0
		}
		max := assigned[0]
		for _, a := range assigned[1:] {
			if a > max {
				max = a
			}
		}
		return max
	case core.ReductionCustom:
		if fn, ok := reduction.Custom[[2]int{taskIdx, traitIdx}]; ok {
			return fn(assigned)
		}
		return 0
	default: // ReductionSum
		sum := 0.0
		for _, a := range assigned {
			sum += a
		}
		return sum
	}
}

func matrixMultiply(allocM, robotTraits [][]float64, numTasks, numTraits int) [][]float64 {
	if numTasks == 0 || numTraits == 0 || len(allocM) == 0 || len(robotTraits) == 0 {
		return make([][]float64, numTasks)
	}
	numRobots := len(allocM[0])

	A := mat.NewDense(numTasks, numRobots, nil)
	for i, row := range allocM {
		for j, v := range row {
			A.Set(i, j, v)
		}
	}
	T := mat.NewDense(numRobots, numTraits, nil)
	for i, row := range robotTraits {
		for j, v := range row {
			T.Set(i, j, v)
		}
	}
	var P mat.Dense
	P.Mul(A, T)

	out := make([][]float64, numTasks)
	for i := range out {
		out[i] = make([]float64, numTraits)
		for j := 0; j < numTraits; j++ {
			out[i][j] = P.At(i, j)
		}
	}
	return out
}

// APR computes the Allocation-Percent-Remaining: the L1 norm of the
// positive deficit max(R-P,0) normalized by the L1 norm of R.
func APR(requirements, allocated [][]float64) float64 {
	var deficitNorm, requirementNorm float64
	for i := range requirements {
		for j := range requirements[i] {
			r := requirements[i][j]
			p := 0.0
			if i < len(allocated) && j < len(allocated[i]) {
				p = allocated[i][j]
			}
			requirementNorm += absf(r)
			if d := r - p; d > 0 {
				deficitNorm += d
			}
		}
	}
	if requirementNorm <= 0 {
		return 0
	}
	return deficitNorm / requirementNorm
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
