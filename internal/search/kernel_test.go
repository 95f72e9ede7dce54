package search

import (
	"fmt"
	"testing"
)

// gridPoint is a minimal 2D grid payload used to exercise the kernel with a
// textbook 4-connected grid A*, independent of internal/motionplan.
type gridPoint struct{ x, y int }

func gridStrategy(obstacles map[gridPoint]bool, width, height int, goal gridPoint) Strategy[gridPoint] {
	neighbors := func(p gridPoint) []gridPoint {
		cand := []gridPoint{{p.x + 1, p.y}, {p.x - 1, p.y}, {p.x, p.y + 1}, {p.x, p.y - 1}}
		var out []gridPoint
		for _, n := range cand {
			if n.x < 0 || n.y < 0 || n.x >= width || n.y >= height {
				continue
			}
			if obstacles[n] {
				continue
			}
			out = append(out, n)
		}
		return out
	}

	return Strategy[gridPoint]{
		GenerateRoot: func() gridPoint { return gridPoint{0, 0} },
		GenerateSuccessors: func(parent *Node[gridPoint]) []gridPoint {
			return neighbors(parent.Payload)
		},
		PathCost: func(parent *Node[gridPoint], child gridPoint) float64 {
			return parent.G + 1
		},
		Heuristic: func(p gridPoint) float64 {
			dx := float64(goal.x - p.x)
			dy := float64(goal.y - p.y)
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			return dx + dy
		},
		IsGoal: func(n *Node[gridPoint]) bool { return n.Payload == goal },
		Key: func(p gridPoint) string {
			return fmt.Sprintf("%d:%d", p.x, p.y)
		},
	}
}

// TestKernelGridAStar_S1 reproduces spec scenario S1: a 3x3 grid with
// obstacles at (1,1) and (2,2), start (0,0), goal (1,2). Expected path
// length is 3.
func TestKernelGridAStar_S1(t *testing.T) {
	obstacles := map[gridPoint]bool{{1, 1}: true, {2, 2}: true}
	goal := gridPoint{1, 2}
	strategy := gridStrategy(obstacles, 3, 3, goal)

	k := NewKernel(strategy, Unbounded, nil)
	result := k.Search()

	if result.Status != ResultGoal {
		t.Fatalf("expected goal, got status %v", result.Status)
	}
	if result.Node.G != 3 {
		t.Fatalf("expected path length 3, got %v", result.Node.G)
	}
}

// TestKernelNoPath verifies a fully exhausted open set returns
// ResultNoGoalExhausted, not a false goal.
func TestKernelNoPath(t *testing.T) {
	obstacles := map[gridPoint]bool{{1, 0}: true, {0, 1}: true}
	goal := gridPoint{1, 1}
	strategy := gridStrategy(obstacles, 2, 2, goal)

	k := NewKernel(strategy, Unbounded, nil)
	result := k.Search()

	if result.Status != ResultNoGoalExhausted {
		t.Fatalf("expected exhausted open set, got status %v", result.Status)
	}
}

// TestKernelTimeoutZero verifies timeout=0 returns "no goal, timeout" before
// any expansion.
func TestKernelTimeoutZero(t *testing.T) {
	goal := gridPoint{5, 5}
	strategy := gridStrategy(nil, 10, 10, goal)

	k := NewKernel(strategy, 0, nil)
	result := k.Search()

	if result.Status != ResultNoGoalTimeout {
		t.Fatalf("expected immediate timeout, got status %v", result.Status)
	}
}

// TestKernelUnbounded verifies the Unbounded sentinel disables the deadline
// check so a normal search can still reach its goal.
func TestKernelUnbounded(t *testing.T) {
	goal := gridPoint{2, 2}
	strategy := gridStrategy(nil, 3, 3, goal)

	k := NewKernel(strategy, Unbounded, nil)
	result := k.Search()

	if result.Status != ResultGoal {
		t.Fatalf("expected goal, got status %v", result.Status)
	}
}
