package itags

import (
	"time"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/pqueue"
	"github.com/elektrokombinacija/itags-het/internal/tetaq"
	"github.com/hashicorp/go-hclog"
)

// ResultStatus is the outcome of a solve/continueSearch call.
type ResultStatus int

const (
	ResultGoal ResultStatus = iota
	ResultNoGoalExhausted
	ResultNoGoalTimeout
)

// Result is Solve/ContinueSearch's return value.
type Result struct {
	Status ResultStatus
	Node   *Node
}

// Solver is an ITAGS/DITAGS allocation search: f = g + h where g is the
// assignment-tree path cost (typically 0 — flipping one (task,robot) bit
// costs nothing by itself) and h is the TETAQ value.
// The open/closed/pruned sets persist across calls so that Repair can
// invalidate and re-queue nodes instead of rebuilding the search.
type Solver struct {
	Problem     *core.Problem
	Evaluator   *tetaq.Evaluator
	QualityBound float64 // max acceptable schedule makespan; 0 = only NSQ < 1 is required (see isGoal)
	Timeout     time.Duration
	Logger      hclog.Logger

	// PrePrune is an optional caller hook for rejecting a node whose
	// allocation already makes some task's assigned coalition infeasible.
	// Left nil by default since the capacity model is problem-specific;
	// callers wire it when needed.
	PrePrune func(*Node) bool

	open   *pqueue.Queue[string, *Node]
	closed map[string]*Node
	pruned map[string]*Node

	lastGoal *Node // fast-path: the most recent goal node found, re-verified first on repair
}

// NewSolver creates a solver over problem using evaluator for TETAQ.
func NewSolver(problem *core.Problem, evaluator *tetaq.Evaluator) *Solver {
	return &Solver{
		Problem:   problem,
		Evaluator: evaluator,
		Timeout:   problem.Timeout,
		open:      pqueue.New[string, *Node](),
		closed:    make(map[string]*Node),
		pruned:    make(map[string]*Node),
	}
}

func (s *Solver) log() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

func (s *Solver) evaluate(n *Node) {
	h, apr, nsq := s.Evaluator.Evaluate(n.Alloc)
	n.H, n.APR, n.NSQ = h, apr, nsq
	n.APRStale, n.NSQStale = false, false
}

func (s *Solver) isGoal(n *Node) bool {
	if n.APR > 1e-9 {
		return false
	}
	if s.QualityBound <= 0 {
		// NSQ is 1 when the scheduler finds no feasible schedule, and 1 or
		// more when the makespan is at or above ScheduleWorstMakespan; such a
		// node is not a goal even if its schedule is feasible.
		return n.NSQ < 1
	}
	return n.NSQ*s.Problem.ScheduleWorstMakespan <= s.QualityBound
}

// successors enumerates every unassigned (task,robot) pair as a child node,
// deduplicating against nodes already seen under the same
// reconstructed-allocation key.
func (s *Solver) successors(parent *Node) []*Node {
	var children []*Node
	for _, pair := range parent.Alloc.UnassignedPairs() {
		taskID := parent.Alloc.TaskIDs[pair[0]]
		robotID := parent.Alloc.RobotIDs[pair[1]]
		childAlloc := parent.Alloc.WithAssignment(taskID, robotID)
		key := childAlloc.Key()
		if _, ok := s.closed[key]; ok {
			continue
		}
		if _, ok := s.pruned[key]; ok {
			continue
		}
		if s.open.Contains(key) {
			continue
		}
		child := newNode(childAlloc, parent)
		child.G = parent.G
		children = append(children, child)
	}
	return children
}

// root builds the initial all-zero allocation node.
func (s *Solver) root() *Node {
	taskIDs := make([]core.TaskID, len(s.Problem.Tasks))
	for i, t := range s.Problem.Tasks {
		taskIDs[i] = t.ID
	}
	robotIDs := make([]core.RobotID, len(s.Problem.Robots))
	for i, r := range s.Problem.Robots {
		robotIDs[i] = r.ID
	}
	return newNode(core.NewAllocation(taskIDs, robotIDs), nil)
}

// Solve runs the search from scratch.
func (s *Solver) Solve() Result {
	root := s.root()
	s.evaluate(root)
	s.open.Push(root.Alloc.Key(), root, root.F())
	return s.ContinueSearch()
}

// ContinueSearch resumes the search using the current open/closed/pruned
// state, honoring Solver.Timeout from the moment it is called. Solve calls
// it after pushing the root; a caller of Repair calls it afterwards to
// drain whatever Repair marked stale or reopened.
func (s *Solver) ContinueSearch() Result {
	deadline := time.Now().Add(s.Timeout)
	unbounded := s.Timeout < 0

	if s.lastGoal != nil {
		if s.lastGoal.APRStale || s.lastGoal.NSQStale {
			s.evaluate(s.lastGoal)
		}
		if s.isGoal(s.lastGoal) {
			return Result{Status: ResultGoal, Node: s.lastGoal}
		}
		s.lastGoal = nil
	}

	for !s.open.Empty() {
		if !unbounded && !time.Now().Before(deadline) {
			return Result{Status: ResultNoGoalTimeout}
		}
		key, node, ok := s.open.Pop()
		if !ok {
			break
		}

		if node.APRStale || node.NSQStale {
			s.evaluate(node)
			node.Status = StatusOpen
			s.open.Push(key, node, node.F())
			continue
		}

		if s.PrePrune != nil && s.PrePrune(node) {
			node.Status = StatusPruned
			s.pruned[key] = node
			continue
		}

		node.Status = StatusClosed
		s.closed[key] = node

		if s.isGoal(node) {
			s.lastGoal = node
			return Result{Status: ResultGoal, Node: node}
		}

		for _, child := range s.successors(node) {
			s.evaluate(child)
			s.open.Push(child.Alloc.Key(), child, child.F())
		}
	}
	return Result{Status: ResultNoGoalExhausted}
}
