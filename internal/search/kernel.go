// Package search implements the generic best-first/A* kernel that
// underpins the grid and point-graph motion planners and CBS's low-level
// space-time A*. The ITAGS/DITAGS allocation search (internal/itags) keeps
// its own persistent loop instead. It is parameterized over a payload type
// and a Strategy record rather than a class hierarchy, so each caller
// supplies its own successor/heuristic/goal functions without downcasts.
package search

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
)

// globalNodeID is the process-wide monotonic node-id counter: ids never
// reset across searches in the same process. All kernels, regardless of
// payload type, draw from it; readers are lock-free and writers use an
// atomic fetch-add.
var globalNodeID atomic.Uint64

// Status classifies a node's lifecycle state.
type Status int

const (
	StatusOpen Status = iota
	StatusClosed
	StatusPruned
	StatusDeadend
)

// Node wraps a caller payload with the bookkeeping the kernel needs: path
// cost g, heuristic h, status, and a parent back-reference for trace
// reconstruction. Parents are shared ancestors, never owned by a single
// child: several open/closed nodes can point at the same parent, so it is
// a plain pointer rather than a value the child owns.
type Node[P any] struct {
	id     uint64
	Payload P
	Parent *Node[P]
	G      float64
	H      float64
	Status Status
}

// F reports g+h. Admissible h guarantees optimality per spec invariant (v);
// non-admissible h (as with TETAQ, see internal/tetaq) only yields a
// principled greedy order, which is why the kernel never assumes no
// reopening is needed.
func (n *Node[P]) F() float64 { return n.G + n.H }

// ID returns the node's process-unique identity, used only as the final
// tie-break key (older/lower id wins) and for memoization bookkeeping.
func (n *Node[P]) ID() uint64 { return n.id }

// Strategy bundles the pluggable capability set a search is templated over:
// root/successor generation, path-cost and heuristic evaluation, goal
// testing, duplicate-detection keying, and pre/post pruning. Exactly one
// object per strategy, composed into a record — not subclasses.
type Strategy[P any] struct {
	GenerateRoot       func() P
	GenerateSuccessors func(parent *Node[P]) []P
	PathCost           func(parent *Node[P], child P) float64
	Heuristic          func(child P) float64
	IsGoal             func(n *Node[P]) bool

	// Key returns a canonical representative key for duplicate detection.
	// Two different search paths producing the same key collide; the one
	// closed with lower-or-equal g survives.
	Key func(p P) string

	// PrePrune runs before cost/heuristic evaluation (cheap structural
	// rejects); PostPrune runs after, once the full node is evaluated
	// (rejects that need g/h to decide, e.g. scheduler-proven infeasibility
	// surfacing as a post-evaluation prune in the allocation search).
	PrePrune  func(n *Node[P]) bool
	PostPrune func(n *Node[P]) bool
}

// Stats accumulates the search's basic counters.
type Stats struct {
	Generated int
	Evaluated int
	Expanded  int
	Reopened  int
	Pruned    int
	Deadend   int

	TimePathCost   time.Duration
	TimeHeuristic  time.Duration
	TimeSuccessors time.Duration
}

// ResultStatus classifies how a search terminated.
type ResultStatus int

const (
	ResultGoal ResultStatus = iota
	ResultNoGoalExhausted
	ResultNoGoalTimeout
)

// Result is returned by every call to Search/SearchFromNode.
type Result[P any] struct {
	Status ResultStatus
	Node   *Node[P]
	Stats  Stats
}

// Kernel drives one best-first search. It draws ids for the nodes it creates
// from the process-wide counter and owns the open/closed/pruned bookkeeping
// a search node moves through over its lifetime.
type Kernel[P any] struct {
	Strategy Strategy[P]
	// Timeout is the per-search budget. Unbounded disables the deadline
	// check entirely; zero is a valid explicit budget of "no time at all"
	// and must return ResultNoGoalTimeout before any expansion, so it is
	// NOT treated as unbounded.
	Timeout time.Duration
	Logger  hclog.Logger

	best map[string]*Node[P] // canonical representative per Key()
}

// Unbounded disables the kernel's timeout check.
const Unbounded time.Duration = -1

// NewKernel constructs a kernel for the given strategy. Logger may be nil,
// in which case a discarding logger is used.
func NewKernel[P any](strategy Strategy[P], timeout time.Duration, logger hclog.Logger) *Kernel[P] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Kernel[P]{
		Strategy: strategy,
		Timeout:  timeout,
		Logger:   logger,
		best:     make(map[string]*Node[P]),
	}
}

func (k *Kernel[P]) allocID() uint64 {
	return globalNodeID.Add(1)
}

// Search creates the root via the strategy's factory and runs the main loop.
func (k *Kernel[P]) Search() Result[P] {
	payload := k.Strategy.GenerateRoot()
	root := &Node[P]{
		id:      k.allocID(),
		Payload: payload,
		Status:  StatusOpen,
	}
	root.H = k.Strategy.Heuristic(payload)
	return k.SearchFromNode(root)
}

// SearchFromNode runs the main best-first loop starting from an
// already-constructed root.
func (k *Kernel[P]) SearchFromNode(root *Node[P]) Result[P] {
	var stats Stats
	unbounded := k.Timeout < 0
	deadline := time.Now().Add(k.Timeout)

	open := newTieBreakQueue[P]()
	open.push(root)
	stats.Generated++

	for !open.empty() {
		if !unbounded && !time.Now().Before(deadline) {
			k.Logger.Debug("search timeout", "generated", stats.Generated, "expanded", stats.Expanded)
			return Result[P]{Status: ResultNoGoalTimeout, Stats: stats}
		}

		current := open.pop()
		if current.Status == StatusClosed {
			// Stale duplicate left in the queue by a memoization update; skip.
			continue
		}
		current.Status = StatusClosed
		stats.Expanded++

		if k.Strategy.IsGoal(current) {
			k.Logger.Debug("search goal found", "id", current.ID(), "g", current.G, "h", current.H)
			return Result[P]{Status: ResultGoal, Node: current, Stats: stats}
		}

		succStart := time.Now()
		children := k.Strategy.GenerateSuccessors(current)
		stats.TimeSuccessors += time.Since(succStart)

		if len(children) == 0 {
			stats.Deadend++
			continue
		}

		for _, payload := range children {
			child := &Node[P]{
				id:     k.allocID(),
				Payload: payload,
				Parent: current,
				Status: StatusOpen,
			}
			stats.Generated++

			costStart := time.Now()
			child.G = k.Strategy.PathCost(current, payload)
			stats.TimePathCost += time.Since(costStart)

			hStart := time.Now()
			child.H = k.Strategy.Heuristic(payload)
			stats.TimeHeuristic += time.Since(hStart)
			if child.H != child.H { // NaN check: a heuristic contract violation is fatal.
				panic("search: heuristic returned NaN, contract violation")
			}
			stats.Evaluated++

			if k.Strategy.PrePrune != nil && k.Strategy.PrePrune(child) {
				child.Status = StatusPruned
				stats.Pruned++
				continue
			}

			key := ""
			if k.Strategy.Key != nil {
				key = k.Strategy.Key(payload)
			}
			if key != "" {
				if rep, ok := k.best[key]; ok {
					if rep.Status == StatusClosed && rep.G <= child.G {
						// Dominated by an already-closed representative; for an
						// admissible heuristic reopening is unnecessary, so the
						// child is simply dropped.
						continue
					}
				}
				k.best[key] = child
			}

			if k.Strategy.PostPrune != nil && k.Strategy.PostPrune(child) {
				child.Status = StatusPruned
				stats.Pruned++
				continue
			}

			open.push(child)
		}
	}

	k.Logger.Debug("search exhausted open set", "generated", stats.Generated, "expanded", stats.Expanded)
	return Result[P]{Status: ResultNoGoalExhausted, Stats: stats}
}
