package itags

import "github.com/elektrokombinacija/itags-het/internal/pqueue"

// Checkpoint is a snapshot of the search state a caller can restore before
// applying a speculative repair.
type Checkpoint struct {
	open     map[string]*Node
	closed   map[string]*Node
	pruned   map[string]*Node
	lastGoal *Node
}

// Snapshot captures the current search state. deep clones every node's
// allocation matrix so later mutation of the live search cannot corrupt the
// checkpoint; shallow (deep=false) shares allocation pointers, cheaper but
// only safe if the caller will not mutate matrices in place.
func (s *Solver) Snapshot(deep bool) *Checkpoint {
	clone := func(n *Node) *Node {
		if deep {
			return n.DeepClone()
		}
		return n.Clone()
	}
	cp := &Checkpoint{
		open:   make(map[string]*Node),
		closed: make(map[string]*Node, len(s.closed)),
		pruned: make(map[string]*Node, len(s.pruned)),
	}
	for _, key := range s.open.Keys() {
		if n, ok := s.open.Value(key); ok {
			cp.open[key] = clone(n)
		}
	}
	for key, n := range s.closed {
		cp.closed[key] = clone(n)
	}
	for key, n := range s.pruned {
		cp.pruned[key] = clone(n)
	}
	cp.lastGoal = s.lastGoal
	return cp
}

// Open, Closed, Pruned, and LastGoal expose a checkpoint's buckets to
// callers outside the package (cmd/itags's state persistence) that need to
// walk every node to serialize it.
func (cp *Checkpoint) Open() map[string]*Node   { return cp.open }
func (cp *Checkpoint) Closed() map[string]*Node { return cp.closed }
func (cp *Checkpoint) Pruned() map[string]*Node { return cp.pruned }
func (cp *Checkpoint) LastGoal() *Node          { return cp.lastGoal }

// NewCheckpoint builds a Checkpoint directly from reconstructed buckets, for
// loading a persisted state file back into a Solver via Restore.
func NewCheckpoint(open, closed, pruned map[string]*Node, lastGoal *Node) *Checkpoint {
	return &Checkpoint{open: open, closed: closed, pruned: pruned, lastGoal: lastGoal}
}

// Restore replaces the solver's search state with a prior checkpoint.
func (s *Solver) Restore(cp *Checkpoint) {
	s.open = pqueue.New[string, *Node]()
	for key, n := range cp.open {
		s.open.Push(key, n, n.F())
	}
	s.closed = make(map[string]*Node, len(cp.closed))
	for key, n := range cp.closed {
		s.closed[key] = n
	}
	s.pruned = make(map[string]*Node, len(cp.pruned))
	for key, n := range cp.pruned {
		s.pruned[key] = n
	}
	s.lastGoal = cp.lastGoal
}
