// Package itags implements ITAGS/DITAGS allocation search: an A* search
// over partial allocation nodes guided by the TETAQ heuristic, with an
// incremental repair discipline (DITAGS) that reacts to problem changes
// without restarting the search from scratch. The node/open-set shape
// mirrors internal/search's generic kernel but is implemented separately
// here, because DITAGS needs a persistent open/closed/pruned set across
// repair calls, which the one-shot generic kernel does not expose.
package itags

import (
	"sync/atomic"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

var globalNodeID atomic.Uint64

func allocID() uint64 { return globalNodeID.Add(1) }

// Status is the bucket an allocation node currently lives in.
type Status int

const (
	StatusOpen Status = iota
	StatusClosed
	StatusPruned
)

// Node is an incremental allocation node: the allocation built so far, its
// heuristic terms, and the two staleness flags incremental repair uses to
// avoid recomputing every node on every change.
type Node struct {
	id     uint64
	Alloc  *core.Allocation
	Parent *Node
	G, H   float64
	APR, NSQ float64
	Status Status

	APRStale bool
	NSQStale bool
}

// F is the A* evaluation value g+h.
func (n *Node) F() float64 { return n.G + n.H }

// ID returns the node's process-wide unique id.
func (n *Node) ID() uint64 { return n.id }

// newNode allocates a node wrapping alloc.
func newNode(alloc *core.Allocation, parent *Node) *Node {
	return &Node{id: allocID(), Alloc: alloc, Parent: parent, Status: StatusOpen}
}

// Clone returns a shallow copy of n: same Alloc pointer, same Parent chain,
// fresh struct so mutating the copy's Status/staleness does not affect n.
// This is the shallow copy checkpointing relies on: Alloc is shared, not
// deep-cloned.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// DeepClone additionally clones the underlying allocation matrix, for a
// checkpoint that must survive the original being mutated further.
func (n *Node) DeepClone() *Node {
	c := *n
	c.Alloc = n.Alloc.Clone()
	return &c
}

// observeNodeID advances the process-wide counter past id, so a solver
// resuming from a persisted checkpoint never reissues an id already used in
// the saved state.
func observeNodeID(id uint64) {
	for {
		cur := globalNodeID.Load()
		if id <= cur {
			return
		}
		if globalNodeID.CompareAndSwap(cur, id) {
			return
		}
	}
}

// RestoreNode reconstructs a node with an explicit id, for loading a
// persisted checkpoint where nodes are serialized as a flat list with
// parent references by id. Callers restore nodes in an order where a
// node's parent, if any, already exists before the node referencing it.
func RestoreNode(id uint64, alloc *core.Allocation, parent *Node, g, h, apr, nsq float64, status Status, aprStale, nsqStale bool) *Node {
	observeNodeID(id)
	return &Node{
		id: id, Alloc: alloc, Parent: parent,
		G: g, H: h, APR: apr, NSQ: nsq, Status: status,
		APRStale: aprStale, NSQStale: nsqStale,
	}
}
