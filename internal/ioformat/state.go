package ioformat

import (
	"fmt"

	"github.com/elektrokombinacija/itags-het/internal/core"
	"github.com/elektrokombinacija/itags-het/internal/itags"
)

// stateVersion tags the persisted DITAGS state format; DocToCheckpoint
// rejects any document whose version doesn't match.
const stateVersion = 1

// NodeDoc is one persisted allocation node, with its parent flattened to an
// id reference rather than a nested structure.
type NodeDoc struct {
	ID       uint64      `json:"id"`
	ParentID uint64      `json:"parent_id,omitempty"`
	TaskIDs  []int       `json:"task_ids"`
	RobotIDs []int       `json:"robot_ids"`
	Matrix   [][]float64 `json:"matrix"`
	G        float64     `json:"g"`
	H        float64     `json:"h"`
	APR      float64     `json:"apr"`
	NSQ      float64     `json:"nsq"`
	Status   string      `json:"status"`
	APRStale bool        `json:"apr_stale"`
	NSQStale bool        `json:"nsq_stale"`
}

// StateDoc is the top-level persisted search state, opaque to external
// tools beyond its version tag.
type StateDoc struct {
	Version    int       `json:"version"`
	Open       []NodeDoc `json:"open"`
	Closed     []NodeDoc `json:"closed"`
	Pruned     []NodeDoc `json:"pruned"`
	LastGoalID uint64    `json:"last_goal_id,omitempty"`
}

func statusString(s itags.Status) string {
	switch s {
	case itags.StatusOpen:
		return "open"
	case itags.StatusClosed:
		return "closed"
	case itags.StatusPruned:
		return "pruned"
	default:
		return "unknown"
	}
}

func parseNodeStatus(s string) itags.Status {
	switch s {
	case "closed":
		return itags.StatusClosed
	case "pruned":
		return itags.StatusPruned
	default:
		return itags.StatusOpen
	}
}

func nodeToDoc(n *itags.Node) NodeDoc {
	taskIDs, robotIDs, matrix := AllocationToDoc(n.Alloc)
	doc := NodeDoc{
		ID: n.ID(), TaskIDs: taskIDs, RobotIDs: robotIDs, Matrix: matrix,
		G: n.G, H: n.H, APR: n.APR, NSQ: n.NSQ,
		Status: statusString(n.Status), APRStale: n.APRStale, NSQStale: n.NSQStale,
	}
	if n.Parent != nil {
		doc.ParentID = n.Parent.ID()
	}
	return doc
}

// CheckpointToDoc flattens a checkpoint's buckets to the persisted format.
func CheckpointToDoc(cp *itags.Checkpoint) *StateDoc {
	doc := &StateDoc{Version: stateVersion}
	for _, n := range cp.Open() {
		doc.Open = append(doc.Open, nodeToDoc(n))
	}
	for _, n := range cp.Closed() {
		doc.Closed = append(doc.Closed, nodeToDoc(n))
	}
	for _, n := range cp.Pruned() {
		doc.Pruned = append(doc.Pruned, nodeToDoc(n))
	}
	if g := cp.LastGoal(); g != nil {
		doc.LastGoalID = g.ID()
	}
	return doc
}

// DocToCheckpoint reconstructs a checkpoint from its persisted form. Every
// node doc's parent id must already have been restored (or be zero), so
// nodes are restored in the order open, then closed, then pruned — the same
// order the search itself would have produced them in, parents before
// children, since a node never closes before its parent does.
func DocToCheckpoint(doc *StateDoc) (*itags.Checkpoint, error) {
	if doc.Version != stateVersion {
		return nil, fmt.Errorf("unsupported state version %d, expected %d", doc.Version, stateVersion)
	}

	byID := make(map[uint64]*itags.Node)
	restore := func(bucket map[string]*itags.Node, docs []NodeDoc) error {
		for _, d := range docs {
			var parent *itags.Node
			if d.ParentID != 0 {
				var ok bool
				parent, ok = byID[d.ParentID]
				if !ok {
					return fmt.Errorf("node %d references unknown parent %d", d.ID, d.ParentID)
				}
			}
			taskIDs := make([]core.TaskID, len(d.TaskIDs))
			for i, id := range d.TaskIDs {
				taskIDs[i] = core.TaskID(id)
			}
			robotIDs := make([]core.RobotID, len(d.RobotIDs))
			for i, id := range d.RobotIDs {
				robotIDs[i] = core.RobotID(id)
			}
			alloc := &core.Allocation{TaskIDs: taskIDs, RobotIDs: robotIDs, M: d.Matrix}
			n := itags.RestoreNode(d.ID, alloc, parent, d.G, d.H, d.APR, d.NSQ, parseNodeStatus(d.Status), d.APRStale, d.NSQStale)
			byID[d.ID] = n
			bucket[alloc.Key()] = n
		}
		return nil
	}

	open := make(map[string]*itags.Node)
	closed := make(map[string]*itags.Node)
	pruned := make(map[string]*itags.Node)
	if err := restore(open, doc.Open); err != nil {
		return nil, err
	}
	if err := restore(closed, doc.Closed); err != nil {
		return nil, err
	}
	if err := restore(pruned, doc.Pruned); err != nil {
		return nil, err
	}

	var lastGoal *itags.Node
	if doc.LastGoalID != 0 {
		lastGoal = byID[doc.LastGoalID]
	}
	return itags.NewCheckpoint(open, closed, pruned, lastGoal), nil
}
