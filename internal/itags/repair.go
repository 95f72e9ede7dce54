package itags

import "github.com/elektrokombinacija/itags-het/internal/core"

// ChangeKind tags the seven problem-change shapes the incremental repair
// dispatch table handles.
type ChangeKind int

const (
	ChangeRobotAdded ChangeKind = iota
	ChangeRobotLost
	ChangeTraitRequirementIncreased
	ChangeTraitRequirementDecreased
	ChangeRobotTraitIncreased
	ChangeRobotTraitDecreased
	ChangeTaskDurationOrPrecedence
)

// Change describes one external problem edit to apply via Repair.
type Change struct {
	Kind    ChangeKind
	Robot   core.RobotID // ChangeRobotAdded / ChangeRobotLost
	Task    core.TaskID  // trait/requirement/duration changes, when task-scoped
}

// reopen moves a closed or pruned node back into open, marking it stale per
// the caller's request, and drops it from the bucket it left.
func (s *Solver) reopen(key string, n *Node, aprStale, nsqStale bool) {
	n.APRStale = n.APRStale || aprStale
	n.NSQStale = n.NSQStale || nsqStale
	n.Status = StatusOpen
	delete(s.closed, key)
	delete(s.pruned, key)
	s.open.Push(key, n, n.F())
}

func (s *Solver) markOpenStale(aprStale, nsqStale bool) {
	for _, key := range s.open.Keys() {
		n, ok := s.open.Value(key)
		if !ok {
			continue
		}
		n.APRStale = n.APRStale || aprStale
		n.NSQStale = n.NSQStale || nsqStale
	}
}

func (s *Solver) usesRobot(n *Node, robot core.RobotID) bool {
	return len(n.Alloc.RobotTasks(robot)) > 0
}

// Repair applies one problem change to the persistent search state by
// invalidating and reopening the affected nodes. The caller must re-point
// s.Problem / s.Evaluator at the updated problem before calling Repair, and
// must call ContinueSearch afterward to drain the buckets this marks stale.
func (s *Solver) Repair(change Change) {
	switch change.Kind {
	case ChangeRobotAdded:
		s.expandRootForNewRobot(change.Robot)

	case ChangeRobotLost:
		s.dropNodesUsingRobot(change.Robot)
		s.markOpenStale(true, true)
		for key, n := range s.closed {
			if !s.usesRobot(n, change.Robot) {
				s.reopen(key, n, true, true)
			}
		}

	case ChangeTraitRequirementIncreased:
		s.markOpenStale(true, false)
		for _, n := range s.closed {
			n.APRStale = true
		}

	case ChangeTraitRequirementDecreased:
		s.markOpenStale(true, false)
		for key, n := range s.pruned {
			s.reopen(key, n, true, false)
		}

	case ChangeRobotTraitIncreased:
		s.markOpenStale(true, false)
		for _, n := range s.closed {
			n.APRStale = true
		}

	case ChangeRobotTraitDecreased:
		s.markOpenStale(true, false)
		for key, n := range s.pruned {
			s.reopen(key, n, true, false)
		}

	case ChangeTaskDurationOrPrecedence:
		s.markOpenStale(false, true)
		for key, n := range s.closed {
			s.reopen(key, n, false, true)
		}
		for key, n := range s.pruned {
			s.reopen(key, n, false, true)
		}
	}
}

// dropNodesUsingRobot removes every node in every bucket whose allocation
// assigns the lost robot to any task.
func (s *Solver) dropNodesUsingRobot(robot core.RobotID) {
	for _, key := range s.open.Keys() {
		n, ok := s.open.Value(key)
		if ok && s.usesRobot(n, robot) {
			s.open.Erase(key)
		}
	}
	for key, n := range s.closed {
		if s.usesRobot(n, robot) {
			delete(s.closed, key)
		}
	}
	for key, n := range s.pruned {
		if s.usesRobot(n, robot) {
			delete(s.pruned, key)
		}
	}
}

// expandRootForNewRobot enumerates single-assignment nodes pairing the new
// robot with every task and pushes them onto open.
func (s *Solver) expandRootForNewRobot(robot core.RobotID) {
	base := s.root()
	if !contains(base.Alloc.RobotIDs, robot) {
		base.Alloc.RobotIDs = append(base.Alloc.RobotIDs, robot)
		for i := range base.Alloc.M {
			base.Alloc.M[i] = append(base.Alloc.M[i], 0)
		}
	}
	for _, t := range base.Alloc.TaskIDs {
		child := base.Alloc.WithAssignment(t, robot)
		key := child.Key()
		if _, ok := s.closed[key]; ok {
			continue
		}
		if s.open.Contains(key) {
			continue
		}
		node := newNode(child, nil)
		s.evaluate(node)
		s.open.Push(key, node, node.F())
	}
}

func contains(ids []core.RobotID, target core.RobotID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
