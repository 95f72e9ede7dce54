package core

import (
	"fmt"
	"sort"
	"strings"
)

// Allocation is the task-by-robot 0/1 matrix. TaskIDs and RobotIDs fix the
// row/column order; M[i][j] is 1 iff RobotIDs[j] is assigned to TaskIDs[i].
// A single-assignment step flips exactly one (task, robot) cell from 0 to 1.
type Allocation struct {
	TaskIDs  []TaskID
	RobotIDs []RobotID
	M        [][]float64
}

// NewAllocation creates an all-zero allocation over the given task and
// robot id sets, in the order given.
func NewAllocation(taskIDs []TaskID, robotIDs []RobotID) *Allocation {
	m := make([][]float64, len(taskIDs))
	for i := range m {
		m[i] = make([]float64, len(robotIDs))
	}
	return &Allocation{TaskIDs: taskIDs, RobotIDs: robotIDs, M: m}
}

func (a *Allocation) taskIndex(id TaskID) int {
	for i, t := range a.TaskIDs {
		if t == id {
			return i
		}
	}
	return -1
}

func (a *Allocation) robotIndex(id RobotID) int {
	for j, r := range a.RobotIDs {
		if r == id {
			return j
		}
	}
	return -1
}

// Get reports whether robot is assigned to task.
func (a *Allocation) Get(task TaskID, robot RobotID) bool {
	i, j := a.taskIndex(task), a.robotIndex(robot)
	if i < 0 || j < 0 {
		return false
	}
	return a.M[i][j] > 0.5
}

// Clone returns a deep copy. Used when flipping an assignment: the caller
// clones, sets, and hands the clone to the new incremental allocation node
// rather than mutating a shared matrix in place.
func (a *Allocation) Clone() *Allocation {
	m := make([][]float64, len(a.M))
	for i := range a.M {
		m[i] = append([]float64(nil), a.M[i]...)
	}
	return &Allocation{
		TaskIDs:  append([]TaskID(nil), a.TaskIDs...),
		RobotIDs: append([]RobotID(nil), a.RobotIDs...),
		M:        m,
	}
}

// WithAssignment returns a clone with (task, robot) flipped to 1.
func (a *Allocation) WithAssignment(task TaskID, robot RobotID) *Allocation {
	clone := a.Clone()
	i, j := clone.taskIndex(task), clone.robotIndex(robot)
	if i >= 0 && j >= 0 {
		clone.M[i][j] = 1
	}
	return clone
}

// Coalition returns the robots assigned to a task.
func (a *Allocation) Coalition(task TaskID) []RobotID {
	i := a.taskIndex(task)
	if i < 0 {
		return nil
	}
	var out []RobotID
	for j, v := range a.M[i] {
		if v > 0.5 {
			out = append(out, a.RobotIDs[j])
		}
	}
	return out
}

// RobotTasks returns the tasks a robot is assigned to.
func (a *Allocation) RobotTasks(robot RobotID) []TaskID {
	j := a.robotIndex(robot)
	if j < 0 {
		return nil
	}
	var out []TaskID
	for i, row := range a.M {
		if row[j] > 0.5 {
			out = append(out, a.TaskIDs[i])
		}
	}
	return out
}

// UnassignedPairs enumerates every (task, robot) pair not yet flipped to 1.
// This is the ITAGS successor generator's enumeration: each pair is a
// candidate single-assignment child.
func (a *Allocation) UnassignedPairs() [][2]int {
	var pairs [][2]int
	for i := range a.M {
		for j := range a.M[i] {
			if a.M[i][j] < 0.5 {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// Key returns a canonical string representation of the full matrix,
// independent of assignment order. Used for ITAGS duplicate detection: two
// different orders of the same assignments collapse to the same key, since
// the key is built over the full reconstructed allocation rather than the
// path that produced it.
func (a *Allocation) Key() string {
	type cell struct {
		task  TaskID
		robot RobotID
	}
	var on []cell
	for i, row := range a.M {
		for j, v := range row {
			if v > 0.5 {
				on = append(on, cell{a.TaskIDs[i], a.RobotIDs[j]})
			}
		}
	}
	sort.Slice(on, func(i, j int) bool {
		if on[i].task != on[j].task {
			return on[i].task < on[j].task
		}
		return on[i].robot < on[j].robot
	})
	var b strings.Builder
	for _, c := range on {
		fmt.Fprintf(&b, "%d:%d;", c.task, c.robot)
	}
	return b.String()
}

// MutexPairs returns every unordered pair of task ids whose assigned
// coalitions share at least one robot — pairs the scheduler must order
// rather than run concurrently.
func (a *Allocation) MutexPairs() [][2]TaskID {
	var pairs [][2]TaskID
	for i := 0; i < len(a.TaskIDs); i++ {
		for k := i + 1; k < len(a.TaskIDs); k++ {
			if sharesRobot(a.M[i], a.M[k]) {
				pairs = append(pairs, [2]TaskID{a.TaskIDs[i], a.TaskIDs[k]})
			}
		}
	}
	return pairs
}

func sharesRobot(a, b []float64) bool {
	for j := range a {
		if a[j] > 0.5 && b[j] > 0.5 {
			return true
		}
	}
	return false
}
