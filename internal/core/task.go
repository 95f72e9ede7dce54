package core

// TaskID is a unique task identifier.
type TaskID int

// Task is a work item: spatial endpoints, a trait-requirement row, a
// nominal duration, and the precedence edges that must complete first. The
// requirement row makes Task a vector of trait demands rather than a fixed
// enum type, since APR is defined over a task x trait requirement matrix.
type Task struct {
	ID             TaskID
	Initial        Configuration
	Terminal       Configuration
	Requirements   []float64 // this task's row of the requirement matrix R
	StaticDuration float64   // nominal duration in seconds; -1 if unset
	Precedence     []TaskID  // must complete before this task
}

// NewTask creates a task with the given endpoints and requirements.
func NewTask(id TaskID, initial, terminal Configuration, requirements []float64, duration float64) *Task {
	return &Task{
		ID:             id,
		Initial:        initial,
		Terminal:       terminal,
		Requirements:   requirements,
		StaticDuration: duration,
	}
}
